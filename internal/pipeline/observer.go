package pipeline

// Observer receives per-unit progress. Implementations must not block.
type Observer interface {
	UnitStarted(index, total int, video string)
	UnitFinished(index, total int, result UnitResult)
}

type nopObserver struct{}

func (nopObserver) UnitStarted(int, int, string)       {}
func (nopObserver) UnitFinished(int, int, UnitResult) {}
