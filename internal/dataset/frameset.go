package dataset

// FrameSet is the ordered set of frame indices selected by the sampler.
type FrameSet struct {
	order   []int
	members map[int]struct{}
}

// NewFrameSet builds a set from indices, keeping first-seen order.
func NewFrameSet(indices ...int) *FrameSet {
	set := &FrameSet{members: make(map[int]struct{}, len(indices))}
	for _, idx := range indices {
		set.Add(idx)
	}
	return set
}

// Add appends idx unless it is already present.
func (s *FrameSet) Add(idx int) {
	if s.members == nil {
		s.members = make(map[int]struct{})
	}
	if _, ok := s.members[idx]; ok {
		return
	}
	s.members[idx] = struct{}{}
	s.order = append(s.order, idx)
}

// Contains reports whether idx was selected.
func (s *FrameSet) Contains(idx int) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[idx]
	return ok
}

// Len reports the number of selected frames.
func (s *FrameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Indices returns a copy of the selected indices in decode order.
func (s *FrameSet) Indices() []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}
