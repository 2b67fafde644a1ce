package framesource

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

const stderrTailLines = 20

// stderrTail keeps the last few lines ffmpeg printed on stderr.
type stderrTail struct {
	mu    sync.Mutex
	lines []string
	wg    sync.WaitGroup
}

func newStderrTail(r io.Reader) *stderrTail {
	tail := &stderrTail{}
	tail.wg.Add(1)
	go func() {
		defer tail.wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			tail.push(scanner.Text())
		}
	}()
	return tail
}

func (t *stderrTail) push(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > stderrTailLines {
		t.lines = t.lines[len(t.lines)-stderrTailLines:]
	}
}

// drain blocks until the writer side closes.
func (t *stderrTail) drain() {
	t.wg.Wait()
}

// String waits for the reader to drain and returns the captured lines.
func (t *stderrTail) String() string {
	t.drain()
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "; ")
}
