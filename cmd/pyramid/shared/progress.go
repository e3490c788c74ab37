package shared

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// progressDots is the width of a finished progress line
const progressDots = 40

// Progress prints a line of dots as games complete, then a rate summary.
// Update is safe to call from many goroutines.
type Progress struct {
	mu          sync.Mutex
	w           io.Writer
	clock       quartz.Clock
	start       time.Time
	dotsPrinted int
	finished    bool
}

// NewProgress creates a progress line writing to w
func NewProgress(w io.Writer, clock quartz.Clock) *Progress {
	return &Progress{w: w, clock: clock, start: clock.Now()}
}

// Update records that done of total games have finished
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished || total <= 0 {
		return
	}
	if done > total {
		done = total
	}

	target := done * progressDots / total
	for ; p.dotsPrinted < target; p.dotsPrinted++ {
		_, _ = fmt.Fprint(p.w, ".")
	}

	if done == total {
		p.finished = true
		elapsed := p.clock.Since(p.start)
		rate := float64(total)
		if elapsed > 0 {
			rate = float64(total) / elapsed.Seconds()
		}
		_, _ = fmt.Fprintf(p.w, " ✓ %d games in %.1fs (%.0f/sec)\n", total, elapsed.Seconds(), rate)
	}
}
