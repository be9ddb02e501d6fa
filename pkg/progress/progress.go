// Package progress renders a terminal progress bar for long-running,
// countable operations — replication's object copy loop, chiefly —
// using github.com/vbauerster/mpb/v8.
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar wraps a single mpb progress bar tracking a known total count of
// discrete steps (objects copied, refs mirrored).
type Bar struct {
	progress *mpb.Progress
	bar      *mpb.Bar
	total    int64
}

// New creates a Bar titled name tracking total steps. Output goes to
// out; pass io.Discard to silence it entirely (e.g. non-interactive
// use).
func New(out io.Writer, name string, total int) *Bar {
	p := mpb.New(mpb.WithOutput(out), mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight})),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)
	return &Bar{progress: p, bar: bar, total: int64(total)}
}

// Increment advances the bar by one step.
func (b *Bar) Increment() {
	b.bar.Increment()
}

// Done marks the bar complete and waits for its renderer to flush.
func (b *Bar) Done() {
	b.bar.SetCurrent(b.total)
	b.progress.Wait()
}
