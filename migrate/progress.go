package migrate

import (
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progress is a bar counting processed items.  A nil *progress does nothing, which is what you get
// in test mode or with progress turned off.
type progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgress(name string, total int) *progress {
	p := mpb.New(mpb.WithWidth(64))

	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name+":", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
			decor.Spinner([]string{" /", " -", " \\", " |"}),
		),
	)
	bar.SetTotal(int64(total), false)

	return &progress{p: p, bar: bar}
}

func (pr *progress) increment() {
	if pr == nil {
		return
	}
	pr.bar.Increment()
}

func (pr *progress) setTotal(total int) {
	if pr == nil {
		return
	}
	pr.bar.SetTotal(int64(total), false)
}

// finish completes the bar (or leaves it where it stopped, if the run failed) and flushes it.
func (pr *progress) finish(ok bool) {
	if pr == nil {
		return
	}
	if ok {
		pr.bar.SetTotal(-1, true)
	} else {
		pr.bar.Abort(false)
	}
	pr.p.Wait()
}
