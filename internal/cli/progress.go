package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/cperrin88/mirrorget/pkg/download"
	"github.com/cperrin88/mirrorget/pkg/orchestrator"
)

var (
	statusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	timeStyle    = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// progressView renders the events of a download run as log lines plus a single
// progress line that is redrawn in place.
type progressView struct {
	out io.Writer
	bar progress.Model

	mu     sync.Mutex
	redraw rate.Sometimes
	drawn  bool // a progress line is on screen
	last   download.Progress
}

func newProgressView(out io.Writer) *progressView {
	return &progressView{
		out: out,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(ProgressBarWidth),
			progress.WithoutPercentage(),
		),
		redraw: rate.Sometimes{Interval: RedrawInterval},
	}
}

// Handle renders one event. It is safe to call from several goroutines.
func (v *progressView) Handle(e orchestrator.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch e.Kind {
	case orchestrator.EventLog:
		v.clearLine()
		_, _ = fmt.Fprintf(v.out, "%s %s\n", timeStyle.Render(e.Time.Format("15:04:05")+":"), e.Message)
	case orchestrator.EventStatus:
		v.clearLine()
		_, _ = fmt.Fprintln(v.out, statusStyle.Render("» "+e.Message))
	case orchestrator.EventProgress:
		v.last = e.Progress
		v.redraw.Do(v.drawLine)
	case orchestrator.EventOutcome:
		v.clearLine()
		if e.Outcome != nil {
			v.printOutcome(*e.Outcome)
		}
	}
}

func (v *progressView) drawLine() {
	_, _ = fmt.Fprintf(v.out, "\r%s %s\x1b[K", v.renderBar(v.last), progressText(v.last))
	v.drawn = true
}

func (v *progressView) clearLine() {
	if v.drawn {
		_, _ = fmt.Fprint(v.out, "\r\x1b[K")
		v.drawn = false
	}
}

func (v *progressView) renderBar(p download.Progress) string {
	if fraction, ok := p.Fraction(); ok {
		return v.bar.ViewAs(fraction)
	}
	// Unknown size: a moving marker instead of a fill level.
	pos := int(p.Elapsed/RedrawInterval) % ProgressBarWidth
	return "[" + strings.Repeat(" ", pos) + "<=>" + strings.Repeat(" ", ProgressBarWidth-pos) + "]"
}

// printOutcome prints a one-line summary. Failures are reported again by the
// command's returned error, so only the attempt count is shown here.
func (v *progressView) printOutcome(out orchestrator.Outcome) {
	switch {
	case out.Kind == orchestrator.OutcomeSuccess:
		_, _ = fmt.Fprintln(v.out, successStyle.Render("Saved to "+out.Path))
	case out.NoMirrors():
		_, _ = fmt.Fprintln(v.out, failureStyle.Render("No mirrors available."))
	case out.Kind == orchestrator.OutcomeCancelled:
		_, _ = fmt.Fprintln(v.out, failureStyle.Render(fmt.Sprintf("Cancelled after %d attempt(s).", out.Attempts)))
	default:
		_, _ = fmt.Fprintln(v.out, failureStyle.Render(fmt.Sprintf("Failed after %d attempt(s).", out.Attempts)))
	}
}

// progressText renders "<done> / <total> (<speed>)", or "<done> (<speed>)"
// when the total size is unknown.
func progressText(p download.Progress) string {
	speed := download.FormatSpeed(p.BytesPerSecond())
	done := humanize.Bytes(uint64(max(p.Downloaded, 0)))
	if p.Total <= 0 {
		return fmt.Sprintf("%s (%s)", done, speed)
	}
	return fmt.Sprintf("%s / %s (%s)", done, humanize.Bytes(uint64(p.Total)), speed)
}
