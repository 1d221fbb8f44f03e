package download

import (
	"fmt"
	"time"
)

// Request describes one transfer attempt.
type Request struct {
	URL string // source URL
	Dir string // destination directory, created if missing

	// OnStart is called once the response is accepted and the file name is known.
	OnStart func(filename string)
	// OnProgress is called after every non-empty chunk, in increasing byte order.
	OnProgress func(Progress)
	// OnLog receives non-fatal warnings, such as an unusable Last-Modified header.
	OnLog func(message string)
}

// Progress is a snapshot of a running transfer.
type Progress struct {
	Downloaded int64         // bytes written so far
	Total      int64         // Content-Length, 0 when unknown
	Elapsed    time.Duration // time since the first byte was requested
}

// Fraction returns the completed share in [0, 1]. ok is false when the total is unknown.
func (p Progress) Fraction() (fraction float64, ok bool) {
	if p.Total <= 0 {
		return 0, false
	}
	f := float64(p.Downloaded) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	return f, true
}

// BytesPerSecond returns the average transfer speed.
func (p Progress) BytesPerSecond() float64 {
	secs := p.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(p.Downloaded) / secs
}

// FormatSpeed renders a speed with decimal units: B/s, KB/s or MB/s.
func FormatSpeed(bytesPerSec float64) string {
	switch {
	case bytesPerSec > 1_000_000:
		return fmt.Sprintf("%.2f MB/s", bytesPerSec/1_000_000)
	case bytesPerSec > 1_000:
		return fmt.Sprintf("%.2f KB/s", bytesPerSec/1_000)
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}
