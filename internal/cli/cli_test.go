package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/mirrorget/pkg/catalog"
	"github.com/cperrin88/mirrorget/pkg/download"
	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/orchestrator"
)

func TestSuggest(t *testing.T) {
	names := []string{"ProtonVPN", "Tor Browser", "Psiphon", "Lantern"}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "case-insensitive subsequence", input: "proton", want: []string{"ProtonVPN"}},
		{name: "typo", input: "Lantren", want: []string{"Lantern"}},
		{name: "nothing close", input: "zzzzzzzz", want: nil},
		{name: "empty input", input: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.input, names))
		})
	}

	assert.LessOrEqual(t, len(suggest("o", names)), MaxSuggestions)
}

func TestLookupError(t *testing.T) {
	c, err := catalog.Parse([]byte(`{"Stable":{"ProtonVPN":[],"Psiphon":[]}}`))
	require.NoError(t, err)

	_, lookupErr := c.Lookup("stable", "ProtonVPN")
	err = lookupError(c, "stable", "ProtonVPN", lookupErr)
	assert.ErrorIs(t, err, errutils.ErrMirrorListNotFound)
	assert.Contains(t, err.Error(), `did you mean "Stable"?`)

	_, lookupErr = c.Lookup("Stable", "psiphon")
	err = lookupError(c, "Stable", "psiphon", lookupErr)
	assert.ErrorIs(t, err, errutils.ErrItemNotFound)
	assert.Contains(t, err.Error(), `"Psiphon"`)

	other := errutils.ErrNoCatalog
	assert.Equal(t, other, lookupError(c, "Stable", "x", other))
}

func TestProgressText(t *testing.T) {
	assert.Equal(t, "1.0 MB / 2.0 MB (500.00 KB/s)", progressText(download.Progress{
		Downloaded: 1_000_000,
		Total:      2_000_000,
		Elapsed:    2 * time.Second,
	}))
	assert.Equal(t, "512 B (0 B/s)", progressText(download.Progress{Downloaded: 512}))
}

func TestProgressViewRendersEvents(t *testing.T) {
	var buf bytes.Buffer
	v := newProgressView(&buf)
	at := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)

	v.Handle(orchestrator.Event{Kind: orchestrator.EventLog, Time: at, Message: "Found 2 mirror(s). Trying in order."})
	v.Handle(orchestrator.Event{Kind: orchestrator.EventProgress, Progress: download.Progress{Downloaded: 10, Total: 100, Elapsed: time.Second}})
	v.Handle(orchestrator.Event{Kind: orchestrator.EventStatus, Message: "Trying mirror 1/2: a.example"})
	v.Handle(orchestrator.Event{Kind: orchestrator.EventOutcome, Outcome: &orchestrator.Outcome{Kind: orchestrator.OutcomeSuccess, Path: "/tmp/file.bin"}})

	out := buf.String()
	assert.Contains(t, out, "13:04:05:")
	assert.Contains(t, out, "Found 2 mirror(s). Trying in order.")
	assert.Contains(t, out, "10 B / 100 B")
	assert.Contains(t, out, "Trying mirror 1/2: a.example")
	assert.Contains(t, out, "Saved to /tmp/file.bin")
	// The progress line is cleared before the next regular line.
	assert.Contains(t, out, "\r\x1b[K")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestProgressViewOutcomeSummary(t *testing.T) {
	tests := []struct {
		name string
		out  orchestrator.Outcome
		want string
	}{
		{name: "no mirrors", out: orchestrator.Outcome{Kind: orchestrator.OutcomeExhausted}, want: "No mirrors available."},
		{name: "exhausted", out: orchestrator.Outcome{Kind: orchestrator.OutcomeExhausted, Attempts: 2}, want: "Failed after 2 attempt(s)."},
		{name: "cancelled", out: orchestrator.Outcome{Kind: orchestrator.OutcomeCancelled, Attempts: 1}, want: "Cancelled after 1 attempt(s)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			v := newProgressView(&buf)
			out := tt.out
			v.Handle(orchestrator.Event{Kind: orchestrator.EventOutcome, Outcome: &out})
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestShowDownload(t *testing.T) {
	var opened []string
	prev := openInFileManager
	openInFileManager = func(path string) error {
		opened = append(opened, path)
		return nil
	}
	t.Cleanup(func() { openInFileManager = prev })

	showDownload(orchestrator.Outcome{Kind: orchestrator.OutcomeCancelled, Attempts: 1})
	showDownload(orchestrator.Outcome{Kind: orchestrator.OutcomeExhausted})
	assert.Empty(t, opened)

	showDownload(orchestrator.Outcome{Kind: orchestrator.OutcomeSuccess, Path: "/tmp/tor.tar.xz"})
	assert.Equal(t, []string{"/tmp/tor.tar.xz"}, opened)

	openInFileManager = func(string) error { return errors.New("no suitable file manager found") }
	assert.NotPanics(t, func() {
		showDownload(orchestrator.Outcome{Kind: orchestrator.OutcomeSuccess, Path: "/tmp/tor.tar.xz"})
	})
}
