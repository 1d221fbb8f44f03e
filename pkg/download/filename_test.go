package download

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name string
		cd   string
		url  string
		want string
	}{
		{
			name: "extended form is percent-decoded",
			cd:   `attachment; filename*=UTF-8''Pr%C3%B3xy.exe`,
			url:  "https://a/dl",
			want: "Próxy.exe",
		},
		{
			name: "extended form wins over plain",
			cd:   `attachment; filename="fallback.exe"; filename*=UTF-8''real%20name.exe`,
			url:  "https://a/dl",
			want: "real name.exe",
		},
		{
			name: "quoted plain form",
			cd:   `attachment; filename="setup.msi"`,
			url:  "https://a/dl",
			want: "setup.msi",
		},
		{
			name: "unquoted name with spaces",
			cd:   `attachment; filename=my setup.msi`,
			url:  "https://a/dl",
			want: "my setup.msi",
		},
		{
			name: "directory components stripped",
			cd:   `attachment; filename="/etc/cron.d/job"`,
			url:  "https://a/dl",
			want: "job",
		},
		{
			name: "windows separators stripped",
			cd:   `attachment; filename="..\\..\\win.ini"`,
			url:  "https://a/dl",
			want: "win.ini",
		},
		{
			name: "dot-dot falls through to url",
			cd:   `attachment; filename=".."`,
			url:  "https://a/files/p.exe",
			want: "p.exe",
		},
		{
			name: "inline without filename uses url",
			cd:   `inline`,
			url:  "https://a/files/p.exe?token=1",
			want: "p.exe",
		},
		{
			name: "percent-encoded url segment",
			url:  "https://a/files/Tor%20Browser.dmg",
			want: "Tor Browser.dmg",
		},
		{
			name: "no path",
			url:  "https://a",
			want: FallbackFilename,
		},
		{
			name: "trailing slash",
			url:  "https://a/files/",
			want: FallbackFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFilename(tt.cd, tt.url))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "", SanitizeFilename(""))
	assert.Equal(t, "", SanitizeFilename("   "))
	assert.Equal(t, "", SanitizeFilename("/"))
	assert.Equal(t, "", SanitizeFilename("."))
	assert.Equal(t, "a.txt", SanitizeFilename("dir/sub/a.txt"))
}

func TestProgress(t *testing.T) {
	p := Progress{Downloaded: 500, Total: 1000, Elapsed: 2 * time.Second}
	f, ok := p.Fraction()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-9)
	assert.InDelta(t, 250.0, p.BytesPerSecond(), 1e-9)

	assert.Zero(t, Progress{Downloaded: 10}.BytesPerSecond())
}

func TestFormatSpeed(t *testing.T) {
	assert.Equal(t, "999 B/s", FormatSpeed(999))
	assert.Equal(t, "1000 B/s", FormatSpeed(1000))
	assert.Equal(t, "1.50 KB/s", FormatSpeed(1500))
	assert.Equal(t, "2.50 MB/s", FormatSpeed(2_500_000))
}
