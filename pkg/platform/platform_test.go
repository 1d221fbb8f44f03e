package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/mirrorget/pkg/errutils"
)

func TestDetect(t *testing.T) {
	os := Detect()
	assert.True(t, os.Valid())
	assert.Equal(t, FromGOOS(runtime.GOOS), os)
}

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos string
		want OS
	}{
		{"windows", Windows},
		{"darwin", MacOS},
		{"linux", Linux},
		{"freebsd", Linux},
		{"plan9", Linux},
		{"", Linux},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, FromGOOS(tt.goos))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OS
		ok      bool
		wantErr bool
	}{
		{name: "empty means auto", input: ""},
		{name: "auto", input: "Auto"},
		{name: "windows", input: "Windows", want: Windows, ok: true},
		{name: "win alias", input: "win", want: Windows, ok: true},
		{name: "macos lower", input: "macos", want: MacOS, ok: true},
		{name: "darwin alias", input: "darwin", want: MacOS, ok: true},
		{name: "osx alias", input: "OSX", want: MacOS, ok: true},
		{name: "linux with spaces", input: " Linux ", want: Linux, ok: true},
		{name: "unknown", input: "beos", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errutils.ErrInvalidOSValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestEffective(t *testing.T) {
	assert.Equal(t, MacOS, Effective(MacOS))
	assert.Equal(t, Detect(), Effective(""))
	assert.Equal(t, Detect(), Effective(OS("Amiga")))
}

func TestAll(t *testing.T) {
	assert.Equal(t, []OS{Windows, MacOS, Linux}, All())
	for _, os := range All() {
		assert.True(t, os.Valid(), os.String())
	}
}
