package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/platform"
)

const sampleCatalog = `{
	"Stable": {
		"ProtonVPN": {"Windows": ["https://a/p.exe", "https://b/p.exe"], "macOS": []},
		"Tor": ["https://c/tor.tar.xz"],
		"Psiphon": {"Linux": ["https://d/psiphon"], "Haiku": ["https://e/psiphon"]}
	},
	"Beta": {
		"Zed": ["https://z/1", "https://z/1"],
		"Alpha": []
	}
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"Stable", "Beta"}, c.MirrorLists())

	stable, ok := c.List("Stable")
	require.True(t, ok)
	assert.Equal(t, []string{"ProtonVPN", "Tor", "Psiphon"}, stable.Keys())

	beta, ok := c.List("Beta")
	require.True(t, ok)
	assert.Equal(t, []string{"Zed", "Alpha"}, beta.Keys())

	set, err := c.Lookup("Stable", "ProtonVPN")
	require.NoError(t, err)
	part, ok := set.(OSPartitioned)
	require.True(t, ok, "expected OS-partitioned candidates, got %T", set)
	assert.Equal(t, []string{"https://a/p.exe", "https://b/p.exe"}, part[platform.Windows])

	set, err = c.Lookup("Stable", "Tor")
	require.NoError(t, err)
	assert.IsType(t, Flat{}, set)

	set, err = c.Lookup("Stable", "Psiphon")
	require.NoError(t, err)
	assert.Equal(t, []platform.OS{"Haiku", platform.Linux}, set.(OSPartitioned).Systems())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `mirrors`},
		{name: "top level array", payload: `["https://a"]`},
		{name: "top level string", payload: `"Stable"`},
		{name: "mirror list not an object", payload: `{"Stable": ["https://a"]}`},
		{name: "item is a string", payload: `{"Stable": {"Tor": "https://c"}}`},
		{name: "item is null", payload: `{"Stable": {"Tor": null}}`},
		{name: "item is a number", payload: `{"Stable": {"Tor": 3}}`},
		{name: "os entry not an array", payload: `{"Stable": {"Tor": {"Linux": "https://c"}}}`},
		{name: "url not a string", payload: `{"Stable": {"Tor": [1]}}`},
		{name: "truncated", payload: `{"Stable": {"Tor": ["https://c"]`},
		{name: "trailing data", payload: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, errutils.ErrMalformedCatalog)
		})
	}
}

func TestParse_EmptyObject(t *testing.T) {
	c, err := ParseFromReader(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, c.MirrorLists())
}

func TestParse_DuplicateKeysLastValueWins(t *testing.T) {
	c, err := Parse([]byte(`{"L": {"a": ["1"], "b": ["2"], "a": ["3"]}}`))
	require.NoError(t, err)

	list, ok := c.List("L")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list.Keys())
	assert.Equal(t, []string{"3"}, Resolve(c, "L", "a", platform.Linux))
}

func TestLookup_Errors(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	_, err = c.Lookup("Nightly", "Tor")
	assert.ErrorIs(t, err, errutils.ErrMirrorListNotFound)

	_, err = c.Lookup("Stable", "Lantern")
	assert.ErrorIs(t, err, errutils.ErrItemNotFound)

	var nilCatalog *Catalog
	_, err = nilCatalog.Lookup("Stable", "Tor")
	assert.ErrorIs(t, err, errutils.ErrMirrorListNotFound)
	assert.Empty(t, nilCatalog.MirrorLists())
}
