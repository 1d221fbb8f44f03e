package catalog

import (
	"github.com/cperrin88/mirrorget/pkg/platform"
)

// Resolve returns the ordered candidate URLs of itemKey in listName for os.
// An unknown list or item, or an OS map without an entry for os, yields an
// empty result. URLs are returned in declaration order and are not de-duplicated.
func Resolve(c *Catalog, listName, itemKey string, os platform.OS) []string {
	set, err := c.Lookup(listName, itemKey)
	if err != nil {
		return []string{}
	}
	return set.For(os)
}

// AvailableItemKeys returns, in declaration order, the keys of listName that can
// be downloaded on os: every flat item, and OS-partitioned items with a
// non-empty entry for os.
func AvailableItemKeys(c *Catalog, listName string, os platform.OS) []string {
	list, ok := c.List(listName)
	if !ok {
		return []string{}
	}
	keys := make([]string, 0, len(list.items))
	for _, it := range list.items {
		if it.Candidates.Available(os) {
			keys = append(keys, it.Key)
		}
	}
	return keys
}
