// Package catalog parses mirror catalog documents and resolves the candidate
// URLs of an item for a target operating system.
//
// A catalog document is a JSON object mapping mirror-list names to objects that
// map item keys to either an object of OS name to URL array, or a plain URL
// array. Declaration order of lists, items and URLs is preserved.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/platform"
)

// Catalog is an immutable, parsed mirror catalog. It is safe for concurrent reads.
type Catalog struct {
	lists  []*MirrorList
	byName map[string]*MirrorList
}

// MirrorList is a named group of items.
type MirrorList struct {
	Name  string
	items []Item
	byKey map[string]int
}

// Item is one downloadable artifact of a mirror list.
type Item struct {
	Key        string
	Candidates CandidateSet
}

// Parse parses a catalog document.
func Parse(data []byte) (*Catalog, error) {
	return ParseFromReader(bytes.NewReader(data))
}

// ParseFromReader parses a catalog document from r.
func ParseFromReader(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, malformed(err, "catalog must be a JSON object")
	}

	c := &Catalog{byName: make(map[string]*MirrorList)}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, malformed(err, "reading mirror list name")
		}
		list, err := parseMirrorList(dec, name)
		if err != nil {
			return nil, err
		}
		c.addList(list)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, malformed(err, "unterminated catalog object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed(fmt.Errorf("unexpected data after catalog object"), "trailing data")
	}
	return c, nil
}

// MirrorLists returns the mirror-list names in document order.
func (c *Catalog) MirrorLists() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.lists))
	for _, l := range c.lists {
		names = append(names, l.Name)
	}
	return names
}

// List returns the named mirror list.
func (c *Catalog) List(name string) (*MirrorList, bool) {
	if c == nil {
		return nil, false
	}
	l, ok := c.byName[name]
	return l, ok
}

// Lookup returns the candidate set of an item, or an error wrapping
// errutils.ErrMirrorListNotFound or errutils.ErrItemNotFound.
func (c *Catalog) Lookup(listName, itemKey string) (CandidateSet, error) {
	list, ok := c.List(listName)
	if !ok {
		return nil, errutils.ErrMirrorListNotFoundWithName(listName)
	}
	set, ok := list.Candidates(itemKey)
	if !ok {
		return nil, errutils.ErrItemNotFoundWithName(listName, itemKey)
	}
	return set, nil
}

// Items returns the items of l in document order.
func (l *MirrorList) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Keys returns the item keys of l in document order.
func (l *MirrorList) Keys() []string {
	keys := make([]string, 0, len(l.items))
	for _, it := range l.items {
		keys = append(keys, it.Key)
	}
	return keys
}

// Candidates returns the candidate set registered for key.
func (l *MirrorList) Candidates(key string) (CandidateSet, bool) {
	i, ok := l.byKey[key]
	if !ok {
		return nil, false
	}
	return l.items[i].Candidates, true
}

// addList keeps the first position of a repeated name and the last value,
// matching encoding/json's handling of duplicate object keys.
func (c *Catalog) addList(list *MirrorList) {
	if prev, ok := c.byName[list.Name]; ok {
		*prev = *list
		return
	}
	c.byName[list.Name] = list
	c.lists = append(c.lists, list)
}

func (l *MirrorList) addItem(it Item) {
	if i, ok := l.byKey[it.Key]; ok {
		l.items[i] = it
		return
	}
	l.byKey[it.Key] = len(l.items)
	l.items = append(l.items, it)
}

func parseMirrorList(dec *json.Decoder, name string) (*MirrorList, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, malformed(err, "mirror list %q must be an object", name)
	}
	list := &MirrorList{Name: name, byKey: make(map[string]int)}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, malformed(err, "reading item key in %q", name)
		}
		set, err := parseCandidateSet(dec)
		if err != nil {
			return nil, malformed(err, "item %q in %q", key, name)
		}
		list.addItem(Item{Key: key, Candidates: set})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, malformed(err, "unterminated mirror list %q", name)
	}
	return list, nil
}

func parseCandidateSet(dec *json.Decoder) (CandidateSet, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('['):
		urls, err := readStringsUntilClose(dec)
		if err != nil {
			return nil, err
		}
		return Flat(urls), nil
	case json.Delim('{'):
		set := make(OSPartitioned)
		for dec.More() {
			osName, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			if err := expectDelim(dec, '['); err != nil {
				return nil, fmt.Errorf("entry for %q must be an array: %w", osName, err)
			}
			urls, err := readStringsUntilClose(dec)
			if err != nil {
				return nil, fmt.Errorf("entry for %q: %w", osName, err)
			}
			set[platform.OS(osName)] = urls
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		return set, nil
	default:
		return nil, fmt.Errorf("value must be an object or an array, got %v", tok)
	}
}

// readStringsUntilClose reads string tokens up to and including the closing ']'.
func readStringsUntilClose(dec *json.Decoder) ([]string, error) {
	urls := make([]string, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		s, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("URL must be a string, got %v", tok)
		}
		urls = append(urls, s)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return urls, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func malformed(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %w", errutils.ErrMalformedCatalog, fmt.Sprintf(format, args...), err)
}
