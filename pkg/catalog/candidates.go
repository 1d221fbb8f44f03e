package catalog

import (
	"slices"

	"github.com/cperrin88/mirrorget/pkg/platform"
)

// CandidateSet holds the mirror URLs of one catalog item. It is either
// OSPartitioned or Flat; the shape is fixed when the catalog is parsed.
type CandidateSet interface {
	// For returns the ordered candidate URLs for os. The result is a copy.
	For(os platform.OS) []string
	// Available reports whether the item may be offered for os.
	Available(os platform.OS) bool

	candidateSet()
}

// OSPartitioned maps an operating system name to its ordered mirror URLs.
// Keys are kept exactly as they appear in the document, including names no
// platform.OS value will ever match.
type OSPartitioned map[platform.OS][]string

// For returns the URLs registered for os. There is no fallback to another OS.
func (p OSPartitioned) For(os platform.OS) []string {
	return slices.Clone(p[os])
}

// Available reports whether p has a non-empty entry for os.
func (p OSPartitioned) Available(os platform.OS) bool {
	return len(p[os]) > 0
}

// Systems returns the OS keys of p, sorted.
func (p OSPartitioned) Systems() []platform.OS {
	out := make([]platform.OS, 0, len(p))
	for os := range p {
		out = append(out, os)
	}
	slices.Sort(out)
	return out
}

func (OSPartitioned) candidateSet() {}

// Flat is an OS-agnostic list of mirror URLs.
type Flat []string

// For returns every URL of f regardless of os.
func (f Flat) For(platform.OS) []string {
	return slices.Clone([]string(f))
}

// Available is always true: a flat list applies to every OS, even when empty.
func (Flat) Available(platform.OS) bool {
	return true
}

func (Flat) candidateSet() {}
