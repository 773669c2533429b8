// Package hostver orders host-release identifiers. Identifiers are dotted
// numeric strings of arbitrary segment count ("29", "28.2", "1.2.0.4");
// shorter identifiers compare as if zero-padded, so "1.2" equals "1.2.0".
package hostver

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Result is the outcome of comparing two version identifiers.
type Result int

const (
	Less Result = iota - 1
	Equal
	Greater
)

// String returns the comparison result as text.
func (r Result) String() string {
	switch r {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// FormatError reports an unparsable version identifier.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed version identifier %q: %v", e.Input, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Version is a parsed host-release identifier.
type Version struct {
	raw    string
	parsed *goversion.Version
}

// Parse parses a dotted numeric identifier. Returns a *FormatError if the
// identifier cannot be parsed.
func Parse(s string) (*Version, error) {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return nil, &FormatError{Input: s, Err: err}
	}
	return &Version{raw: s, parsed: v}, nil
}

// MustParse parses a dotted numeric identifier and panics on failure.
// Intended for statically known identifiers in payload catalogs.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the identifier as originally written.
func (v *Version) String() string { return v.raw }

// CompareTo orders v against other, zero-padding the shorter identifier.
func (v *Version) CompareTo(other *Version) Result {
	switch c := v.parsed.Compare(other.parsed); {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// AtLeast reports whether v >= other.
func (v *Version) AtLeast(other *Version) bool {
	return v.CompareTo(other) != Less
}

// AtMost reports whether v <= other.
func (v *Version) AtMost(other *Version) bool {
	return v.CompareTo(other) != Greater
}

// Compare orders two version identifiers given as strings. Returns a
// *FormatError if either identifier is unparsable.
func Compare(a, b string) (Result, error) {
	va, err := Parse(a)
	if err != nil {
		return Equal, err
	}
	vb, err := Parse(b)
	if err != nil {
		return Equal, err
	}
	return va.CompareTo(vb), nil
}
