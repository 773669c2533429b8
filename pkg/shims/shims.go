// Package shims carries a small set of ready-made capability declarations
// with their fallback bodies: list truncation, string limiting, and a
// prefixed property-list getter. Host embedders register them alongside
// their own payloads; the engine tests use them as realistic fixtures.
package shims

import (
	"github.com/backfill-labs/backfill/pkg/compat"
)

// Take returns the first n elements of list, or the whole list when it has
// fewer than n elements.
func Take(list []any, n int) []any {
	if n <= 0 {
		return nil
	}
	if n >= len(list) {
		return list
	}
	return list[:n]
}

// NTake is the destructive spelling of Take; with slices it shares Take's
// implementation.
func NTake(list []any, n int) []any { return Take(list, n) }

// StringLimit truncates s to at most limit bytes without splitting a rune.
func StringLimit(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// PlistGet looks up key in a flat key/value list, returning nil when the
// key is absent or the list is malformed.
func PlistGet(plist []any, key any) any {
	for i := 0; i+1 < len(plist); i += 2 {
		if plist[i] == key {
			return plist[i+1]
		}
	}
	return nil
}

// EnsureList wraps a non-list value in a single-element list; lists pass
// through and nil stays empty.
func EnsureList(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		return x
	default:
		return []any{x}
	}
}

// Register adds the stock declarations to a catalog in a fixed order.
func Register(c *compat.Catalog) error {
	decls := []*compat.Declaration{
		{
			Name:       "take",
			Kind:       compat.KindFunction,
			Introduced: "29.1",
			Strategy:   compat.StrategyIndirect,
			RealName:   "compat--take",
			Body:       Take,
		},
		{
			Name:       "ntake",
			Kind:       compat.KindFunction,
			Introduced: "29.1",
			Strategy:   compat.StrategyIndirect,
			RealName:   "compat--ntake",
			Body:       NTake,
		},
		{
			Name:       "string-limit",
			Kind:       compat.KindFunction,
			Introduced: "28.1",
			Strategy:   compat.StrategyIndirect,
			RealName:   "compat--string-limit",
			Body:       StringLimit,
		},
		{
			Name:       "ensure-list",
			Kind:       compat.KindFunction,
			Introduced: "28.1",
			Strategy:   compat.StrategyDirect,
			Body:       EnsureList,
		},
		{
			Name:     "plist-get",
			Kind:     compat.KindFunction,
			Strategy: compat.StrategyPrefixedOnly,
			RealName: "compat-plist-get",
			Body:     PlistGet,
		},
	}

	for _, d := range decls {
		if err := c.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// Catalog returns a fresh catalog holding only the stock declarations.
func Catalog() *compat.Catalog {
	c := compat.NewCatalog()
	if err := Register(c); err != nil {
		// The stock declarations are static; a failure here is a
		// packaging defect.
		panic(err)
	}
	return c
}
