package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backfill-labs/backfill/pkg/compat"
)

const sampleCatalog = `name: stock
description: Stock fallbacks for list and string helpers.
requires: ">= 0.1.0"
declarations:
  - name: take
    kind: function
    introduced: "29.1"
    strategy: indirect
    real_name: compat--take
    body: shims.Take
  - name: plist-get
    kind: function
    strategy: prefixed-only
    real_name: compat-plist-get
    body: shims.PlistGet
  - name: history-ring
    kind: variable
    introduced: "28.1"
    strategy: direct
    locality: permanent-local
  - name: ring-resize
    kind: function
    introduced: "29.1"
    strategy: indirect
    real_name: compat--ring-resize
    deferred_unit: ring
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	f, err := Parse(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name != "stock" {
		t.Errorf("Name = %q, want stock", f.Name)
	}
	if f.Requires != ">= 0.1.0" {
		t.Errorf("Requires = %q", f.Requires)
	}
	if len(f.Declarations) != 4 {
		t.Fatalf("got %d declarations, want 4", len(f.Declarations))
	}
	if f.Declarations[0].RealName != "compat--take" {
		t.Errorf("first declaration real_name = %q", f.Declarations[0].RealName)
	}
	if f.Declarations[3].DeferredUnit != "ring" {
		t.Errorf("deferred_unit = %q, want ring", f.Declarations[3].DeferredUnit)
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	if _, err := ParseBytes([]byte("declarations: []\n"), "inline"); err == nil {
		t.Error("catalog without a name should be rejected")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := ParseBytes([]byte("name: [unclosed"), "inline"); err == nil {
		t.Error("malformed YAML should be rejected")
	}
}

func TestFileCatalog(t *testing.T) {
	f, err := ParseBytes([]byte(sampleCatalog), "inline")
	if err != nil {
		t.Fatal(err)
	}
	c, err := f.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("catalog has %d declarations, want 4", c.Len())
	}

	d, ok := c.Get("take")
	if !ok {
		t.Fatal("take not registered")
	}
	if d.Strategy != compat.StrategyIndirect || d.RealName != "compat--take" {
		t.Errorf("take declaration = %+v", d)
	}

	// Registration preserved file order.
	if c.Declarations()[3].Name != "ring-resize" {
		t.Errorf("order not preserved: %v", c.Declarations()[3].Name)
	}
}

func TestDeclarationSpecRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		spec DeclarationSpec
	}{
		{"kind", DeclarationSpec{Name: "x", Kind: "command", Strategy: "direct"}},
		{"strategy", DeclarationSpec{Name: "x", Kind: "function", Strategy: "sideways"}},
		{"locality", DeclarationSpec{Name: "x", Kind: "variable", Strategy: "direct", Locality: "global"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.spec.Declaration(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFileCatalogSurfacesConfigError(t *testing.T) {
	f := &File{
		Name: "broken",
		Declarations: []DeclarationSpec{
			{Name: "take", Kind: "function", Strategy: "indirect", RealName: "take"},
		},
	}
	if _, err := f.Catalog(); err == nil {
		t.Error("self-aliasing declaration should fail catalog conversion")
	}
}
