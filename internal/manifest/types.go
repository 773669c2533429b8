package manifest

import (
	"fmt"

	"github.com/backfill-labs/backfill/pkg/compat"
)

// File is one catalog file: a named, ordered list of capability
// declarations plus the engine-release constraint required to process it.
type File struct {
	Name         string            `yaml:"name" json:"name"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Requires     string            `yaml:"requires,omitempty" json:"requires,omitempty"`
	Declarations []DeclarationSpec `yaml:"declarations" json:"declarations"`
}

// DeclarationSpec is the file form of one capability declaration. Body is
// a symbolic reference resolved by the payload package at link time; the
// file format never carries executable payloads.
type DeclarationSpec struct {
	Name         string `yaml:"name" json:"name"`
	Kind         string `yaml:"kind" json:"kind"`
	Introduced   string `yaml:"introduced,omitempty" json:"introduced,omitempty"`
	MinVersion   string `yaml:"min_version,omitempty" json:"min_version,omitempty"`
	MaxVersion   string `yaml:"max_version,omitempty" json:"max_version,omitempty"`
	Strategy     string `yaml:"strategy" json:"strategy"`
	RealName     string `yaml:"real_name,omitempty" json:"real_name,omitempty"`
	DeferredUnit string `yaml:"deferred_unit,omitempty" json:"deferred_unit,omitempty"`
	Locality     string `yaml:"locality,omitempty" json:"locality,omitempty"`
	Body         string `yaml:"body,omitempty" json:"body,omitempty"`
}

// Declaration converts the spec to an engine declaration. The body stays
// symbolic (the reference string); guards cannot be expressed in files.
func (s *DeclarationSpec) Declaration() (*compat.Declaration, error) {
	kind, ok := compat.ParseKind(s.Kind)
	if !ok {
		return nil, fmt.Errorf("declaration %q: unknown kind %q", s.Name, s.Kind)
	}
	strategy, ok := compat.ParseStrategy(s.Strategy)
	if !ok {
		return nil, fmt.Errorf("declaration %q: unknown strategy %q", s.Name, s.Strategy)
	}
	locality, ok := compat.ParseLocality(s.Locality)
	if !ok {
		return nil, fmt.Errorf("declaration %q: unknown locality %q", s.Name, s.Locality)
	}

	d := &compat.Declaration{
		Name:         s.Name,
		Kind:         kind,
		Introduced:   s.Introduced,
		MinVersion:   s.MinVersion,
		MaxVersion:   s.MaxVersion,
		Strategy:     strategy,
		RealName:     s.RealName,
		DeferredUnit: s.DeferredUnit,
		Locality:     locality,
		Body:         s.Body,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Catalog converts every declaration in the file into a registered engine
// catalog, preserving file order.
func (f *File) Catalog() (*compat.Catalog, error) {
	c := compat.NewCatalog()
	for i := range f.Declarations {
		d, err := f.Declarations[i].Declaration()
		if err != nil {
			return nil, err
		}
		if err := c.Register(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}
