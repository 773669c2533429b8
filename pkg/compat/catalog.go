package compat

// Catalog is an ordered set of declarations. Registration order is
// preserved; plans are computed and applied in that order.
type Catalog struct {
	decls  []*Declaration
	byName map[string]*Declaration
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Declaration)}
}

// Register validates and appends a declaration. A second declaration for
// the same original name is a configuration defect and is rejected with a
// *ConfigError.
func (c *Catalog) Register(d *Declaration) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, dup := c.byName[d.Name]; dup {
		return &ConfigError{Name: d.Name, Reason: "duplicate declaration for original name"}
	}
	c.decls = append(c.decls, d)
	c.byName[d.Name] = d
	return nil
}

// MustRegister registers a declaration and panics on a configuration
// error. Intended for payload packages building static catalogs at load
// time, where a defective declaration must refuse to continue.
func (c *Catalog) MustRegister(d *Declaration) {
	if err := c.Register(d); err != nil {
		panic(err)
	}
}

// Declarations returns the declarations in registration order. The slice
// is shared; callers must not modify it.
func (c *Catalog) Declarations() []*Declaration { return c.decls }

// Get returns the declaration for an original name.
func (c *Catalog) Get(name string) (*Declaration, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Len returns the number of registered declarations.
func (c *Catalog) Len() int { return len(c.decls) }
