// Package catalog provides the well-known external type names the binding
// passes consult: string-enum-like types that bind as owned strings, and the
// object types exported by host binding crates.
//
// Catalogs are immutable once built. The default catalog is decoded from the
// embedded catalog.yaml on first use and shared by every unit.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

// Host describes a binding crate and the types it exports.
type Host struct {
	Name  string   `yaml:"name"`  // Short name: "web_sys"
	Crate string   `yaml:"crate"` // Crate path segment used in `use ::crate::Type`
	Types []string `yaml:"types"`
}

// Data is the serialized form of a catalog.
type Data struct {
	StringTypes []string `yaml:"string_types"`
	Hosts       []Host   `yaml:"hosts"`
}

// Catalog indexes known type names. All methods are safe for concurrent use
// because a Catalog never changes after construction.
type Catalog struct {
	hosts []*Host

	// stringTypes holds names that bind as owned strings
	stringTypes map[string]bool

	// typeIndex maps a type name to the first host that exports it
	typeIndex map[string]*Host
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog decoded from the embedded data.
func Default() *Catalog {
	defaultOnce.Do(func() {
		var data Data
		if defaultErr = yaml.Unmarshal(defaultData, &data); defaultErr != nil {
			return
		}
		defaultCatalog = New(data)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: embedded data is invalid: %v", defaultErr))
	}
	return defaultCatalog
}

// Parse decodes catalog data from YAML.
func Parse(src []byte) (*Catalog, error) {
	var data Data
	if err := yaml.Unmarshal(src, &data); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return New(data), nil
}

// New builds a catalog from data. Hosts keep their order; when two hosts
// export the same name the earlier one wins.
func New(data Data) *Catalog {
	c := &Catalog{
		stringTypes: make(map[string]bool, len(data.StringTypes)),
		typeIndex:   make(map[string]*Host),
	}
	for _, s := range data.StringTypes {
		c.stringTypes[s] = true
	}
	for i := range data.Hosts {
		h := data.Hosts[i]
		if h.Crate == "" {
			h.Crate = h.Name
		}
		hostCopy := h
		c.hosts = append(c.hosts, &hostCopy)
		for _, t := range hostCopy.Types {
			if _, ok := c.typeIndex[t]; !ok {
				c.typeIndex[t] = &hostCopy
			}
		}
	}
	return c
}

// Extend returns a new catalog holding c's names plus extra. Extra hosts with
// the name of an existing host add types to it.
func (c *Catalog) Extend(extra Data) *Catalog {
	data := c.Data()
	data.StringTypes = append(data.StringTypes, extra.StringTypes...)
	for _, eh := range extra.Hosts {
		merged := false
		for i := range data.Hosts {
			if data.Hosts[i].Name == eh.Name {
				data.Hosts[i].Types = append(data.Hosts[i].Types, eh.Types...)
				merged = true
				break
			}
		}
		if !merged {
			data.Hosts = append(data.Hosts, eh)
		}
	}
	return New(data)
}

// Data returns a copy of the catalog contents.
func (c *Catalog) Data() Data {
	var data Data
	for s := range c.stringTypes {
		data.StringTypes = append(data.StringTypes, s)
	}
	for _, h := range c.hosts {
		data.Hosts = append(data.Hosts, Host{
			Name:  h.Name,
			Crate: h.Crate,
			Types: append([]string(nil), h.Types...),
		})
	}
	return data
}

// IsStringType reports whether name is a string-enum-like type.
func (c *Catalog) IsStringType(name string) bool {
	return c.stringTypes[name]
}

// HostOf returns the host crate exporting name.
func (c *Catalog) HostOf(name string) (*Host, bool) {
	h, ok := c.typeIndex[name]
	return h, ok
}

// Known reports whether name is in any catalog.
func (c *Catalog) Known(name string) bool {
	if c.stringTypes[name] {
		return true
	}
	_, ok := c.typeIndex[name]
	return ok
}

// Names returns every known name: string types first, then host types.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.stringTypes)+len(c.typeIndex))
	for s := range c.stringTypes {
		out = append(out, s)
	}
	for t := range c.typeIndex {
		if !c.stringTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

// Hosts returns the registered hosts in priority order.
func (c *Catalog) Hosts() []*Host {
	return c.hosts
}
