// Package datapackage reads Frictionless Data "datapackage.json" descriptors.
//
// A descriptor lists tabular resources, each with a relative file path and a
// field schema. This package fetches descriptors over HTTP, decodes them into
// typed values and selects resources by name.
package datapackage

// Descriptor is a decoded datapackage.json document.
type Descriptor struct {
	Name      string     `json:"name,omitempty"`
	Title     string     `json:"title,omitempty"`
	Resources []Resource `json:"resources" validate:"required,dive"`
}

// Resource is one tabular dataset entry within a descriptor.
type Resource struct {
	Name   string  `json:"name" validate:"required"`
	Path   string  `json:"path" validate:"required"`
	Title  string  `json:"title,omitempty"`
	Format string  `json:"format,omitempty"`
	Schema *Schema `json:"schema" validate:"required"`
}

// Schema is the table schema of a resource.
type Schema struct {
	Fields []Field `json:"fields" validate:"required,dive"`
}

// Field describes one column of a resource.
type Field struct {
	Name string `json:"name" validate:"required"`
	// Type is the descriptor-level type tag (integer, number, string, ...).
	Type        string `json:"type" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ResourceNames returns the names of all resources in descriptor order.
func (d *Descriptor) ResourceNames() []string {
	names := make([]string, 0, len(d.Resources))
	for _, r := range d.Resources {
		names = append(names, r.Name)
	}
	return names
}
