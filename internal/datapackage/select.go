package datapackage

import (
	"fmt"
	"strings"
)

// AllResources is the resource-name sentinel that selects every resource of
// a descriptor. An empty name means the same.
const AllResources = "_ALL_"

// NotFoundError reports a named resource that does not exist in a descriptor.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no resource named %q, available: %s", e.Name, e.AvailableList())
}

// AvailableList returns the available resource names joined with ", ".
func (e *NotFoundError) AvailableList() string {
	return strings.Join(e.Available, ", ")
}

// IsWildcard reports whether name selects all resources.
func IsWildcard(name string) bool {
	return name == "" || name == AllResources
}

// Select returns the resources of d whose name equals target, in descriptor
// order, or every resource when target is a wildcard. A named target with no
// match yields a *NotFoundError listing the available names.
func Select(d *Descriptor, target string) ([]Resource, error) {
	if IsWildcard(target) {
		return append([]Resource(nil), d.Resources...), nil
	}

	var matches []Resource
	for _, r := range d.Resources {
		if r.Name == target {
			matches = append(matches, r)
		}
	}

	if len(matches) == 0 {
		return nil, &NotFoundError{Name: target, Available: d.ResourceNames()}
	}
	return matches, nil
}
