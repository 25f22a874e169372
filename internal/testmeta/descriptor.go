// Package testmeta reads the execution descriptors attached to DSC resource
// test scripts.
//
// A test script is decorated with one or more attribute lines:
//
//	[Microsoft.DscResourceKit.IntegrationTest(OrderNumber = 1, ContainerName = 'ContainerName', ContainerImage = 'Organization/ImageName:Tag')]
//	param()
//
//	[Microsoft.DscResourceKit.UnitTest(ContainerName = 'ContainerName', ContainerImage = 'Organization/ImageName:Tag')]
//	param()
//
// Descriptors are inert. An external runner decides scheduling and container
// placement from them; this package only parses and lists them.
package testmeta

import (
	"fmt"
	"sort"
)

// Kind distinguishes integration descriptors from unit descriptors.
type Kind string

const (
	KindIntegration Kind = "integration"
	KindUnit        Kind = "unit"
)

// Descriptor is the metadata attached to one test script.
type Descriptor struct {
	Kind           Kind   `yaml:"kind"`
	Order          *int   `yaml:"order,omitempty"`
	ContainerName  string `yaml:"container_name,omitempty"`
	ContainerImage string `yaml:"container_image,omitempty"`
	Source         string `yaml:"source"`
	Line           int    `yaml:"line"`
}

// Validate checks the kind and that only integration descriptors carry an order.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindIntegration:
	case KindUnit:
		if d.Order != nil {
			return fmt.Errorf("%w: unit tests cannot set an order number", ErrInvalidDecoration)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidDecoration, d.Kind)
	}
	return nil
}

// SortByOrder orders descriptors with an order number ascending, followed by
// those without one. Ties keep their discovery order.
func SortByOrder(descriptors []Descriptor) {
	sort.SliceStable(descriptors, func(i, j int) bool {
		a, b := descriptors[i].Order, descriptors[j].Order
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		default:
			return false
		}
	})
}
