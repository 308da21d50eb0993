// Package platform defines the two target platform variants a generated
// project supports. Both variants share the same path conventions and
// differ only in their display label.
package platform

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
)

// Platform identifies a platform variant
type Platform int

const (
	// Primary is the first variant ("iOS" by default)
	Primary Platform = iota + 1
	// Secondary is the second variant ("macOS" by default)
	Secondary
)

// All lists every platform in manifest order
var All = []Platform{Primary, Secondary}

// Labels maps each platform to its display label
type Labels struct {
	Primary   string
	Secondary string
}

// LabelsFrom builds Labels from configuration
func LabelsFrom(cfg config.Platforms) Labels {
	return Labels{Primary: cfg.Primary, Secondary: cfg.Secondary}
}

// DefaultLabels returns the labels from the embedded configuration
func DefaultLabels() Labels {
	return LabelsFrom(config.Default().Platforms)
}

// Valid reports whether p is one of the enumerated platforms
func (p Platform) Valid() bool {
	return p == Primary || p == Secondary
}

// String returns the platform's enumeration name
func (p Platform) String() string {
	switch p {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler so platforms can key JSON
// objects
func (p Platform) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.InvalidArgument("platform", int(p))
	}
	return []byte(p.String()), nil
}

// Label returns the display label of p, failing for unknown platforms
func (l Labels) Label(p Platform) (string, error) {
	switch p {
	case Primary:
		return l.Primary, nil
	case Secondary:
		return l.Secondary, nil
	default:
		return "", errors.InvalidArgument("platform", p)
	}
}

// Parse resolves s as either an enumeration name ("primary") or a display
// label ("macOS"). Matching is case-insensitive.
func (l Labels) Parse(s string) (Platform, error) {
	switch {
	case strings.EqualFold(s, Primary.String()), strings.EqualFold(s, l.Primary):
		return Primary, nil
	case strings.EqualFold(s, Secondary.String()), strings.EqualFold(s, l.Secondary):
		return Secondary, nil
	default:
		return 0, errors.InvalidArgument("platform", s).
			WithDetail("accepted", []string{l.Primary, l.Secondary})
	}
}
