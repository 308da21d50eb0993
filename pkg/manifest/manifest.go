package manifest

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/paths"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

// Kind is the operation applied to a manifest entry
type Kind int

const (
	// Replace copies with substitution and honors the overwrite policy
	Replace Kind = iota + 1
	// Append extends the destination instead of replacing it
	Append
	// Notify copies like Replace and reports each written file
	Notify
)

var kindNames = map[Kind]string{
	Replace: "replace",
	Append:  "append",
	Notify:  "notify",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a kind name
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, errors.InvalidArgument("kind", s)
}

// MarshalYAML implements yaml.Marshaler
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Path references understood by Build
const (
	RefDependencyManifest = "dependencyManifest"
	RefSrcDir             = "srcDir"
	RefProjectDescriptor  = "projectDescriptor"
	RefSchemeFile         = "schemeFile"
	RefLiteral            = "literal"
)

// Record is one declared manifest entry, before path resolution
type Record struct {
	Kind     Kind   `yaml:"kind"`
	Ref      string `yaml:"ref"`
	Platform string `yaml:"platform,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

type document struct {
	Entries []Record `yaml:"entries"`
}

// Parse decodes a manifest document
func Parse(data []byte) ([]Record, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		if errors.GetErrorCode(err) == errors.ErrInvalidArgument {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse template manifest")
	}
	return doc.Entries, nil
}

// Default returns the records of the embedded manifest
func Default() []Record {
	records, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("manifest: invalid embedded manifest: %v", err))
	}
	return records
}

// Entry is a resolved manifest entry. Source includes the source root;
// Destination is relative to the destination root.
type Entry struct {
	Kind        Kind
	Source      string
	Destination string
}

// Build resolves records into entries. Sources are derived from oldBase
// and joined to sourceRoot, destinations are derived from newBase.
func Build(records []Record, d *paths.Deriver, sourceRoot, oldBase, newBase string) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))
	for i, rec := range records {
		if _, ok := kindNames[rec.Kind]; !ok {
			return nil, errors.InvalidArgument("kind", rec.Kind).WithDetail("entry", i)
		}
		src, err := resolve(rec, d, oldBase)
		if err != nil {
			return nil, withEntry(err, i)
		}
		dst, err := resolve(rec, d, newBase)
		if err != nil {
			return nil, withEntry(err, i)
		}
		entries = append(entries, Entry{
			Kind:        rec.Kind,
			Source:      filepath.Join(sourceRoot, src),
			Destination: dst,
		})
	}
	return entries, nil
}

func resolve(rec Record, d *paths.Deriver, basename string) (string, error) {
	switch rec.Ref {
	case RefDependencyManifest:
		return d.DependencyManifest(), nil
	case RefProjectDescriptor:
		return d.ProjectDescriptor(basename), nil
	case RefSrcDir, RefSchemeFile:
		if rec.Platform == "" {
			return "", errors.MissingArgument("platform")
		}
		p, err := d.Labels().Parse(rec.Platform)
		if err != nil {
			return "", err
		}
		if rec.Ref == RefSrcDir {
			return d.SrcDir(basename, p)
		}
		return d.SchemeFile(basename, p)
	case RefLiteral:
		return literal(rec.Path)
	default:
		return "", errors.InvalidArgument("ref", rec.Ref)
	}
}

// literal accepts only clean relative paths that stay inside the root
func literal(path string) (string, error) {
	if path == "" {
		return "", errors.MissingArgument("path")
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.InvalidArgument("path", path)
	}
	return clean, nil
}

func withEntry(err error, index int) error {
	if e, ok := err.(*errors.MacgenError); ok {
		return e.WithDetail("entry", index)
	}
	return err
}
