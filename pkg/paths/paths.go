package paths

import (
	"path/filepath"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/platform"
)

// Deriver maps basenames and platforms to relative paths
type Deriver struct {
	layout config.Layout
	labels platform.Labels
}

// New creates a Deriver for the given layout and platform labels
func New(layout config.Layout, labels platform.Labels) *Deriver {
	return &Deriver{layout: layout, labels: labels}
}

// FromConfig creates a Deriver from a loaded configuration
func FromConfig(cfg *config.Config) *Deriver {
	return New(cfg.Layout, platform.LabelsFrom(cfg.Platforms))
}

// Default creates a Deriver using the embedded default configuration
func Default() *Deriver {
	return FromConfig(config.Default())
}

// Labels returns the platform labels used by d
func (d *Deriver) Labels() platform.Labels {
	return d.labels
}

// PlatformDir is the root directory holding all platform artifacts
func (d *Deriver) PlatformDir() string {
	return d.layout.PlatformDir
}

// DependencyManifest is the platform dependency manifest (the Podfile)
func (d *Deriver) DependencyManifest() string {
	return filepath.Join(d.layout.PlatformDir, d.layout.DependencyManifest)
}

// ProjectName returns basename + "-" + the platform's display label
func (d *Deriver) ProjectName(basename string, p platform.Platform) (string, error) {
	label, err := d.labels.Label(p)
	if err != nil {
		return "", err
	}
	return basename + "-" + label, nil
}

// SrcDir is the per-platform source directory
func (d *Deriver) SrcDir(basename string, p platform.Platform) (string, error) {
	name, err := d.ProjectName(basename, p)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.layout.PlatformDir, name), nil
}

// BundleProject is the IDE project bundle directory
func (d *Deriver) BundleProject(basename string) string {
	return filepath.Join(d.layout.PlatformDir, basename+d.layout.BundleExt)
}

// Workspace is the IDE workspace bundle. It is never materialized by the
// copy step; it is only referenced in operator instructions.
func (d *Deriver) Workspace(basename string) string {
	return filepath.Join(d.layout.PlatformDir, basename+d.layout.WorkspaceExt)
}

// ProjectDescriptor is the project manifest file inside the bundle
func (d *Deriver) ProjectDescriptor(basename string) string {
	return filepath.Join(d.BundleProject(basename), d.layout.ProjectDescriptor)
}

// SchemesDir is the shared schemes directory inside the bundle
func (d *Deriver) SchemesDir(basename string) string {
	return filepath.Join(d.BundleProject(basename), d.layout.SharedDataDir, d.layout.SchemesDir)
}

// SchemeFile is the per-platform shared scheme
func (d *Deriver) SchemeFile(basename string, p platform.Platform) (string, error) {
	name, err := d.ProjectName(basename, p)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.SchemesDir(basename), name+d.layout.SchemeExt), nil
}

// Set is every derived path for one basename
type Set struct {
	Basename           string                       `json:"basename"`
	PlatformDir        string                       `json:"platformDir"`
	DependencyManifest string                       `json:"dependencyManifest"`
	SrcDirs            map[platform.Platform]string `json:"srcDirs"`
	BundleProject      string                       `json:"bundleProject"`
	Workspace          string                       `json:"workspace"`
	ProjectDescriptor  string                       `json:"projectDescriptor"`
	SchemesDir         string                       `json:"schemesDir"`
	SchemeFiles        map[platform.Platform]string `json:"schemeFiles"`
}

// Derive computes the full Set for basename
func (d *Deriver) Derive(basename string) (*Set, error) {
	set := &Set{
		Basename:           basename,
		PlatformDir:        d.PlatformDir(),
		DependencyManifest: d.DependencyManifest(),
		SrcDirs:            make(map[platform.Platform]string, len(platform.All)),
		BundleProject:      d.BundleProject(basename),
		Workspace:          d.Workspace(basename),
		ProjectDescriptor:  d.ProjectDescriptor(basename),
		SchemesDir:         d.SchemesDir(basename),
		SchemeFiles:        make(map[platform.Platform]string, len(platform.All)),
	}
	for _, p := range platform.All {
		src, err := d.SrcDir(basename, p)
		if err != nil {
			return nil, err
		}
		scheme, err := d.SchemeFile(basename, p)
		if err != nil {
			return nil, err
		}
		set.SrcDirs[p] = src
		set.SchemeFiles[p] = scheme
	}
	return set, nil
}

// Directories lists the directories that must exist before any template
// file is copied, parents first.
func (s *Set) Directories() []string {
	dirs := []string{s.PlatformDir}
	for _, p := range platform.All {
		dirs = append(dirs, s.SrcDirs[p])
	}
	return append(dirs, s.BundleProject, s.SchemesDir)
}
