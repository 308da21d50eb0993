package display_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macgen/pkg/install"
	"github.com/arthur-debert/macgen/pkg/materialize"
	"github.com/arthur-debert/macgen/pkg/paths"
	"github.com/arthur-debert/macgen/pkg/platform"
	"github.com/arthur-debert/macgen/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReport(t *testing.T) {
	root := filepath.FromSlash("/work/Acme")
	report := &materialize.Report{
		Basename:     "Acme",
		DestRoot:     root,
		Written:      []string{filepath.Join(root, "macos", "Podfile")},
		Skipped:      []string{filepath.Join(root, "metro.config.macos.js")},
		Instructions: "## Run\n",
	}

	s := display.FromReport(report)
	assert.Equal(t, "Generated Acme in "+root, s.Title)
	assert.Equal(t, "## Run\n", s.Markdown)
	require.Len(t, s.Sections, 2, "empty sections are dropped")
	assert.Equal(t, "Written", s.Sections[0].Style)
	assert.Equal(t, []display.Item{{Value: filepath.Join("macos", "Podfile")}}, s.Sections[0].Items)
	assert.Equal(t, "Skipped", s.Sections[1].Style)
}

func TestFromInstall(t *testing.T) {
	s := display.FromInstall(&install.Result{
		Manifest:  "package.json",
		ScriptKey: "start:macos",
		Script:    "node cli.js start",
		Manager:   install.PackageManager{Command: []string{"npm", "i"}, LockFile: "yarn.lock"},
	})
	assert.Equal(t, "Dependencies skipped", s.Title)
	require.Len(t, s.Sections, 1)
	assert.Contains(t, s.Sections[0].Items, display.Item{Key: "command", Value: "npm i"})
	assert.Contains(t, s.Sections[0].Items, display.Item{Key: "lock file", Value: "yarn.lock (not found)"})
}

func TestFromPaths(t *testing.T) {
	set, err := paths.Default().Derive("Acme")
	require.NoError(t, err)

	s := display.FromPaths(set, platform.DefaultLabels())
	require.Len(t, s.Sections, 1)
	items := s.Sections[0].Items
	assert.Contains(t, items, display.Item{Key: "src dir macOS", Value: filepath.Join("macos", "Acme-macOS")})
	assert.Contains(t, items, display.Item{Key: "workspace", Value: filepath.Join("macos", "Acme.xcworkspace")})
	assert.Len(t, items, 10)
}

func TestConvert(t *testing.T) {
	_, ok := display.Convert("not a result")
	assert.False(t, ok)

	_, ok = display.Convert((*materialize.Report)(nil))
	assert.False(t, ok)

	s, ok := display.Convert(&materialize.Report{Basename: "x"})
	assert.True(t, ok)
	assert.Empty(t, s.Sections)
}

func TestPathsViewForPlatform(t *testing.T) {
	set, err := paths.Default().Derive("Acme")
	require.NoError(t, err)

	s, ok := display.Convert(&display.PathsView{Set: set, Labels: platform.DefaultLabels(), Platform: platform.Primary})
	require.True(t, ok)
	assert.Equal(t, "Paths for Acme (iOS)", s.Title)
	assert.Equal(t, []display.Item{
		{Key: "project name", Value: "Acme-iOS"},
		{Key: "src dir", Value: filepath.Join("macos", "Acme-iOS")},
		{Key: "scheme", Value: filepath.Join("macos", "Acme.xcodeproj", "xcshareddata", "xcschemes", "Acme-iOS.xcscheme")},
	}, s.Sections[0].Items)
}
