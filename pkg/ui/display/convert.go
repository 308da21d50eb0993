package display

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macgen/pkg/install"
	"github.com/arthur-debert/macgen/pkg/materialize"
	"github.com/arthur-debert/macgen/pkg/paths"
	"github.com/arthur-debert/macgen/pkg/platform"
)

// Convert builds a Summary for the result types macgen commands return
func Convert(result interface{}) (Summary, bool) {
	switch v := result.(type) {
	case *materialize.Report:
		return FromReport(v), v != nil
	case *install.Result:
		return FromInstall(v), v != nil
	case *paths.Set:
		return FromPaths(v, platform.DefaultLabels()), v != nil
	case PathsView:
		return v.Summary(), v.Set != nil
	case *PathsView:
		if v == nil {
			return Summary{}, false
		}
		return v.Summary(), v.Set != nil
	default:
		return Summary{}, false
	}
}

// PathsView pairs a path set with the labels to show platforms by.
// A valid Platform narrows the view to that platform's paths.
type PathsView struct {
	Set      *paths.Set        `json:"paths"`
	Labels   platform.Labels   `json:"labels"`
	Platform platform.Platform `json:"platform,omitempty"`
}

// Summary builds the summary for the view
func (v PathsView) Summary() Summary {
	if v.Set == nil || !v.Platform.Valid() {
		return FromPaths(v.Set, v.Labels)
	}
	label, _ := v.Labels.Label(v.Platform)
	return Summary{
		Title: fmt.Sprintf("Paths for %s (%s)", v.Set.Basename, label),
		Sections: []Section{{Title: "Derived paths", Style: "Label", Items: []Item{
			{Key: "project name", Value: v.Set.Basename + "-" + label},
			{Key: "src dir", Value: v.Set.SrcDirs[v.Platform]},
			{Key: "scheme", Value: v.Set.SchemeFiles[v.Platform]},
		}}},
	}
}

// FromReport summarizes a materialization run. Paths are shown relative to
// the destination root.
func FromReport(r *materialize.Report) Summary {
	if r == nil {
		return Summary{}
	}
	rel := relativeTo(r.DestRoot)
	s := Summary{
		Title:    fmt.Sprintf("Generated %s in %s", r.Basename, r.DestRoot),
		Markdown: r.Instructions,
	}
	for _, sec := range []Section{
		{Title: "Written", Style: "Written", Items: pathItems(r.Written, rel)},
		{Title: "Appended", Style: "Appended", Items: pathItems(r.Appended, rel)},
		{Title: "Skipped (already present)", Style: "Skipped", Items: pathItems(r.Skipped, rel)},
	} {
		if !sec.Empty() {
			s.Sections = append(s.Sections, sec)
		}
	}
	return s
}

// FromInstall summarizes an install run
func FromInstall(r *install.Result) Summary {
	if r == nil {
		return Summary{}
	}
	status := "skipped"
	if r.Installed {
		status = "installed"
	}
	lock := "not found"
	if r.Manager.Locked {
		lock = "found"
	}
	return Summary{
		Title: "Dependencies " + status,
		Sections: []Section{{
			Title: "Install",
			Style: "Label",
			Items: []Item{
				{Key: "manifest", Value: r.Manifest},
				{Key: "script " + r.ScriptKey, Value: r.Script},
				{Key: "lock file", Value: fmt.Sprintf("%s (%s)", r.Manager.LockFile, lock)},
				{Key: "command", Value: strings.Join(r.Manager.Command, " ")},
			},
		}},
	}
}

// FromPaths lists every derived path for a basename
func FromPaths(set *paths.Set, labels platform.Labels) Summary {
	if set == nil {
		return Summary{}
	}
	items := []Item{
		{Key: "platform dir", Value: set.PlatformDir},
		{Key: "dependency manifest", Value: set.DependencyManifest},
	}
	for _, p := range platform.All {
		label, _ := labels.Label(p)
		items = append(items, Item{Key: "src dir " + label, Value: set.SrcDirs[p]})
	}
	items = append(items,
		Item{Key: "project bundle", Value: set.BundleProject},
		Item{Key: "project descriptor", Value: set.ProjectDescriptor},
		Item{Key: "workspace", Value: set.Workspace},
		Item{Key: "schemes dir", Value: set.SchemesDir},
	)
	for _, p := range platform.All {
		label, _ := labels.Label(p)
		items = append(items, Item{Key: "scheme " + label, Value: set.SchemeFiles[p]})
	}
	return Summary{
		Title:    "Paths for " + set.Basename,
		Sections: []Section{{Title: "Derived paths", Style: "Label", Items: items}},
	}
}

func relativeTo(root string) func(string) string {
	return func(path string) string {
		if root == "" {
			return path
		}
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return path
	}
}

func pathItems(list []string, rel func(string) string) []Item {
	items := make([]Item, 0, len(list))
	for _, p := range list {
		items = append(items, Item{Value: rel(p)})
	}
	return items
}
