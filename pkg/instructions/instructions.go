// Package instructions renders the post-generation steps shown to the
// operator once a project has been materialized.
//
// The text is markdown. Renderers decide how to present it; the terminal
// renderer styles it, plain output prints it unchanged. It is advisory and
// never affects the outcome of a run.
package instructions

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/paths"
	"github.com/arthur-debert/macgen/pkg/platform"
)

//go:embed instructions.md.tmpl
var source string

var tmpl = template.Must(template.New("instructions").Parse(source))

// Data is what the instruction template is rendered with
type Data struct {
	Label        string
	PlatformDir  string
	Workspace    string
	RunCommand   string
	StartCommand string
}

// NewData collects the template data for a derived path set
func NewData(set *paths.Set, labels platform.Labels, install config.Install) Data {
	manager := install.Preferred
	if fields := install.PreferredCommand(); len(fields) > 0 {
		manager = fields[0]
	}
	return Data{
		Label:        labels.Secondary,
		PlatformDir:  set.PlatformDir,
		Workspace:    set.Workspace,
		RunCommand:   "run-" + strings.ToLower(labels.Secondary),
		StartCommand: strings.TrimSpace(manager + " " + install.ScriptKey),
	}
}

// Markdown renders the instructions as markdown
func Markdown(data Data) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render instructions")
	}
	return buf.String(), nil
}
