package materialize_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/filesystem"
	"github.com/arthur-debert/macgen/pkg/manifest"
	"github.com/arthur-debert/macgen/pkg/materialize"
	"github.com/arthur-debert/macgen/pkg/template"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const destRoot = "/work/Acme"

var nopLogger = zerolog.Nop()

// env is an in-memory destination with the embedded template as source
type env struct {
	mem  afero.Fs
	opts materialize.Options
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mem := afero.NewMemMapFs()
	return &env{
		mem: mem,
		opts: materialize.Options{
			SourceRoot: ".",
			DestRoot:   destRoot,
			Basename:   "Acme",
			SourceFS:   filesystem.NewReadOnlyIOFS(template.Default()),
			DestFS:     filesystem.NewAferoFS(mem),
			Logger:     &nopLogger,
		},
	}
}

func (e *env) run(t *testing.T) *materialize.Report {
	t.Helper()
	report, err := materialize.Materialize(context.Background(), e.opts)
	require.NoError(t, err)
	return report
}

func (e *env) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(e.mem, filepath.Join(destRoot, rel))
	require.NoError(t, err)
	return string(data)
}

func (e *env) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(destRoot, rel)
	require.NoError(t, e.mem.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(e.mem, path, []byte(content), 0644))
}

// snapshot maps every file under destRoot to its content
func (e *env) snapshot(t *testing.T) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := afero.Walk(e.mem, destRoot, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			files[path+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(e.mem, path)
		files[path] = string(data)
		return err
	})
	require.NoError(t, err)
	return files
}

func templateFile(t *testing.T, name string) string {
	t.Helper()
	data, err := fs.ReadFile(template.Default(), name)
	require.NoError(t, err)
	return string(data)
}

func TestMaterializeDefaultTemplate(t *testing.T) {
	e := newEnv(t)
	report := e.run(t)

	for _, rel := range []string{
		"macos/Podfile",
		"macos/Acme-iOS/AppDelegate.m",
		"macos/Acme-iOS/Info.plist",
		"macos/Acme-macOS/main.m",
		"macos/Acme-macOS/Assets.xcassets/AppIcon.appiconset/Acme-16.png",
		"macos/Acme.xcodeproj/project.pbxproj",
		"macos/Acme.xcodeproj/xcshareddata/xcschemes/Acme-iOS.xcscheme",
		"macos/Acme.xcodeproj/xcshareddata/xcschemes/Acme-macOS.xcscheme",
		"react-native.config.js",
		"metro.config.macos.js",
	} {
		exists, err := afero.Exists(e.mem, filepath.Join(destRoot, rel))
		require.NoError(t, err)
		assert.True(t, exists, "expected %s", rel)
	}

	assert.Contains(t, e.read(t, "macos/Podfile"), "target 'Acme-macOS'")
	assert.Empty(t, report.Skipped)
	assert.Equal(t, []string{filepath.Join(destRoot, "react-native.config.js")}, report.Appended)
	assert.Equal(t, []string{filepath.Join(destRoot, "metro.config.macos.js")}, report.Notified)
	assert.Contains(t, report.Written, filepath.Join(destRoot, "metro.config.macos.js"))
	assert.Contains(t, report.Instructions, filepath.Join("macos", "Acme.xcworkspace"))
	assert.Len(t, report.Entries, 8)
}

func TestMaterializeCreatesDirectoriesFirst(t *testing.T) {
	e := newEnv(t)
	report := e.run(t)

	assert.Equal(t, []string{
		filepath.Join(destRoot, "macos"),
		filepath.Join(destRoot, "macos", "Acme-iOS"),
		filepath.Join(destRoot, "macos", "Acme-macOS"),
		filepath.Join(destRoot, "macos", "Acme.xcodeproj"),
		filepath.Join(destRoot, "macos", "Acme.xcodeproj", "xcshareddata", "xcschemes"),
	}, report.Directories)
	for _, dir := range report.Directories {
		isDir, err := afero.IsDir(e.mem, dir)
		require.NoError(t, err)
		assert.True(t, isDir, dir)
	}
}

func TestMaterializeLeavesNoPlaceholder(t *testing.T) {
	e := newEnv(t)
	e.run(t)

	replaced := 0
	for path, content := range e.snapshot(t) {
		assert.NotContains(t, path, "HelloWorld")
		if strings.HasSuffix(path, ".png") {
			continue
		}
		assert.NotContains(t, content, "HelloWorld", "placeholder left in %s", path)
		replaced += strings.Count(content, "Acme")
	}
	assert.Greater(t, replaced, 0)
}

func TestMaterializeKeepsBinaryAssets(t *testing.T) {
	e := newEnv(t)
	e.run(t)

	want := templateFile(t, "macos/HelloWorld-macOS/Assets.xcassets/AppIcon.appiconset/HelloWorld-16.png")
	got := e.read(t, "macos/Acme-macOS/Assets.xcassets/AppIcon.appiconset/Acme-16.png")
	assert.Equal(t, want, got)
}

func TestMaterializeSchemes(t *testing.T) {
	e := newEnv(t)
	e.run(t)

	for _, label := range []string{"iOS", "macOS"} {
		t.Run(label, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(e.read(t, "macos/Acme.xcodeproj/xcshareddata/xcschemes/Acme-"+label+".xcscheme")))

			refs := doc.FindElements("//BuildableReference")
			require.NotEmpty(t, refs)
			for _, ref := range refs {
				assert.Equal(t, "Acme-"+label+".app", ref.SelectAttrValue("BuildableName", ""))
				assert.Equal(t, "Acme-"+label, ref.SelectAttrValue("BlueprintName", ""))
				assert.Equal(t, "container:Acme.xcodeproj", ref.SelectAttrValue("ReferencedContainer", ""))
			}
		})
	}
}

func TestMaterializeTwiceIsIdempotent(t *testing.T) {
	e := newEnv(t)
	e.run(t)
	first := e.snapshot(t)

	report := e.run(t)
	assert.Equal(t, first, e.snapshot(t))
	assert.Empty(t, report.Written)
	assert.Empty(t, report.Appended)
	assert.Empty(t, report.Notified)
	assert.NotEmpty(t, report.Skipped)
}

func TestMaterializeWithoutOverwriteKeepsEdits(t *testing.T) {
	e := newEnv(t)
	e.run(t)
	e.write(t, "macos/Podfile", "# mine\n")

	e.run(t)
	assert.Equal(t, "# mine\n", e.read(t, "macos/Podfile"))
}

func TestMaterializeOverwriteDiscardsEdits(t *testing.T) {
	e := newEnv(t)
	e.run(t)
	original := e.snapshot(t)

	e.write(t, "macos/Podfile", "# mine\n")
	e.write(t, "macos/Acme-iOS/main.m", "// mine\n")
	e.write(t, "metro.config.macos.js", "// mine\n")

	e.opts.Overwrite = true
	e.run(t)
	assert.Equal(t, original, e.snapshot(t))
}

func TestMaterializeAppendsAfterExistingContent(t *testing.T) {
	e := newEnv(t)
	e.write(t, "react-native.config.js", "existing-line\n")

	e.run(t)

	want := "existing-line\n" + strings.ReplaceAll(templateFile(t, "react-native.config.js"), "HelloWorld", "Acme")
	assert.Equal(t, want, e.read(t, "react-native.config.js"))
}

func TestMaterializeChangedCallback(t *testing.T) {
	t.Run("fires for written files", func(t *testing.T) {
		e := newEnv(t)
		var changed []string
		e.opts.OnChanged = func(path string) { changed = append(changed, path) }

		e.run(t)
		assert.Equal(t, []string{filepath.Join(destRoot, "metro.config.macos.js")}, changed)
	})

	t.Run("does not fire for skipped files", func(t *testing.T) {
		e := newEnv(t)
		e.write(t, "metro.config.macos.js", "// custom\n")
		var changed []string
		e.opts.OnChanged = func(path string) { changed = append(changed, path) }

		report := e.run(t)
		assert.Empty(t, changed)
		assert.Empty(t, report.Notified)
		assert.Equal(t, "// custom\n", e.read(t, "metro.config.macos.js"))
	})
}

func TestMaterializeMissingArguments(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*materialize.Options)
		argument string
	}{
		{"empty source root", func(o *materialize.Options) { o.SourceRoot = "" }, "sourceRoot"},
		{"empty destination root", func(o *materialize.Options) { o.DestRoot = "" }, "destRoot"},
		{"empty basename", func(o *materialize.Options) { o.Basename = "" }, "basename"},
		{"everything empty reports source first", func(o *materialize.Options) {
			o.SourceRoot, o.DestRoot, o.Basename = "", "", ""
		}, "sourceRoot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			tt.mutate(&e.opts)

			report, err := materialize.Materialize(context.Background(), e.opts)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
			assert.Equal(t, tt.argument, errors.GetErrorDetails(err)[errors.DetailArgument])
			assert.Contains(t, err.Error(), tt.argument)

			exists, _ := afero.Exists(e.mem, destRoot)
			assert.False(t, exists, "nothing may be created")
		})
	}
}

func TestMaterializeFailsBeforeMutation(t *testing.T) {
	t.Run("bad manifest record", func(t *testing.T) {
		e := newEnv(t)
		e.opts.Records = append(manifest.Default(), manifest.Record{Kind: manifest.Replace, Ref: "nope"})

		_, err := materialize.Materialize(context.Background(), e.opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
		exists, _ := afero.Exists(e.mem, destRoot)
		assert.False(t, exists)
	})

	t.Run("missing template root", func(t *testing.T) {
		e := newEnv(t)
		e.opts.SourceRoot = "no-such-template"

		_, err := materialize.Materialize(context.Background(), e.opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileSystem))
		assert.Equal(t, "no-such-template", errors.GetErrorDetails(err)[errors.DetailPath])
		exists, _ := afero.Exists(e.mem, destRoot)
		assert.False(t, exists)
	})
}

func TestMaterializeMissingSourceEntry(t *testing.T) {
	e := newEnv(t)
	e.opts.Records = []manifest.Record{
		{Kind: manifest.Replace, Ref: manifest.RefDependencyManifest},
		{Kind: manifest.Replace, Ref: manifest.RefLiteral, Path: "missing.js"},
		{Kind: manifest.Notify, Ref: manifest.RefLiteral, Path: "metro.config.macos.js"},
	}

	report, err := materialize.Materialize(context.Background(), e.opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileSystem))
	assert.Equal(t, "missing.js", errors.GetErrorDetails(err)[errors.DetailPath])

	// entries before the failure stay, later ones never run
	assert.Equal(t, []string{filepath.Join(destRoot, "macos", "Podfile")}, report.Written)
	exists, _ := afero.Exists(e.mem, filepath.Join(destRoot, "metro.config.macos.js"))
	assert.False(t, exists)
}

func TestMaterializeCancelled(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := materialize.Materialize(ctx, e.opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaterializeToDisk(t *testing.T) {
	dest := t.TempDir()
	changed := 0
	report, err := materialize.Materialize(context.Background(), materialize.Options{
		SourceRoot: ".",
		DestRoot:   dest,
		Basename:   "Disk",
		SourceFS:   filesystem.NewReadOnlyIOFS(template.Default()),
		OnChanged:  func(string) { changed++ },
		Logger:     &nopLogger,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	info, err := os.Stat(filepath.Join(dest, "macos", "Podfile"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dest, report.Paths.ProjectDescriptor))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Disk-macOS.app")
}
