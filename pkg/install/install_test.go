package install_test

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/filesystem"
	"github.com/arthur-debert/macgen/pkg/install"
	"github.com/arthur-debert/macgen/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const launcher = "node node_modules/react-native-macos/local-cli/cli.js start --use-react-native-macos"

var nopLogger = zerolog.Nop()

func TestPatchScripts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "adds to existing scripts keeping order",
			doc:  `{"name":"acme","scripts":{"start":"react-native start","test":"jest"},"private":true}`,
			want: "{\n  \"name\": \"acme\",\n  \"scripts\": {\n    \"start\": \"react-native start\",\n    \"test\": \"jest\",\n    \"start:macos\": \"run\"\n  },\n  \"private\": true\n}\n",
		},
		{
			name: "creates scripts when missing",
			doc:  `{"name":"acme"}`,
			want: "{\n  \"name\": \"acme\",\n  \"scripts\": {\n    \"start:macos\": \"run\"\n  }\n}\n",
		},
		{
			name: "replaces null scripts",
			doc:  `{"scripts":null}`,
			want: "{\n  \"scripts\": {\n    \"start:macos\": \"run\"\n  }\n}\n",
		},
		{
			name: "overwrites existing key",
			doc:  `{"scripts":{"start:macos":"old"}}`,
			want: "{\n  \"scripts\": {\n    \"start:macos\": \"run\"\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := install.PatchScripts([]byte(tt.doc), "start:macos", "run")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestPatchScriptsKeepsCommandUnescaped(t *testing.T) {
	for _, doc := range []string{`{}`, `{"scripts":{"test":"jest"}}`} {
		got, err := install.PatchScripts([]byte(doc), "start:macos", "a && b > c <d>")
		require.NoError(t, err)
		assert.Contains(t, string(got), `"a && b > c <d>"`, doc)
		assert.NotContains(t, string(got), `\u00`, doc)
	}
}

func TestPatchScriptsEscapesPointer(t *testing.T) {
	got, err := install.PatchScripts([]byte(`{"scripts":{}}`), "build/ios~x", "x")
	require.NoError(t, err)
	assert.Contains(t, string(got), `"build/ios~x": "x"`)
}

func TestPatchScriptsRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
		code errors.ErrorCode
	}{
		{"not json", `nope`, "k", errors.ErrInvalidArgument},
		{"array document", `[1,2]`, "k", errors.ErrInvalidArgument},
		{"scripts not an object", `{"scripts":"x"}`, "k", errors.ErrInvalidArgument},
		{"empty key", `{}`, "", errors.ErrMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := install.PatchScripts([]byte(tt.doc), tt.key, "x")
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestDetectPackageManager(t *testing.T) {
	cfg := config.Default().Install

	t.Run("lock file selects preferred", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		require.NoError(t, fsys.MkdirAll("/proj", 0755))
		require.NoError(t, fsys.WriteFile("/proj/yarn.lock", nil, 0644))

		m, err := install.DetectPackageManager(fsys, "/proj", cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"yarn"}, m.Command)
		assert.True(t, m.Locked)
		assert.Equal(t, "yarn", m.Name())
	})

	t.Run("no lock file selects fallback", func(t *testing.T) {
		m, err := install.DetectPackageManager(filesystem.NewMemory(), "/proj", cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"npm", "i"}, m.Command)
		assert.False(t, m.Locked)
		assert.Equal(t, filepath.Join("/proj", "yarn.lock"), m.LockFile)
	})

	t.Run("empty command is rejected", func(t *testing.T) {
		bad := cfg
		bad.Fallback = "  "
		_, err := install.DetectPackageManager(filesystem.NewMemory(), "/proj", bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
	})
}

type call struct {
	dir     string
	argv    []string
	verbose bool
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Run(_ context.Context, dir string, argv []string, verbose bool) error {
	f.calls = append(f.calls, call{dir: dir, argv: argv, verbose: verbose})
	return f.err
}

func newProject(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/proj", 0755))
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(filepath.Join("/proj", name), []byte(content), 0644))
	}
	return fsys
}

func TestInstallerInstall(t *testing.T) {
	fsys := newProject(t, map[string]string{
		"package.json": `{"name":"acme","scripts":{"start":"react-native start"}}`,
		"yarn.lock":    "",
	})
	runner := &fakeRunner{}
	in := install.New(install.Config{FS: fsys, Runner: runner, Logger: &nopLogger})

	result, err := in.Install(context.Background(), install.Options{Dir: "/proj", Verbose: true})
	require.NoError(t, err)

	assert.True(t, result.Installed)
	assert.Equal(t, "start:macos", result.ScriptKey)
	assert.Equal(t, []call{{dir: "/proj", argv: []string{"yarn"}, verbose: true}}, runner.calls)

	doc, err := fsys.ReadFile("/proj/package.json")
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"start": "react-native start"`)
	assert.Contains(t, string(doc), `"start:macos": "`+launcher+`"`)
}

func TestInstallerInstallFallback(t *testing.T) {
	fsys := newProject(t, map[string]string{"package.json": `{}`})
	runner := &fakeRunner{}
	in := install.New(install.Config{FS: fsys, Runner: runner, Logger: &nopLogger})

	_, err := in.Install(context.Background(), install.Options{Dir: "/proj"})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"npm", "i"}, runner.calls[0].argv)
	assert.False(t, runner.calls[0].verbose)
}

func TestInstallerSkipDependencies(t *testing.T) {
	fsys := newProject(t, map[string]string{"package.json": `{}`})
	runner := &fakeRunner{}
	in := install.New(install.Config{FS: fsys, Runner: runner, Logger: &nopLogger})

	result, err := in.Install(context.Background(), install.Options{Dir: "/proj", SkipDependencies: true})
	require.NoError(t, err)
	assert.False(t, result.Installed)
	assert.Empty(t, runner.calls)
}

func TestInstallerErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		runner := &fakeRunner{}
		in := install.New(install.Config{FS: newProject(t, nil), Runner: runner, Logger: &nopLogger})

		_, err := in.Install(context.Background(), install.Options{Dir: "/proj"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileSystem))
		assert.Equal(t, filepath.Join("/proj", "package.json"), errors.GetErrorDetails(err)[errors.DetailPath])
		assert.Empty(t, runner.calls)
	})

	t.Run("invalid manifest names the file", func(t *testing.T) {
		in := install.New(install.Config{FS: newProject(t, map[string]string{"package.json": "{"}), Runner: &fakeRunner{}, Logger: &nopLogger})

		_, err := in.Install(context.Background(), install.Options{Dir: "/proj"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
		assert.Equal(t, filepath.Join("/proj", "package.json"), errors.GetErrorDetails(err)[errors.DetailPath])
	})

	t.Run("runner failure propagates", func(t *testing.T) {
		failure := errors.Subprocess(stderrors.New("exit status 1"), "npm i", 1)
		in := install.New(install.Config{FS: newProject(t, map[string]string{"package.json": "{}"}), Runner: &fakeRunner{err: failure}, Logger: &nopLogger})

		result, err := in.Install(context.Background(), install.Options{Dir: "/proj"})
		assert.Same(t, failure, err)
		require.NotNil(t, result)
		assert.False(t, result.Installed)
	})

	t.Run("missing dir", func(t *testing.T) {
		in := install.New(install.Config{FS: filesystem.NewMemory(), Runner: &fakeRunner{}, Logger: &nopLogger})
		_, err := in.Install(context.Background(), install.Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
	})
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := install.NewExecRunner()
	dir := t.TempDir()

	require.NoError(t, r.Run(context.Background(), dir, []string{"sh", "-c", "echo ok"}, false))

	err := r.Run(context.Background(), dir, []string{"sh", "-c", "echo boom; exit 3"}, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, 3, details[errors.DetailExitCode])
	assert.Equal(t, "sh -c echo boom; exit 3", details[errors.DetailCommand])
	assert.Equal(t, "boom\n", details["output"])

	err = r.Run(context.Background(), dir, nil, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
}
