package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	pkgio "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io"
)

// writeStation writes a hub (CIR #0) with an airlock (AM #1) on port A and a
// command module (CM #2) on port B.
func writeStation(t *testing.T) string {
	t.Helper()
	bp := blueprint.New(catalog.Default())
	hub, _ := bp.AddStructure(3)
	am, _ := bp.AddStructure(1)
	cm, _ := bp.AddStructure(7)
	require.Equal(t, blueprint.Success, bp.DockPorts(hub.Port("StandardDockingPortA"), am.Port("StandardDockingPortA")))
	require.Equal(t, blueprint.Success, bp.DockPorts(hub.Port("StandardDockingPortB"), cm.Port("StandardDockingPortA")))

	path := filepath.Join(t.TempDir(), "station.json")
	require.NoError(t, pkgio.ExportJSON(bp, path))
	return path
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func load(t *testing.T, path string) *blueprint.Blueprint {
	t.Helper()
	bp, _, err := pkgio.ImportJSON(path, catalog.Default())
	require.NoError(t, err)
	return bp
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"validate", "tree", "add", "remove", "dock", "undock", "render", "catalog", "browse", "serve", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: ")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nstore = \"tape\"\n"), 0o644))

	_, err := run(t, "--config", path, "version")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	for _, want := range []string{"CIR", "AM", "Airlock", "SARA"} {
		assert.Contains(t, out, want)
	}
}

func TestTreeCommand(t *testing.T) {
	path := writeStation(t)

	out, err := run(t, "tree", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CIR #0")
	assert.Contains(t, out, "AM #1")
	assert.Contains(t, out, "CM #2")
	assert.Less(t, strings.Index(out, "AM #1"), strings.Index(out, "CM #2"), "children follow port order")

	out, err = run(t, "tree", "--ports", path)
	require.NoError(t, err)
	assert.Contains(t, out, "free")
}

func TestEditCommands(t *testing.T) {
	path := writeStation(t)

	_, err := run(t, "undock", path, "0.B")
	require.NoError(t, err)
	bp := load(t, path)
	assert.False(t, bp.GetStructure(2).IsConnectedToPrimaryStructure())
	assert.True(t, bp.GetStructure(2).IsHierarchyRoot())

	_, err = run(t, "dock", path, "2.StandardDockingPortB", "0.3")
	require.NoError(t, err)
	bp = load(t, path)
	assert.True(t, bp.GetStructure(2).IsConnectedToPrimaryStructure())
	assert.Equal(t, 0, bp.Stats().SecondaryRoots)

	_, err = run(t, "add", path, "LSM")
	require.NoError(t, err)
	bp = load(t, path)
	require.NotNil(t, bp.GetStructure(3))
	assert.Equal(t, "LSM", bp.GetStructure(3).Type())

	_, err = run(t, "add", path, "BRG", "--id", "10")
	require.NoError(t, err)
	assert.NotNil(t, load(t, path).GetStructure(10))

	_, err = run(t, "remove", path, "3")
	require.NoError(t, err)
	assert.Nil(t, load(t, path).GetStructure(3))
}

func TestEditCommandsRejected(t *testing.T) {
	path := writeStation(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"remove docked", []string{"remove", path, "1"}, errors.ErrCodeOperationRejected},
		{"remove missing", []string{"remove", path, "42"}, errors.ErrCodeNotFound},
		{"dock already docked", []string{"dock", path, "0.A", "2.B"}, errors.ErrCodeOperationRejected},
		{"dock same component", []string{"dock", path, "1.2", "2.B"}, errors.ErrCodeOperationRejected},
		{"undock free port", []string{"undock", path, "0.C"}, errors.ErrCodeOperationRejected},
		{"bad port ref", []string{"undock", path, "zero.A"}, errors.ErrCodeInvalidInput},
		{"unknown type", []string{"add", path, "WARP"}, errors.ErrCodeUnknownStructureType},
		{"duplicate id", []string{"add", path, "CM", "--id", "1"}, errors.ErrCodeDuplicateStructureID},
		{"missing file", []string{"tree", filepath.Join(t.TempDir(), "none.json")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.True(t, errors.Is(err, tt.code), "err = %v, want %s", err, tt.code)
		})
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "rejected edits must not touch the file")
}

func TestEditEmptiedStation(t *testing.T) {
	bp := blueprint.New(catalog.Default())
	_, st := bp.AddStructure(3)
	require.Equal(t, blueprint.Success, st)
	path := filepath.Join(t.TempDir(), "outpost.json")
	require.NoError(t, pkgio.ExportJSON(bp, path))

	_, err := run(t, "remove", path, "0")
	require.NoError(t, err)
	assert.Equal(t, 0, load(t, path).Len())

	_, err = run(t, "add", path, "CM", "--id", "5")
	assert.True(t, errors.Is(err, errors.ErrCodeMissingRootStructure), "err = %v", err)
	assert.Equal(t, 0, load(t, path).Len())

	_, err = run(t, "add", path, "CM")
	require.NoError(t, err)
	reloaded := load(t, path)
	require.Equal(t, 1, reloaded.Len())
	assert.True(t, reloaded.GetStructure(0).IsPrimaryRoot())
}

func TestEditOutputAndDryRun(t *testing.T) {
	path := writeStation(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = run(t, "undock", "--dry-run", path, "0.A")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "edited.json")
	_, err = run(t, "undock", "-o", out, path, "0.A")
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, 1, load(t, out).Stats().SecondaryRoots)
}

func TestValidateCommand(t *testing.T) {
	good := writeStation(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"__ObjectType":"StationBlueprint","Structures":[{"StructureID":1,"StructureType":"CM"}]}`), 0o644))

	_, err := run(t, "validate", good)
	require.NoError(t, err)

	_, err = run(t, "validate", "-j", "2", good, bad)
	assert.Error(t, err)
}

func TestRenderDOT(t *testing.T) {
	path := writeStation(t)
	out := filepath.Join(t.TempDir(), "station.dot")

	_, err := run(t, "render", "-f", "dot", "-o", out, "--detailed", path)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "graph G {"))
	assert.Contains(t, string(data), "s0 -- s1")
}
