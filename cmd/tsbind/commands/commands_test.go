package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martianoff/tsbind/cmd/tsbind/commands"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var stdout, stderr bytes.Buffer
	cmd := commands.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func crate(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["Cargo.toml"] = "[package]\nname = \"demo\"\n"
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tsbind version dev\n", out)
}

func TestFile(t *testing.T) {
	root := crate(t, map[string]string{
		"ts/lib.d.ts": "export declare function hello(x: 1): void;\n",
	})
	out, errOut, err := run(t, "file", filepath.Join(root, "ts", "lib.d.ts"), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "pub fn hello(x: ::wasm_bindgen::JsValue);")
	assert.Contains(t, errOut, "literal type 1 is not supported")
}

func TestFile_Failure(t *testing.T) {
	root := crate(t, map[string]string{
		"ts/lib.d.ts": "export declare enum E { A }\n",
	})
	out, _, err := run(t, "file", filepath.Join(root, "ts", "lib.d.ts"), "--log-level", "error")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestGenerate_Shorthand(t *testing.T) {
	root := crate(t, map[string]string{
		"ts/lib.d.ts": "export declare class Widget {}\n",
		"tsbind.toml": "[output]\nmodule-suffix = \"Bind\"\n",
	})
	out := filepath.Join(root, "src", "bindings")
	_, errOut, err := run(t, filepath.Join(root, "ts"), out, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, errOut, "All done!")

	mod, err := os.ReadFile(filepath.Join(out, "mod.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(mod), "pub mod libBind;")
}

func TestGenerate_FlagOverridesConfig(t *testing.T) {
	root := crate(t, map[string]string{
		"ts/lib.d.ts": "export declare class Widget {}\n",
		"tsbind.toml": "[output]\nmodule-suffix = \"Bind\"\n",
	})
	out := filepath.Join(root, "out")
	_, _, err := run(t, "generate", filepath.Join(root, "ts"), out, "--module-suffix", "Rs", "--log-level", "error")
	require.NoError(t, err)

	mod, err := os.ReadFile(filepath.Join(out, "mod.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(mod), "pub mod libRs;")
}

func TestGenerate_FailedUnit(t *testing.T) {
	root := crate(t, map[string]string{
		"ts/bad.d.ts": "export declare enum E { A }\n",
	})
	_, errOut, err := run(t, "generate", filepath.Join(root, "ts"), filepath.Join(root, "out"), "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.d.ts")
	assert.Contains(t, errOut, "Oh no!")
}

func TestRoot_UnknownArgs(t *testing.T) {
	_, _, err := run(t, "only-one-arg")
	assert.Error(t, err)
}
