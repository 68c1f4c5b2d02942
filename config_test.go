package lidrup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeFromString(t *testing.T) {
	t.Parallel()

	m, err := ModeFromString("strict")
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, m)

	m, err = ModeFromString("")
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, m)

	m, err = ModeFromString("relaxed")
	require.NoError(t, err)
	assert.Equal(t, ModeRelaxed, m)

	m, err = ModeFromString("pedantic")
	require.NoError(t, err)
	assert.Equal(t, ModePedantic, m)

	_, err = ModeFromString("bogus")
	assert.Error(t, err)
}

func TestApplyConfig_OverridesDefaults(t *testing.T) {
	t.Parallel()

	opts, err := ApplyConfig(Options{}, &Config{Mode: "relaxed", NoReuse: true})
	require.NoError(t, err)
	assert.Equal(t, ModeRelaxed, opts.Mode)
	assert.True(t, opts.NoReuse)
}

func TestApplyConfig_EmptyConfigLeavesDefaults(t *testing.T) {
	t.Parallel()

	opts, err := ApplyConfig(Options{Mode: ModePedantic}, &Config{})
	require.NoError(t, err)
	assert.Equal(t, ModePedantic, opts.Mode)
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestFindConfig_WalksUpDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfgPath := filepath.Join(root, ".lidrup-check.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("mode: relaxed\n"), 0o644))

	found, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, found)
}

func TestLoadConfigFile_ParsesYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".lidrup-check.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: pedantic\nno_reuse: true\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pedantic", cfg.Mode)
	assert.True(t, cfg.NoReuse)
}
