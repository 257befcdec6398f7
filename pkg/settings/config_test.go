package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/routekit/routekit/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFile_AppliesOverrides(t *testing.T) {
	path := writeSettingsFile(t, `
verbosity: quiet
display_limit: 42
column_width: 100
`)

	o, err := settings.LoadFile(path)
	require.NoError(t, err)

	s := settings.NewStore()
	require.NoError(t, o.Apply(s))

	assert.Equal(t, settings.Quiet, s.Verbosity())
	assert.Equal(t, 42, s.DisplayLimit())
	assert.Equal(t, 100, s.ColumnWidth())
}

func TestLoadFile_PartialOverridesKeepDefaults(t *testing.T) {
	path := writeSettingsFile(t, "display_limit: 10\n")

	o, err := settings.LoadFile(path)
	require.NoError(t, err)

	s := settings.NewStore()
	require.NoError(t, o.Apply(s))

	assert.Equal(t, 10, s.DisplayLimit())
	assert.Equal(t, settings.Normal, s.Verbosity())
	assert.Equal(t, 150, s.ColumnWidth())
}

func TestLoadFile_UnknownKeysTolerated(t *testing.T) {
	path := writeSettingsFile(t, "future_setting: true\ncolumn_width: 90\n")

	o, err := settings.LoadFile(path)
	require.NoError(t, err)

	s := settings.NewStore()
	require.NoError(t, o.Apply(s))
	assert.Equal(t, 90, s.ColumnWidth())
}

func TestApply_BadVerbosity(t *testing.T) {
	path := writeSettingsFile(t, "verbosity: shouty\n")

	o, err := settings.LoadFile(path)
	require.NoError(t, err)

	err = o.Apply(settings.NewStore())
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := settings.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
