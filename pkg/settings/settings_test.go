package settings_test

import (
	"testing"

	"github.com/routekit/routekit/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Defaults(t *testing.T) {
	s := settings.NewStore()

	assert.Equal(t, settings.Normal, s.Verbosity())
	assert.Equal(t, 500, s.DisplayLimit())
	assert.Equal(t, 150, s.ColumnWidth())
	assert.False(t, s.HideRouteElements().Active())
}

func TestStore_ExplicitOverrides(t *testing.T) {
	s := settings.NewStore()

	s.SetVerbosity(settings.Quiet)
	assert.Equal(t, settings.Quiet, s.Verbosity())

	s.SetDisplayLimit(25)
	assert.Equal(t, 25, s.DisplayLimit())

	s.SetColumnWidth(80)
	assert.Equal(t, 80, s.ColumnWidth())

	// Last write wins across interleavings
	s.SetVerbosity(settings.Extra)
	s.SetDisplayLimit(1000)
	assert.Equal(t, settings.Extra, s.Verbosity())
	assert.Equal(t, 1000, s.DisplayLimit())
	assert.Equal(t, 80, s.ColumnWidth())
}

func TestStore_NoValidation(t *testing.T) {
	// Out-of-range values are stored verbatim: validation is a caller
	// responsibility.
	s := settings.NewStore()
	s.SetColumnWidth(-1)
	assert.Equal(t, -1, s.ColumnWidth())
}

func TestVerbosity_String(t *testing.T) {
	assert.Equal(t, "quiet", settings.Quiet.String())
	assert.Equal(t, "normal", settings.Normal.String())
	assert.Equal(t, "extra", settings.Extra.String())
}

func TestParseVerbosity(t *testing.T) {
	v, err := settings.ParseVerbosity("extra")
	require.NoError(t, err)
	assert.Equal(t, settings.Extra, v)

	_, err = settings.ParseVerbosity("loud")
	assert.Error(t, err)
}
