package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInitJSONWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	WithComponent("fetch").Debug().Str("status", "loading").Msg("state")
	require.Contains(t, buf.String(), `"component":"fetch"`)
	require.Contains(t, buf.String(), `"status":"loading"`)
}

func TestInitWithoutOutputDiscards(t *testing.T) {
	Init(DefaultConfig())
	require.Equal(t, zerolog.Disabled, Logger.GetLevel())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.WarnLevel, parseLevel("WARNING"))
	require.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
}

func TestOpenFile(t *testing.T) {
	w, closeFn, err := OpenFile("")
	require.NoError(t, err)
	require.Nil(t, w)
	require.NoError(t, closeFn())

	w, closeFn, err = OpenFile(filepath.Join(t.TempDir(), "advisor.log"))
	require.NoError(t, err)
	require.NotNil(t, w)
	require.NoError(t, closeFn())
}
