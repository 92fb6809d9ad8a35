//go:build slotsave_nofull

package saver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoanbernabeu/slotsave/codec"
	"github.com/yoanbernabeu/slotsave/config"
)

func TestSaver_UnavailableCodecSkipsIO(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Codec = codec.KindFull
	s := newTestSaver(t, t.TempDir(), cfg, releaseCtx)

	v, err := s.Save()
	require.NoError(t, err)
	assertSameSave(t, defaultSave(), *v)

	v.Level = 4
	require.NoError(t, s.SaveChanged())

	p, err := s.Profile("A")
	require.NoError(t, err)
	assert.Equal(t, playerProfile{}, *p)

	files, err := s.Files()
	require.NoError(t, err)
	assert.Empty(t, files)

	_, _, err = s.Peek("SData.json")
	assert.ErrorIs(t, err, codec.ErrCodecUnavailable)
}
