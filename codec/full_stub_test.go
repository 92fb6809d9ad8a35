//go:build slotsave_nofull

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullCodec_Unavailable(t *testing.T) {
	assert.False(t, Available(KindFull))

	c, err := New(KindFull)
	require.NoError(t, err)

	_, err = c.Encode(map[string]int{"a": 1})
	assert.ErrorIs(t, err, ErrCodecUnavailable)

	var v map[string]int
	assert.ErrorIs(t, c.Decode(`{"a":1}`, &v), ErrCodecUnavailable)
}
