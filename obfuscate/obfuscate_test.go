package obfuscate

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var keys = []int32{-963, 1, 7, 0x5A, 0x7F, 0x80, 0x7FF, 0x800, 0xD841, 0xDC00, 0xFFFF, -1, 1 << 20}

func TestTransform_SelfInverse(t *testing.T) {
	texts := []string{
		"",
		"{}",
		`{"name":"hero","level":3,"gold":12.5}`,
		"Ærwyn über straße",
		"日本語のセーブデータ",
		"dragons 🐉🐲 and emoji 👩‍🚀",
		strings.Repeat("x", 4096),
	}

	for _, key := range keys {
		for _, text := range texts {
			once := Transform(text, key)
			twice := Transform(once, key)
			assert.Equal(t, text, twice, "key=%d text=%q", key, text)
			assert.Equal(t, once, Transform(twice, key), "transformed text must also be stable, key=%d", key)
		}
	}
}

func TestTransform_ChangesText(t *testing.T) {
	text := `{"level":3}`
	for _, key := range []int32{-963, 1, 0x5A, 0xFFFF} {
		assert.NotEqual(t, text, Transform(text, key), "key=%d", key)
	}
}

func TestTransform_KeyWithoutLowBitsIsIdentity(t *testing.T) {
	text := `{"level":3,"name":"ü🐉"}`
	assert.Equal(t, text, Transform(text, 1<<16))
	assert.Equal(t, text, Transform(text, 0))
}

func TestTransform_CodeUnitVector(t *testing.T) {
	// '{' is 0x007B; 0x007B ^ 0xFC3D = 0xFC46, three bytes in UTF-8.
	assert.Equal(t, "\xEF\xB1\x86", Transform("{", -963))
	assert.Equal(t, "{", Transform("\xEF\xB1\x86", -963))
}

func TestTransform_LoneSurrogateSurvives(t *testing.T) {
	// 'A' ^ 0xD841 = 0xD800, a lone high surrogate.
	got := Transform("A", 0xD841)
	assert.Equal(t, "\xED\xA0\x80", got)
	assert.False(t, utf8.ValidString(got))
	assert.Equal(t, "A", Transform(got, 0xD841))
}

func TestTransform_InvalidBytesBecomeReplacement(t *testing.T) {
	got := Transform("\xff", 0)
	assert.Equal(t, "�", got)
}

func TestTransform_RandomText(t *testing.T) {
	rng := rand.New(rand.NewSource(20261019))

	for i := 0; i < 500; i++ {
		var sb strings.Builder
		n := rng.Intn(64)
		for j := 0; j < n; j++ {
			r := rune(rng.Intn(utf8.MaxRune + 1))
			if !utf8.ValidRune(r) {
				r = 'x'
			}
			sb.WriteRune(r)
		}
		text := sb.String()
		key := int32(rng.Uint32())

		assert.Equal(t, text, Transform(Transform(text, key), key), "key=%d", key)
	}
}
