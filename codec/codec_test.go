package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventory struct {
	Gold  int               `json:"gold"`
	Items []string          `json:"items"`
	Flags map[string]bool   `json:"flags"`
	Stats map[string]uint64 `json:"stats"`
}

type saveFixture struct {
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	Health    float64   `json:"health"`
	Unlocked  bool      `json:"unlocked"`
	Inventory inventory `json:"inventory"`
	Note      string    `json:"note"`
}

func fixture() saveFixture {
	return saveFixture{
		Name:     "Ærwyn 🐉",
		Level:    42,
		Health:   87.5,
		Unlocked: true,
		Inventory: inventory{
			Gold:  1 << 40,
			Items: []string{"sword", "shield", "<potion>"},
			Flags: map[string]bool{"tutorial": true, "boss": false},
			Stats: map[string]uint64{"kills": 18446744073709551615},
		},
		Note: "line1\nline2\t\"quoted\"",
	}
}

func availableKinds(t *testing.T) []Kind {
	t.Helper()
	var kinds []Kind
	for _, k := range Kinds() {
		if Available(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, kind := range availableKinds(t) {
		t.Run(string(kind), func(t *testing.T) {
			c, err := New(kind)
			require.NoError(t, err)
			assert.Equal(t, kind, c.Kind())

			want := fixture()
			text, err := c.Encode(want)
			require.NoError(t, err)

			var got saveFixture
			require.NoError(t, c.Decode(text, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestCodec_DecodeMalformed(t *testing.T) {
	inputs := map[string]string{
		"garbage":       "\x00\xff\xfe not json",
		"truncated":     `{"name":"a","level":`,
		"wrong type":    `{"level":"forty-two"}`,
		"trailing data": `{"level":1} {"level":2}`,
	}

	for _, kind := range availableKinds(t) {
		c, err := New(kind)
		require.NoError(t, err)
		for name, text := range inputs {
			t.Run(string(kind)+"/"+name, func(t *testing.T) {
				var got saveFixture
				err := c.Decode(text, &got)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDecode)
			})
		}
	}
}

func TestCodec_DecodeEmptyDocument(t *testing.T) {
	for _, kind := range availableKinds(t) {
		c, err := New(kind)
		require.NoError(t, err)
		for _, text := range []string{"", "   ", "null", " null\n"} {
			var got saveFixture
			err := c.Decode(text, &got)
			assert.ErrorIs(t, err, ErrEmptyDocument, "kind=%s text=%q", kind, text)
			assert.ErrorIs(t, err, ErrDecode)
		}
	}
}

func TestCodec_DecodeNonPointerDoesNotPanic(t *testing.T) {
	for _, kind := range availableKinds(t) {
		c, err := New(kind)
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			err = c.Decode(`{"level":1}`, saveFixture{})
		})
		assert.Error(t, err)
	}
}

func TestCodec_EncodeUnsupported(t *testing.T) {
	for _, kind := range availableKinds(t) {
		c, err := New(kind)
		require.NoError(t, err)
		_, err = c.Encode(map[string]any{"ch": make(chan int)})
		assert.ErrorIs(t, err, ErrEncode, "kind=%s", kind)
	}
}

func TestNew_Kinds(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, KindMinimal, c.Kind())

	_, err = New("xml")
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.True(t, KindMinimal.Valid())
	assert.True(t, KindFull.Valid())
	assert.False(t, Kind("xml").Valid())
	assert.True(t, Available(KindMinimal))
	assert.False(t, Available(Kind("xml")))
}
