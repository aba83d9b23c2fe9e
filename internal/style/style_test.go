package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColorVariants(t *testing.T) {
	cases := map[string]string{
		"#ff00aa": "#FF00AA",
		"ff00aa":  "#FF00AA",
		"#FF00AA": "#FF00AA",
		"FF00AA":  "#FF00AA",
	}
	for in, want := range cases {
		got, err := NormalizeColor(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNormalizeColorRejectsBadLength(t *testing.T) {
	_, err := NormalizeColor("#ff00a")
	require.Error(t, err)
	_, err = NormalizeColor("ff00aabb")
	require.Error(t, err)
}

func TestNormalizeColorRejectsNonHex(t *testing.T) {
	_, err := NormalizeColor("gg00aa")
	require.Error(t, err)
}

func TestNormalizeOpacityRange(t *testing.T) {
	_, err := NormalizeOpacity(-1)
	require.Error(t, err)
	_, err = NormalizeOpacity(256)
	require.Error(t, err)
	v, err := NormalizeOpacity(128)
	require.NoError(t, err)
	assert.Equal(t, 128, v)
}

func TestNormalizeLineWidthRange(t *testing.T) {
	_, err := NormalizeLineWidth(0)
	require.Error(t, err)
	_, err = NormalizeLineWidth(5)
	require.Error(t, err)
	v, err := NormalizeLineWidth(2)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestNormalizeTextPositionRange(t *testing.T) {
	for _, v := range []int{0, 1, 2} {
		got, err := NormalizeTextPosition(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := NormalizeTextPosition(3)
	require.Error(t, err)
}
