package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHSLToLegacyHexMatchesGreen(t *testing.T) {
	c := HSL(120, 50, 50, 1)
	r, g, b, a := c.ToLegacyHex()
	require.Equal(t, 64, r)
	require.Equal(t, 191, g)
	require.Equal(t, 64, b)
	require.Equal(t, 1.0, a)
	require.Equal(t, "#40bf40", FormatColor(c, false))
}

func TestRoundTripThroughOklch(t *testing.T) {
	original := RGB(200, 50, 75, 1)
	converted := original.ToSpace(SpaceOklch).ToSpace(SpaceRGB)
	r1, g1, b1, _ := original.ToLegacyHex()
	r2, g2, b2, _ := converted.ToLegacyHex()
	require.InDelta(t, r1, r2, 1)
	require.InDelta(t, g1, g2, 1)
	require.InDelta(t, b1, b2, 1)
}

func TestDisplayP3StaysNonLegacy(t *testing.T) {
	c := &Color{Space: SpaceDisplayP3, C1: 1, C2: 0, C3: 0, Alpha: 1}
	require.Equal(t, "color(display-p3 1 0 0)", FormatColor(c, false))
}

func TestColorsEqualAcrossSpaces(t *testing.T) {
	a := RGB(255, 0, 0, 1)
	b := a.ToSpace(SpaceSRGB)
	require.True(t, ColorsEqual(a, b))
}

func TestMissingChannelPropagatesThroughPolarConversion(t *testing.T) {
	c := &Color{Space: SpaceHSL, C1: Missing(), C2: 50, C3: 50, Alpha: 1}
	converted := c.ToSpace(SpaceOklch)
	require.True(t, IsMissing(converted.C3))
}
