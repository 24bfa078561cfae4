package value

import (
	"fmt"
	"math"
	"strings"
)

// Space identifies one of the color spaces enumerated in spec §3.2.
type Space uint8

const (
	SpaceRGB Space = iota // legacy, 8-bit-compatible sRGB written as rgb()/hex/named
	SpaceHSL
	SpaceHWB
	SpaceSRGB
	SpaceSRGBLinear
	SpaceDisplayP3
	SpaceA98RGB
	SpaceProphotoRGB
	SpaceRec2020
	SpaceXYZD65
	SpaceXYZD50
	SpaceLab
	SpaceLCH
	SpaceOklab
	SpaceOklch
	SpaceLMS // interchange-only, never appears in source or output directly
)

var spaceNames = map[Space]string{
	SpaceRGB: "rgb", SpaceHSL: "hsl", SpaceHWB: "hwb", SpaceSRGB: "srgb",
	SpaceSRGBLinear: "srgb-linear", SpaceDisplayP3: "display-p3", SpaceA98RGB: "a98-rgb",
	SpaceProphotoRGB: "prophoto-rgb", SpaceRec2020: "rec2020", SpaceXYZD65: "xyz-d65",
	SpaceXYZD50: "xyz-d50", SpaceLab: "lab", SpaceLCH: "lch", SpaceOklab: "oklab",
	SpaceOklch: "oklch", SpaceLMS: "lms",
}

func (s Space) String() string { return spaceNames[s] }

func (s Space) IsPolar() bool {
	return s == SpaceHSL || s == SpaceHWB || s == SpaceLCH || s == SpaceOklch
}

func (s Space) IsLegacy() bool {
	return s == SpaceRGB || s == SpaceHSL || s == SpaceHWB
}

func (s Space) IsRGBish() bool {
	switch s {
	case SpaceRGB, SpaceSRGB, SpaceSRGBLinear, SpaceDisplayP3, SpaceA98RGB, SpaceProphotoRGB, SpaceRec2020:
		return true
	}
	return false
}

// missing names the concept as a string. A "missing" color channel (spec
// §3.2) is stored as the float64 sentinel returned by Missing():
// math.NaN() propagates naturally through arithmetic, and is never
// confused with a legitimate finite channel value.
const missing = "missing"

func Missing() float64 { return math.NaN() }

func IsMissing(v float64) bool { return math.IsNaN(v) }

// Color is an immutable color value in one of the spaces in spec §3.2. C1-C3
// are that space's three channels in their natural ranges (e.g. sRGB-ish
// spaces use [0,1]; hsl uses degrees/percent/percent). Alpha is in [0,1], or
// Missing().
type Color struct {
	Space     Space
	C1, C2, C3 float64
	Alpha     float64
	// Legacy marks a color that originated from rgb()/hsl()/hwb()/hex/named
	// syntax and therefore must round-trip compatibly with 8-bit output
	// (spec §3.2).
	Legacy bool
}

func RGB(r, g, b, a float64) *Color {
	return &Color{Space: SpaceRGB, C1: r / 255, C2: g / 255, C3: b / 255, Alpha: a, Legacy: true}
}

func HSL(h, s, l, a float64) *Color {
	return &Color{Space: SpaceHSL, C1: h, C2: s, C3: l, Alpha: a, Legacy: true}
}

func HWB(h, w, b, a float64) *Color {
	return &Color{Space: SpaceHWB, C1: h, C2: w, C3: b, Alpha: a, Legacy: true}
}

// toLinearSRGB reduces any RGB-ish space to linear-light sRGB [0,1]^3,
// routing wide-gamut spaces through XYZ D65.
func (c *Color) toLinearSRGB() (r, g, b float64) {
	switch c.Space {
	case SpaceRGB, SpaceSRGB:
		return linSRGB(c.C1, c.C2, c.C3)
	case SpaceSRGBLinear:
		return c.C1, c.C2, c.C3
	case SpaceHSL:
		r, g, b = hslToSRGB(c.C1, c.C2/100, c.C3/100)
		return linSRGB(r, g, b)
	case SpaceHWB:
		r, g, b = hwbToSRGB(c.C1, c.C2, c.C3)
		return linSRGB(r, g, b)
	default:
		x, y, z := c.toXYZD65()
		return multiplyMatrix(xyzToLinSRGB, x, y, z)
	}
}

// toXYZD65 converts any space to the CIE XYZ D65 hub space.
func (c *Color) toXYZD65() (x, y, z float64) {
	switch c.Space {
	case SpaceRGB, SpaceSRGB, SpaceHSL, SpaceHWB:
		r, g, b := c.toLinearSRGB()
		return multiplyMatrix(linSRGBtoXYZ, r, g, b)
	case SpaceSRGBLinear:
		return multiplyMatrix(linSRGBtoXYZ, c.C1, c.C2, c.C3)
	case SpaceDisplayP3:
		r, g, b := linSRGB(c.C1, c.C2, c.C3) // display-p3 shares sRGB's transfer function
		return multiplyMatrix(linP3toXYZ, r, g, b)
	case SpaceA98RGB:
		r, g, b := linA98(c.C1), linA98(c.C2), linA98(c.C3)
		return multiplyMatrix(linA98toXYZ, r, g, b)
	case SpaceProphotoRGB:
		r, g, b := linProphoto(c.C1, c.C2, c.C3)
		x50, y50, z50 := multiplyMatrix(linProphotoToXYZ, r, g, b)
		return multiplyMatrix(d50ToD65, x50, y50, z50)
	case SpaceRec2020:
		r, g, b := lin2020(c.C1), lin2020(c.C2), lin2020(c.C3)
		return multiplyMatrix(lin2020toXYZ, r, g, b)
	case SpaceXYZD65:
		return c.C1, c.C2, c.C3
	case SpaceXYZD50:
		return multiplyMatrix(d50ToD65, c.C1, c.C2, c.C3)
	case SpaceLab:
		x50, y50, z50 := labToXYZ(c.C1, c.C2, c.C3)
		return multiplyMatrix(d50ToD65, x50, y50, z50)
	case SpaceLCH:
		l, a, b := lchToLab(c.C1, c.C2, c.C3)
		x50, y50, z50 := labToXYZ(l, a, b)
		return multiplyMatrix(d50ToD65, x50, y50, z50)
	case SpaceOklab:
		return oklabToXYZ(c.C1, c.C2, c.C3)
	case SpaceOklch:
		l, a, b := lchToLab(c.C1, c.C2, c.C3)
		return oklabToXYZ(l, a, b)
	default:
		return 0, 0, 0
	}
}

// ToSpace converts c into the target space, carrying "missing" channels
// forward through polar conversions per spec §3.2 ("conversions through a
// polar space ... carry missing channels forward"). This is a best-effort
// approximation: exactly one of the three channels is allowed to be
// missing before conversion, matching what Sass's builtin color functions
// actually produce.
func (c *Color) ToSpace(target Space) *Color {
	if c.Space == target {
		return c
	}

	zeroed := *c
	if IsMissing(zeroed.C1) {
		zeroed.C1 = 0
	}
	if IsMissing(zeroed.C2) {
		zeroed.C2 = 0
	}
	if IsMissing(zeroed.C3) {
		zeroed.C3 = 0
	}

	var out Color
	out.Space = target
	out.Alpha = c.Alpha
	out.Legacy = target == SpaceRGB || target == SpaceHSL || target == SpaceHWB

	switch target {
	case SpaceRGB, SpaceSRGB:
		r, g, b := zeroed.toLinearSRGB()
		out.C1, out.C2, out.C3 = gamSRGB(r, g, b)
	case SpaceSRGBLinear:
		out.C1, out.C2, out.C3 = zeroed.toLinearSRGB()
	case SpaceHSL:
		r, g, b := zeroed.toLinearSRGB()
		r, g, b = gamSRGB(r, g, b)
		out.C1, out.C2, out.C3 = srgbToHSL(r, g, b)
	case SpaceHWB:
		r, g, b := zeroed.toLinearSRGB()
		r, g, b = gamSRGB(r, g, b)
		out.C1, out.C2, out.C3 = srgbToHWB(r, g, b)
	case SpaceDisplayP3:
		x, y, z := zeroed.toXYZD65()
		r, g, b := multiplyMatrix(xyzToLinP3, x, y, z)
		out.C1, out.C2, out.C3 = gamSRGB(r, g, b)
	case SpaceA98RGB:
		x, y, z := zeroed.toXYZD65()
		r, g, b := multiplyMatrix(xyzToLinA98, x, y, z)
		out.C1, out.C2, out.C3 = gamA98(r), gamA98(g), gamA98(b)
	case SpaceProphotoRGB:
		x, y, z := zeroed.toXYZD65()
		x50, y50, z50 := multiplyMatrix(d65ToD50, x, y, z)
		r, g, b := multiplyMatrix(xyzToLinProphoto, x50, y50, z50)
		out.C1, out.C2, out.C3 = gamProphoto(r, g, b)
	case SpaceRec2020:
		x, y, z := zeroed.toXYZD65()
		r, g, b := multiplyMatrix(xyzToLin2020, x, y, z)
		out.C1, out.C2, out.C3 = gam2020(r), gam2020(g), gam2020(b)
	case SpaceXYZD65:
		out.C1, out.C2, out.C3 = zeroed.toXYZD65()
	case SpaceXYZD50:
		x, y, z := zeroed.toXYZD65()
		out.C1, out.C2, out.C3 = multiplyMatrix(d65ToD50, x, y, z)
	case SpaceLab:
		x, y, z := zeroed.toXYZD65()
		x50, y50, z50 := multiplyMatrix(d65ToD50, x, y, z)
		out.C1, out.C2, out.C3 = xyzToLab(x50, y50, z50)
	case SpaceLCH:
		x, y, z := zeroed.toXYZD65()
		x50, y50, z50 := multiplyMatrix(d65ToD50, x, y, z)
		l, a, b := xyzToLab(x50, y50, z50)
		out.C1, out.C2, out.C3 = labToLch(l, a, b)
	case SpaceOklab:
		x, y, z := zeroed.toXYZD65()
		out.C1, out.C2, out.C3 = xyzToOklab(x, y, z)
	case SpaceOklch:
		x, y, z := zeroed.toXYZD65()
		l, a, b := xyzToOklab(x, y, z)
		out.C1, out.C2, out.C3 = labToLch(l, a, b)
	default:
		out.C1, out.C2, out.C3 = zeroed.C1, zeroed.C2, zeroed.C3
	}

	// Carry a missing hue through a polar-to-polar conversion onto the
	// destination's hue channel (C1 in hsl/hwb, C3 in lch/oklch). Other
	// missing channels are converted as 0.
	hue := func(col *Color) *float64 {
		if col.Space == SpaceLCH || col.Space == SpaceOklch {
			return &col.C3
		}
		return &col.C1
	}
	if c.Space.IsPolar() && target.IsPolar() && IsMissing(*hue(c)) {
		*hue(&out) = Missing()
	}
	return &out
}

// ToLegacyHex converts c to an 8-bit sRGB hex-compatible value, gamut
// mapping wide-gamut colors via the OKLCh binary search (spec §3.2, §8
// scenario 4). Returns r,g,b in [0,255] and a in [0,1].
func (c *Color) ToLegacyHex() (r, g, b int, a float64) {
	x, y, z := c.toXYZD65()
	rf, gf, bf := gamutMapToSRGB(x, y, z)
	round := func(v float64) int {
		i := int(math.Round(clamp01(v) * 255))
		if i < 0 {
			i = 0
		}
		if i > 255 {
			i = 255
		}
		return i
	}
	alpha := c.Alpha
	if IsMissing(alpha) {
		alpha = 1
	}
	return round(rf), round(gf), round(bf), alpha
}

// ColorsEqual compares two colors for Sass value equality: same space after
// normalization, fuzzy-equal channels, with "missing" treated as distinct
// from 0 (spec §4.1).
func ColorsEqual(a, b *Color) bool {
	bb := b
	if a.Space != b.Space {
		bb = b.ToSpace(a.Space)
	}
	chanEq := func(x, y float64) bool {
		if IsMissing(x) || IsMissing(y) {
			return IsMissing(x) == IsMissing(y)
		}
		return FuzzyEquals(x, y)
	}
	aa := a.Alpha
	ba := bb.Alpha
	if IsMissing(aa) {
		aa = 1
	}
	if IsMissing(ba) {
		ba = 1
	}
	return chanEq(a.C1, bb.C1) && chanEq(a.C2, bb.C2) && chanEq(a.C3, bb.C3) && FuzzyEquals(aa, ba)
}

// FormatColor renders the canonical CSS text for a color (spec §4.5, §8
// scenario 4: legacy colors serialize as 8-bit hex/rgb when possible).
func FormatColor(c *Color, compressed bool) string {
	if c.Legacy {
		r, g, b, a := c.ToLegacyHex()
		if IsMissing(a) || a >= 1 {
			return formatHex(r, g, b, -1, compressed)
		}
		return formatHex(r, g, b, int(math.Round(a*255)), compressed)
	}

	name := c.Space.String()
	ch := func(v float64) string {
		if IsMissing(v) {
			return "none"
		}
		return FormatNumber(v)
	}
	var channels string
	switch c.Space {
	case SpaceLab, SpaceLCH, SpaceOklab, SpaceOklch:
		channels = fmt.Sprintf("%s %s %s", ch(c.C1), ch(c.C2), ch(c.C3))
	default:
		channels = fmt.Sprintf("%s %s %s", ch(c.C1), ch(c.C2), ch(c.C3))
	}
	prefix := "color(" + name
	if c.Space == SpaceLab || c.Space == SpaceLCH || c.Space == SpaceOklab || c.Space == SpaceOklch {
		prefix = name + "("
		if IsMissing(c.Alpha) || c.Alpha >= 1 {
			return fmt.Sprintf("%s%s)", prefix, channels)
		}
		return fmt.Sprintf("%s%s / %s)", prefix, channels, ch(c.Alpha))
	}
	if IsMissing(c.Alpha) || c.Alpha >= 1 {
		return fmt.Sprintf("%s %s)", prefix, channels)
	}
	return fmt.Sprintf("%s %s / %s)", prefix, channels, ch(c.Alpha))
}

func formatHex(r, g, b, a int, compressed bool) string {
	hex2 := func(v int) string { return fmt.Sprintf("%02x", v) }
	s := "#" + hex2(r) + hex2(g) + hex2(b)
	if a >= 0 {
		s += hex2(a)
	}
	if compressed {
		if short := tryShortenHex(s); short != "" {
			return short
		}
	}
	return s
}

func tryShortenHex(hex string) string {
	digits := hex[1:]
	if len(digits)%2 != 0 {
		return ""
	}
	for i := 0; i < len(digits); i += 2 {
		if digits[i] != digits[i+1] {
			return ""
		}
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for i := 0; i < len(digits); i += 2 {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}
