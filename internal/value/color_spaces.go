package value

import "math"

// Color space conversion matrices and transfer functions, adapted from the
// published CSS Color 4 conversion code (the same reference the teacher's
// CSS parser already ships for plain-CSS color() lowering in
// evanw-esbuild/internal/css_parser/css_color_spaces.go). Every space in
// spec §3.2 routes through linear-light sRGB or XYZ as its conversion hub.

func linSRGB(r, g, b float64) (float64, float64, float64) {
	f := func(v float64) float64 {
		if abs := math.Abs(v); abs < 0.04045 {
			return v / 12.92
		}
		return math.Copysign(math.Pow((math.Abs(v)+0.055)/1.055, 2.4), v)
	}
	return f(r), f(g), f(b)
}

func gamSRGB(r, g, b float64) (float64, float64, float64) {
	f := func(v float64) float64 {
		if abs := math.Abs(v); abs > 0.0031308 {
			return math.Copysign(1.055*math.Pow(abs, 1/2.4)-0.055, v)
		}
		return 12.92 * v
	}
	return f(r), f(g), f(b)
}

func multiplyMatrix(m [9]float64, x, y, z float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*z,
		m[3]*x + m[4]*y + m[5]*z,
		m[6]*x + m[7]*y + m[8]*z
}

var linSRGBtoXYZ = [9]float64{
	506752.0 / 1228815, 87881.0 / 245763, 12673.0 / 70218,
	87098.0 / 409605, 175762.0 / 245763, 12673.0 / 175545,
	7918.0 / 409605, 87881.0 / 737289, 1001167.0 / 1053270,
}

var xyzToLinSRGB = [9]float64{
	12831.0 / 3959, -329.0 / 214, -1974.0 / 3959,
	-851781.0 / 878810, 1648619.0 / 878810, 36519.0 / 878810,
	705.0 / 12673, -2585.0 / 12673, 705.0 / 667,
}

var linP3toXYZ = [9]float64{
	608311.0 / 1250200, 189793.0 / 714400, 198249.0 / 1000160,
	35783.0 / 156275, 247089.0 / 357200, 198249.0 / 2500400,
	0, 32229.0 / 714400, 5220557.0 / 5000800,
}

var xyzToLinP3 = inverse3x3(linP3toXYZ)

func linProphoto(r, g, b float64) (float64, float64, float64) {
	const et2 = 16.0 / 512
	f := func(v float64) float64 {
		if abs := math.Abs(v); abs <= et2 {
			return v / 16
		}
		return math.Copysign(math.Pow(math.Abs(v), 1.8), v)
	}
	return f(r), f(g), f(b)
}

func gamProphoto(r, g, b float64) (float64, float64, float64) {
	const et2 = 16.0 / 512
	f := func(v float64) float64 {
		if abs := math.Abs(v); abs <= et2*16 {
			return v * 16
		}
		return math.Copysign(math.Pow(math.Abs(v), 1/1.8), v)
	}
	return f(r), f(g), f(b)
}

var linProphotoToXYZ = [9]float64{
	0.7977604896723027, 0.13518583717574031, 0.0313493495815248,
	0.2880711282292934, 0.7118432178101014, 0.00008565396060525902,
	0, 0, 0.8251046025104601,
}
var xyzToLinProphoto = inverse3x3(linProphotoToXYZ)

func linA98(v float64) float64 { return math.Copysign(math.Pow(math.Abs(v), 563.0/256), v) }
func gamA98(v float64) float64 { return math.Copysign(math.Pow(math.Abs(v), 256.0/563), v) }

var linA98toXYZ = [9]float64{
	573536.0 / 994567, 263643.0 / 1420810, 187206.0 / 994567,
	591459.0 / 1989134, 6239551.0 / 9945670, 374412.0 / 4972835,
	53769.0 / 1989134, 351524.0 / 4972835, 4929758.0 / 4972835,
}
var xyzToLinA98 = inverse3x3(linA98toXYZ)

func lin2020(v float64) float64 {
	const alpha = 1.09929682680944
	const beta = 0.018053968510807
	if abs := math.Abs(v); abs < beta*4.5 {
		return v / 4.5
	}
	return math.Copysign(math.Pow((math.Abs(v)+(alpha-1))/alpha, 1/0.45), v)
}
func gam2020(v float64) float64 {
	const alpha = 1.09929682680944
	const beta = 0.018053968510807
	if abs := math.Abs(v); abs < beta {
		return 4.5 * v
	}
	return math.Copysign(alpha*math.Pow(math.Abs(v), 0.45)-(alpha-1), v)
}

var lin2020toXYZ = [9]float64{
	63426534.0 / 99577255, 20160776.0 / 139408157, 47086771.0 / 278816314,
	26158966.0 / 99577255, 472592308.0 / 697040785, 8267143.0 / 139408157,
	0, 19567812.0 / 697040785, 295819943.0 / 278816314,
}
var xyzToLin2020 = inverse3x3(lin2020toXYZ)

var d65ToD50 = [9]float64{
	1.0479297925449969, 0.022946870601609652, -0.05019226628920524,
	0.02962780877005599, 0.9904344267538799, -0.017073799063418826,
	-0.009243040646204504, 0.015055191490298152, 0.7518742814281371,
}
var d50ToD65 = inverse3x3(d65ToD50)

const d50X = 0.3457 / 0.3585
const d50Z = (1.0 - 0.3457 - 0.3585) / 0.3585

func xyzToLab(x, y, z float64) (float64, float64, float64) {
	const eps = 216.0 / 24389
	const kappa = 24389.0 / 27
	x /= d50X
	z /= d50Z
	f := func(v float64) float64 {
		if v > eps {
			return math.Cbrt(v)
		}
		return (kappa*v + 16) / 116
	}
	f0, f1, f2 := f(x), f(y), f(z)
	return 116*f1 - 16, 500 * (f0 - f1), 200 * (f1 - f2)
}

func labToXYZ(l, a, b float64) (x, y, z float64) {
	const kappa = 24389.0 / 27
	const eps = 216.0 / 24389
	f1 := (l + 16) / 116
	f0 := a/500 + f1
	f2 := f1 - b/200
	if f0f0f0 := f0 * f0 * f0; f0f0f0 > eps {
		x = f0f0f0
	} else {
		x = (116*f0 - 16) / kappa
	}
	if l > kappa*eps {
		y = math.Pow((l+16)/116, 3)
	} else {
		y = l / kappa
	}
	if f2f2f2 := f2 * f2 * f2; f2f2f2 > eps {
		z = f2f2f2
	} else {
		z = (116*f2 - 16) / kappa
	}
	return x * d50X, y, z * d50Z
}

func labToLch(l, a, b float64) (float64, float64, float64) {
	hue := math.Atan2(b, a) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	return l, math.Sqrt(a*a + b*b), hue
}

func lchToLab(l, c, h float64) (float64, float64, float64) {
	return l, c * math.Cos(h*math.Pi/180), c * math.Sin(h*math.Pi/180)
}

var xyzToLMS = [9]float64{
	0.8190224432164319, 0.3619062562801221, -0.12887378261216414,
	0.0329836671980271, 0.9292868468965546, 0.03614466816999844,
	0.048177199566046255, 0.26423952494422764, 0.6335478258136937,
}
var lmsToOklab = [9]float64{
	0.2104542553, 0.7936177850, -0.0040720468,
	1.9779984951, -2.4285922050, 0.4505937099,
	0.0259040371, 0.7827717662, -0.8086757660,
}
var oklabToLMS = inverse3x3(lmsToOklab)
var lmsToXYZ = inverse3x3(xyzToLMS)

func xyzToOklab(x, y, z float64) (float64, float64, float64) {
	l, m, s := multiplyMatrix(xyzToLMS, x, y, z)
	return multiplyMatrix(lmsToOklab, math.Cbrt(l), math.Cbrt(m), math.Cbrt(s))
}

func oklabToXYZ(l, a, b float64) (float64, float64, float64) {
	ll, m, s := multiplyMatrix(oklabToLMS, l, a, b)
	return multiplyMatrix(lmsToXYZ, ll*ll*ll, m*m*m, s*s*s)
}

func inverse3x3(m [9]float64) [9]float64 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]
	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C
	D := -(b*i - c*h)
	E := a*i - c*g
	F := -(a*h - b*g)
	G := b*f - c*e
	H := -(a*f - c*d)
	I := a*e - b*d
	return [9]float64{A / det, D / det, G / det, B / det, E / det, H / det, C / det, F / det, I / det}
}

// hslToSRGB and hwbToSRGB convert the legacy polar spaces to sRGB in [0,1],
// per https://drafts.csswg.org/css-color/#hsl-to-rgb and #hwb-to-rgb.
func hslToSRGB(h, s, l float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)
	hueToRGB := func(t1, t2, hue float64) float64 {
		hue -= math.Floor(hue)
		hue *= 6
		switch {
		case hue < 1:
			return t1 + (t2-t1)*hue
		case hue < 3:
			return t2
		case hue < 4:
			return t1 + (t2-t1)*(4-hue)
		default:
			return t1
		}
	}
	var t2 float64
	if l <= 0.5 {
		t2 = l * (s + 1)
	} else {
		t2 = l + s - l*s
	}
	t1 := l*2 - t2
	hNorm := h / 360
	r := hueToRGB(t1, t2, hNorm+1.0/3)
	g := hueToRGB(t1, t2, hNorm)
	b := hueToRGB(t1, t2, hNorm-1.0/3)
	return r, g, b
}

func hwbToSRGB(h, w, b float64) (float64, float64, float64) {
	w /= 100
	b /= 100
	if w+b >= 1 {
		gray := w / (w + b)
		return gray, gray, gray
	}
	r, g, bl := hslToSRGB(h, 1, 0.5)
	delta := 1 - w - b
	return r*delta + w, g*delta + w, bl*delta + w
}

func srgbToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	d := max - min
	if d == 0 {
		return 0, 0, l * 100
	}
	if l <= 0.5 {
		s = d / (max + min)
	} else {
		s = d / (2 - max - min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s * 100, l * 100
}

func srgbToHWB(r, g, b float64) (h, w, bl float64) {
	h, _, _ = srgbToHSL(r, g, b)
	w = math.Min(r, math.Min(g, b)) * 100
	bl = (1 - math.Max(r, math.Max(g, b))) * 100
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// gamutMapToSRGB implements the CSS Color 4 binary-search OKLCh gamut
// mapping algorithm, used when a wide-gamut color must round-trip through
// 8-bit legacy rgb for hex/legacy serialization (spec §3.2, §8 scenario 4).
func gamutMapToSRGB(x, y, z float64) (float64, float64, float64) {
	l, c, h := xyzToOklch(x, y, z)
	if l >= 1 {
		return 1, 1, 1
	}
	if l <= 0 {
		return 0, 0, 0
	}
	toSRGB := func(l, c, h float64) (float64, float64, float64) {
		ll, a, b := lchToLab(l, c, h)
		x, y, z := oklabToXYZ(ll, a, b)
		r, g, bl := multiplyMatrix(xyzToLinSRGB, x, y, z)
		return gamSRGB(r, g, bl)
	}
	toOklab := func(r, g, b float64) (float64, float64, float64) {
		r, g, b = linSRGB(r, g, b)
		x, y, z := multiplyMatrix(linSRGBtoXYZ, r, g, b)
		return xyzToOklab(x, y, z)
	}
	inGamut := func(r, g, b float64) bool {
		return r >= -1e-6 && r <= 1+1e-6 && g >= -1e-6 && g <= 1+1e-6 && b >= -1e-6 && b <= 1+1e-6
	}

	r, g, b := toSRGB(l, c, h)
	if inGamut(r, g, b) {
		return clamp01(r), clamp01(g), clamp01(b)
	}

	const jnd = 0.02
	const epsilon = 0.0001
	min, max := 0.0, c
	for max-min > epsilon {
		chroma := (min + max) / 2
		r, g, b = toSRGB(l, chroma, h)
		if inGamut(r, g, b) {
			min = chroma
			continue
		}
		cr, cg, cb := clamp01(r), clamp01(g), clamp01(b)
		l1, a1, b1 := toOklab(cr, cg, cb)
		l2, a2, b2 := toOklab(r, g, b)
		dl, da, db := l1-l2, a1-a2, b1-b2
		e := math.Sqrt(dl*dl + da*da + db*db)
		if e < jnd {
			return cr, cg, cb
		}
		max = chroma
	}
	return clamp01(r), clamp01(g), clamp01(b)
}

func xyzToOklch(x, y, z float64) (float64, float64, float64) {
	l, a, b := xyzToOklab(x, y, z)
	return labToLch(l, a, b)
}
