package value

// namedColors maps every CSS/Sass color keyword to its packed 0xRRGGBBAA
// representation (spec §3.1's color literal grammar includes named colors
// alongside hex and functional notation).
var namedColors = map[string]uint32{
	"black": 0x000000ff, "silver": 0xc0c0c0ff, "gray": 0x808080ff, "white": 0xffffffff,
	"maroon": 0x800000ff, "red": 0xff0000ff, "purple": 0x800080ff, "fuchsia": 0xff00ffff,
	"green": 0x008000ff, "lime": 0x00ff00ff, "olive": 0x808000ff, "yellow": 0xffff00ff,
	"navy": 0x000080ff, "blue": 0x0000ffff, "teal": 0x008080ff, "aqua": 0x00ffffff,
	"orange": 0xffa500ff, "aliceblue": 0xf0f8ffff, "antiquewhite": 0xfaebd7ff,
	"aquamarine": 0x7fffd4ff, "azure": 0xf0ffffff, "beige": 0xf5f5dcff, "bisque": 0xffe4c4ff,
	"blanchedalmond": 0xffebcdff, "blueviolet": 0x8a2be2ff, "brown": 0xa52a2aff,
	"burlywood": 0xdeb887ff, "cadetblue": 0x5f9ea0ff, "chartreuse": 0x7fff00ff,
	"chocolate": 0xd2691eff, "coral": 0xff7f50ff, "cornflowerblue": 0x6495edff,
	"cornsilk": 0xfff8dcff, "crimson": 0xdc143cff, "cyan": 0x00ffffff, "darkblue": 0x00008bff,
	"darkcyan": 0x008b8bff, "darkgoldenrod": 0xb8860bff, "darkgray": 0xa9a9a9ff,
	"darkgreen": 0x006400ff, "darkgrey": 0xa9a9a9ff, "darkkhaki": 0xbdb76bff,
	"darkmagenta": 0x8b008bff, "darkolivegreen": 0x556b2fff, "darkorange": 0xff8c00ff,
	"darkorchid": 0x9932ccff, "darkred": 0x8b0000ff, "darksalmon": 0xe9967aff,
	"darkseagreen": 0x8fbc8fff, "darkslateblue": 0x483d8bff, "darkslategray": 0x2f4f4fff,
	"darkslategrey": 0x2f4f4fff, "darkturquoise": 0x00ced1ff, "darkviolet": 0x9400d3ff,
	"deeppink": 0xff1493ff, "deepskyblue": 0x00bfffff, "dimgray": 0x696969ff,
	"dimgrey": 0x696969ff, "dodgerblue": 0x1e90ffff, "firebrick": 0xb22222ff,
	"floralwhite": 0xfffaf0ff, "forestgreen": 0x228b22ff, "gainsboro": 0xdcdcdcff,
	"ghostwhite": 0xf8f8ffff, "gold": 0xffd700ff, "goldenrod": 0xdaa520ff,
	"greenyellow": 0xadff2fff, "grey": 0x808080ff, "honeydew": 0xf0fff0ff,
	"hotpink": 0xff69b4ff, "indianred": 0xcd5c5cff, "indigo": 0x4b0082ff,
	"ivory": 0xfffff0ff, "khaki": 0xf0e68cff, "lavender": 0xe6e6faff,
	"lavenderblush": 0xfff0f5ff, "lawngreen": 0x7cfc00ff, "lemonchiffon": 0xfffacdff,
	"lightblue": 0xadd8e6ff, "lightcoral": 0xf08080ff, "lightcyan": 0xe0ffffff,
	"lightgoldenrodyellow": 0xfafad2ff, "lightgray": 0xd3d3d3ff, "lightgreen": 0x90ee90ff,
	"lightgrey": 0xd3d3d3ff, "lightpink": 0xffb6c1ff, "lightsalmon": 0xffa07aff,
	"lightseagreen": 0x20b2aaff, "lightskyblue": 0x87cefaff, "lightslategray": 0x778899ff,
	"lightslategrey": 0x778899ff, "lightsteelblue": 0xb0c4deff, "lightyellow": 0xffffe0ff,
	"limegreen": 0x32cd32ff, "linen": 0xfaf0e6ff, "magenta": 0xff00ffff,
	"mediumaquamarine": 0x66cdaaff, "mediumblue": 0x0000cdff, "mediumorchid": 0xba55d3ff,
	"mediumpurple": 0x9370dbff, "mediumseagreen": 0x3cb371ff, "mediumslateblue": 0x7b68eeff,
	"mediumspringgreen": 0x00fa9aff, "mediumturquoise": 0x48d1ccff, "mediumvioletred": 0xc71585ff,
	"midnightblue": 0x191970ff, "mintcream": 0xf5fffaff, "mistyrose": 0xffe4e1ff,
	"moccasin": 0xffe4b5ff, "navajowhite": 0xffdeadff, "oldlace": 0xfdf5e6ff,
	"olivedrab": 0x6b8e23ff, "orangered": 0xff4500ff, "orchid": 0xda70d6ff,
	"palegoldenrod": 0xeee8aaff, "palegreen": 0x98fb98ff, "paleturquoise": 0xafeeeeff,
	"palevioletred": 0xdb7093ff, "papayawhip": 0xffefd5ff, "peachpuff": 0xffdab9ff,
	"peru": 0xcd853fff, "pink": 0xffc0cbff, "plum": 0xdda0ddff, "powderblue": 0xb0e0e6ff,
	"rosybrown": 0xbc8f8fff, "royalblue": 0x4169e1ff, "saddlebrown": 0x8b4513ff,
	"salmon": 0xfa8072ff, "sandybrown": 0xf4a460ff, "seagreen": 0x2e8b57ff,
	"seashell": 0xfff5eeff, "sienna": 0xa0522dff, "skyblue": 0x87ceebff,
	"slateblue": 0x6a5acdff, "slategray": 0x708090ff, "slategrey": 0x708090ff,
	"snow": 0xfffafaff, "springgreen": 0x00ff7fff, "steelblue": 0x4682b4ff,
	"tan": 0xd2b48cff, "thistle": 0xd8bfd8ff, "tomato": 0xff6347ff, "turquoise": 0x40e0d0ff,
	"violet": 0xee82eeff, "wheat": 0xf5deb3ff, "whitesmoke": 0xf5f5f5ff,
	"yellowgreen": 0x9acd32ff, "rebeccapurple": 0x663399ff, "transparent": 0x00000000,
}

// NamedColor resolves a lowercased CSS color keyword to a legacy-sRGB Color,
// reporting false for anything not in the table (including "currentColor",
// which the evaluator must special-case separately since it isn't a fixed
// color).
func NamedColor(name string) (*Color, bool) {
	packed, ok := namedColors[name]
	if !ok {
		return nil, false
	}
	r := float64((packed >> 24) & 0xff)
	g := float64((packed >> 16) & 0xff)
	b := float64((packed >> 8) & 0xff)
	a := float64(packed&0xff) / 255
	c := RGB(r, g, b, a)
	c.Legacy = true
	return c, true
}

// HexColor parses a "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" literal (the
// leading "#" must already be stripped by the caller).
func HexColor(hex string) (*Color, bool) {
	expand := func(c byte) (byte, byte) { return c, c }
	var r, g, b, a int
	var hasAlpha bool
	switch len(hex) {
	case 3, 4:
		rh, rl := expand(hex[0])
		gh, gl := expand(hex[1])
		bh, bl := expand(hex[2])
		var ok bool
		if r, ok = hexByte(rh, rl); !ok {
			return nil, false
		}
		if g, ok = hexByte(gh, gl); !ok {
			return nil, false
		}
		if b, ok = hexByte(bh, bl); !ok {
			return nil, false
		}
		if len(hex) == 4 {
			ah, al := expand(hex[3])
			if a, ok = hexByte(ah, al); !ok {
				return nil, false
			}
			hasAlpha = true
		}
	case 6, 8:
		var ok bool
		if r, ok = hexByte(hex[0], hex[1]); !ok {
			return nil, false
		}
		if g, ok = hexByte(hex[2], hex[3]); !ok {
			return nil, false
		}
		if b, ok = hexByte(hex[4], hex[5]); !ok {
			return nil, false
		}
		if len(hex) == 8 {
			if a, ok = hexByte(hex[6], hex[7]); !ok {
				return nil, false
			}
			hasAlpha = true
		}
	default:
		return nil, false
	}
	alpha := 1.0
	if hasAlpha {
		alpha = float64(a) / 255
	}
	c := RGB(float64(r), float64(g), float64(b), alpha)
	c.Legacy = true
	return c, true
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func hexByte(hi, lo byte) (int, bool) {
	h, ok := hexDigit(hi)
	if !ok {
		return 0, false
	}
	l, ok := hexDigit(lo)
	if !ok {
		return 0, false
	}
	return h*16 + l, true
}
