package eval

import (
	"math"
	"strings"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/selector"
	"github.com/go-sass/sass/internal/value"
)

// builtinModuleName maps a "@use" URL onto one of the built-in modules
// (spec §4.4: "the evaluator registers these under their module's scope
// when imported"), or reports ok=false for an ordinary filesystem URL.
func builtinModuleName(url string) (string, bool) {
	name := strings.TrimPrefix(url, "sass:")
	if name == url {
		return "", false
	}
	if _, ok := builtinModules[name]; ok {
		return name, true
	}
	return name, name == "math" || name == "color" || name == "list" || name == "map" || name == "meta" || name == "string" || name == "selector"
}

// builtinModuleVars holds the handful of module-scoped variables the
// built-in modules expose (math.$pi, math.$e); every other built-in module
// has none.
var builtinModuleVars = map[string]map[string]value.Value{
	"math": {
		"pi": value.Unitless(math.Pi),
		"e":  value.Unitless(math.E),
	},
}

// builtinModules is the per-namespace function table used once a stylesheet
// "@use"s one of the sass: built-in modules. Entries that simply expose an
// existing global builtin (e.g. color.mix) are aliased rather than
// reimplemented.
var builtinModules = map[string]map[string]builtinFunc{
	"math": {
		"abs":        builtinFunctions["abs"],
		"ceil":       builtinFunctions["ceil"],
		"floor":      builtinFunctions["floor"],
		"round":      builtinFunctions["round"],
		"max":        builtinFunctions["max"],
		"min":        builtinFunctions["min"],
		"percentage": builtinFunctions["percentage"],
		"sqrt":       builtinFunctions["sqrt"],
		"unit":       builtinFunctions["unit"],
		"unitless":   builtinFunctions["unitless"],
		"compatible": builtinFunctions["comparable"],
		"div":        {params: []builtinParam{param("number1"), param("number2")}, fn: biMathDiv},
		"pow":        {params: []builtinParam{param("base"), param("exponent")}, fn: biMathPow},
		"log":        {params: []builtinParam{param("number"), paramDefault("base", value.Null)}, fn: biMathLog},
		"clamp":      {params: []builtinParam{param("min"), param("number"), param("max")}, fn: biMathClamp},
	},
	"color": {
		"rgb":            builtinFunctions["rgb"],
		"rgba":           builtinFunctions["rgba"],
		"red":            builtinFunctions["red"],
		"green":          builtinFunctions["green"],
		"blue":           builtinFunctions["blue"],
		"alpha":          builtinFunctions["alpha"],
		"opacify":        builtinFunctions["opacify"],
		"fade-in":        builtinFunctions["fade-in"],
		"transparentize": builtinFunctions["transparentize"],
		"fade-out":       builtinFunctions["fade-out"],
		"mix":            builtinFunctions["mix"],
		"invert":         builtinFunctions["invert"],
		"grayscale":      builtinFunctions["grayscale"],
		"hue":            {params: []builtinParam{param("color")}, fn: biColorHue},
		"saturation":     {params: []builtinParam{param("color")}, fn: biColorSaturation},
		"lightness":      {params: []builtinParam{param("color")}, fn: biColorLightness},
		"complement":     {params: []builtinParam{param("color")}, fn: biColorComplement},
		"adjust": {params: []builtinParam{
			param("color"),
			paramDefault("red", value.Null), paramDefault("green", value.Null), paramDefault("blue", value.Null),
			paramDefault("hue", value.Null), paramDefault("saturation", value.Null), paramDefault("lightness", value.Null),
			paramDefault("alpha", value.Null),
		}, fn: biColorAdjust},
		"change": {params: []builtinParam{
			param("color"),
			paramDefault("red", value.Null), paramDefault("green", value.Null), paramDefault("blue", value.Null),
			paramDefault("hue", value.Null), paramDefault("saturation", value.Null), paramDefault("lightness", value.Null),
			paramDefault("alpha", value.Null),
		}, fn: biColorChange},
		"scale": {params: []builtinParam{
			param("color"),
			paramDefault("red", value.Null), paramDefault("green", value.Null), paramDefault("blue", value.Null),
			paramDefault("saturation", value.Null), paramDefault("lightness", value.Null),
			paramDefault("alpha", value.Null),
		}, fn: biColorScale},
	},
	"list": {
		"length":       builtinFunctions["length"],
		"nth":          builtinFunctions["nth"],
		"set-nth":      builtinFunctions["set-nth"],
		"separator":    builtinFunctions["list-separator"],
		"is-bracketed": builtinFunctions["is-bracketed"],
		"append":       builtinFunctions["append"],
		"join":         builtinFunctions["join"],
		"index":        builtinFunctions["index"],
		"zip":          {params: []builtinParam{param("list")}, rest: "lists", fn: biListZip},
	},
	"map": {
		"get":     builtinFunctions["map-get"],
		"merge":   builtinFunctions["map-merge"],
		"keys":    builtinFunctions["map-keys"],
		"values":  builtinFunctions["map-values"],
		"has-key": builtinFunctions["map-has-key"],
		"remove":  builtinFunctions["map-remove"],
	},
	"string": {
		"quote":         builtinFunctions["quote"],
		"unquote":       builtinFunctions["unquote"],
		"to-upper-case": builtinFunctions["to-upper-case"],
		"to-lower-case": builtinFunctions["to-lower-case"],
		"length":        builtinFunctions["str-length"],
		"slice":         builtinFunctions["str-slice"],
		"index":         builtinFunctions["str-index"],
		"insert":        {params: []builtinParam{param("string"), param("insert"), param("index")}, fn: biStringInsert},
	},
	"meta": {
		"type-of":                builtinFunctions["type-of"],
		"inspect":                builtinFunctions["inspect"],
		"variable-exists":        builtinFunctions["variable-exists"],
		"global-variable-exists": builtinFunctions["global-variable-exists"],
		"function-exists":        builtinFunctions["function-exists"],
		"mixin-exists":           builtinFunctions["mixin-exists"],
		"get-function":           {params: []builtinParam{param("name"), paramDefault("css", value.FromBool(false)), paramDefault("module", value.Null)}, fn: biGetFunction},
		"call":                   {params: []builtinParam{param("function")}, rest: "args", fn: biCall},
		"content-exists":         {fn: biContentExists},
		"keywords":               {params: []builtinParam{param("args")}, fn: biKeywords},
	},
	"selector": {
		"is-superselector": {params: []builtinParam{param("super"), param("sub")}, fn: biIsSuperselector},
		"selector-unify":   {params: []builtinParam{param("selector1"), param("selector2")}, fn: biSelectorUnify},
		"selector-nest":    {params: []builtinParam{param("selector")}, rest: "selectors", fn: biSelectorNest},
		"selector-append":  {params: []builtinParam{param("selector")}, rest: "selectors", fn: biSelectorAppend},
		"selector-extend":  {params: []builtinParam{param("selector"), param("extendee"), param("extender")}, fn: biSelectorExtend},
		"selector-replace": {params: []builtinParam{param("selector"), param("original"), param("replacement")}, fn: biSelectorReplace},
		"simple-selectors": {params: []builtinParam{param("selector")}, fn: biSimpleSelectors},
		"selector-parse":   {params: []builtinParam{param("selector")}, fn: biSelectorParse},
	},
}

func wantSelectorText(v value.Value, span logger.Range, fn string) (string, error) {
	switch vv := v.(type) {
	case *value.SassString:
		return vv.Text, nil
	case *value.List:
		return value.ToCSS(vv), nil
	default:
		return "", newError(TypeError, span, "%s: %s is not a valid selector", fn, value.Inspect(v))
	}
}

func parseSelectorArg(v value.Value, span logger.Range, fn string) (selector.List, error) {
	text, err := wantSelectorText(v, span, fn)
	if err != nil {
		return selector.List{}, err
	}
	list, perr := selector.Parse(text)
	if perr != nil {
		return selector.List{}, newError(InvalidSelector, span, "%s: %v", fn, perr)
	}
	return list, nil
}

// selectorListToValue renders a selector.List the way meta.selector-parse
// and friends expose it: a comma-separated list of space-separated lists of
// unquoted compound-selector strings (spec §4.4's selector functions).
func selectorListToValue(l selector.List) value.Value {
	complexes := make([]value.Value, len(l.Complexes))
	for i, c := range l.Complexes {
		parts := make([]value.Value, len(c.Compounds))
		for j, comp := range c.Compounds {
			parts[j] = value.Unquoted(comp.String())
		}
		complexes[i] = value.NewList(parts, value.SepSpace, false)
	}
	return value.NewList(complexes, value.SepComma, false)
}

func biIsSuperselector(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	super, err := parseSelectorArg(a["super"], span, "is-superselector")
	if err != nil {
		return nil, err
	}
	sub, err := parseSelectorArg(a["sub"], span, "is-superselector")
	if err != nil {
		return nil, err
	}
	return value.FromBool(selector.ListIsSuperselector(super, sub)), nil
}

func biSelectorUnify(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l1, err := parseSelectorArg(a["selector1"], span, "selector-unify")
	if err != nil {
		return nil, err
	}
	l2, err := parseSelectorArg(a["selector2"], span, "selector-unify")
	if err != nil {
		return nil, err
	}
	var out selector.List
	for _, c1 := range l1.Complexes {
		for _, c2 := range l2.Complexes {
			if merged, ok := selector.Unify(c1, c2); ok {
				out.Complexes = append(out.Complexes, merged)
			}
		}
	}
	if len(out.Complexes) == 0 {
		return value.Null, nil
	}
	return selectorListToValue(out), nil
}

func biSelectorNest(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	first, err := parseSelectorArg(a["selector"], span, "selector-nest")
	if err != nil {
		return nil, err
	}
	result := first
	for _, v := range asItems(a["selectors"]) {
		next, err := parseSelectorArg(v, span, "selector-nest")
		if err != nil {
			return nil, err
		}
		result, err = nestSelector(next, result, span)
		if err != nil {
			return nil, err
		}
	}
	return selectorListToValue(result), nil
}

// biSelectorAppend concatenates each argument's compounds onto the
// previous result with no combinator, Sass's "glue compound selectors
// together" append (as opposed to selector-nest's "&"-aware descendant
// nesting).
func biSelectorAppend(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	first, err := parseSelectorArg(a["selector"], span, "selector-append")
	if err != nil {
		return nil, err
	}
	result := first
	for _, v := range asItems(a["selectors"]) {
		next, err := parseSelectorArg(v, span, "selector-append")
		if err != nil {
			return nil, err
		}
		var appended selector.List
		for _, rc := range result.Complexes {
			for _, nc := range next.Complexes {
				if len(nc.Compounds) == 0 {
					continue
				}
				if len(rc.Compounds) == 0 {
					appended.Complexes = append(appended.Complexes, nc)
					continue
				}
				merged := append([]selector.Compound{}, rc.Compounds[:len(rc.Compounds)-1]...)
				last := selector.Compound{Simples: append(append([]selector.Simple{}, rc.Compounds[len(rc.Compounds)-1].Simples...), nc.Compounds[0].Simples...)}
				merged = append(merged, last)
				merged = append(merged, nc.Compounds[1:]...)
				combinators := append(append([]selector.Combinator{}, rc.Combinators...), nc.Combinators...)
				appended.Complexes = append(appended.Complexes, selector.Complex{Compounds: merged, Combinators: combinators})
			}
		}
		result = appended
	}
	return selectorListToValue(result), nil
}

func singleCompoundTarget(l selector.List, span logger.Range, fn string) (selector.Simple, error) {
	if len(l.Complexes) != 1 || len(l.Complexes[0].Compounds) != 1 || len(l.Complexes[0].Compounds[0].Simples) != 1 {
		return nil, newError(InvalidSelector, span, "%s: extendee must be a single simple selector", fn)
	}
	return l.Complexes[0].Compounds[0].Simples[0], nil
}

func biSelectorExtend(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return selectorExtendImpl(a, span, "selector-extend", false)
}

func biSelectorReplace(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return selectorExtendImpl(a, span, "selector-replace", true)
}

func selectorExtendImpl(a map[string]value.Value, span logger.Range, fn string, replace bool) (value.Value, error) {
	base, err := parseSelectorArg(a["selector"], span, fn)
	if err != nil {
		return nil, err
	}
	extendeeKey := "extendee"
	extenderKey := "extender"
	if replace {
		extendeeKey, extenderKey = "original", "replacement"
	}
	extendee, err := parseSelectorArg(a[extendeeKey], span, fn)
	if err != nil {
		return nil, err
	}
	extender, err := parseSelectorArg(a[extenderKey], span, fn)
	if err != nil {
		return nil, err
	}
	target, err := singleCompoundTarget(extendee, span, fn)
	if err != nil {
		return nil, err
	}
	var extensions []selector.Extension
	for _, c := range extender.Complexes {
		extensions = append(extensions, selector.Extension{Target: target, Extender: c})
	}
	out, xerr := selector.Extend(base, extensions)
	if xerr != nil {
		return nil, newError(ExtendCycle, span, "%s: %v", fn, xerr)
	}
	return selectorListToValue(out), nil
}

func biSimpleSelectors(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l, err := parseSelectorArg(a["selector"], span, "simple-selectors")
	if err != nil {
		return nil, err
	}
	comp, err := singleCompoundContainer(l, span)
	if err != nil {
		return nil, err
	}
	items := make([]value.Value, len(comp.Simples))
	for i, s := range comp.Simples {
		items[i] = value.Unquoted(s.String())
	}
	return value.NewList(items, value.SepComma, false), nil
}

func singleCompoundContainer(l selector.List, span logger.Range) (selector.Compound, error) {
	if len(l.Complexes) != 1 || len(l.Complexes[0].Compounds) != 1 {
		return selector.Compound{}, newError(InvalidSelector, span, "simple-selectors: selector must be a single compound selector")
	}
	return l.Complexes[0].Compounds[0], nil
}

func biSelectorParse(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l, err := parseSelectorArg(a["selector"], span, "selector-parse")
	if err != nil {
		return nil, err
	}
	return selectorListToValue(l), nil
}

func biMathDiv(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n1, err := wantNumber(a["number1"], span, "math.div")
	if err != nil {
		return nil, err
	}
	n2, err := wantNumber(a["number2"], span, "math.div")
	if err != nil {
		return nil, err
	}
	result, opErr := value.DivNumbers(n1, n2)
	if opErr != nil {
		return nil, newError(DivisionByZero, span, "%s", opErr.Message)
	}
	return result, nil
}

func biMathPow(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	base, err := wantNumber(a["base"], span, "math.pow")
	if err != nil {
		return nil, err
	}
	exp, err := wantNumber(a["exponent"], span, "math.pow")
	if err != nil {
		return nil, err
	}
	if !base.IsUnitless() || !exp.IsUnitless() {
		return nil, newError(TypeError, span, "math.pow() requires unitless arguments")
	}
	return value.Unitless(math.Pow(base.Val, exp.Val)), nil
}

func biMathLog(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "math.log")
	if err != nil {
		return nil, err
	}
	if value.IsNull(a["base"]) {
		return value.Unitless(math.Log(n.Val)), nil
	}
	base, err := wantNumber(a["base"], span, "math.log")
	if err != nil {
		return nil, err
	}
	return value.Unitless(math.Log(n.Val) / math.Log(base.Val)), nil
}

func biMathClamp(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	lo, err := wantNumber(a["min"], span, "math.clamp")
	if err != nil {
		return nil, err
	}
	n, err := wantNumber(a["number"], span, "math.clamp")
	if err != nil {
		return nil, err
	}
	hi, err := wantNumber(a["max"], span, "math.clamp")
	if err != nil {
		return nil, err
	}
	if cmp, opErr := value.CompareNumbers(n, lo); opErr == nil && cmp < 0 {
		return lo, nil
	}
	if cmp, opErr := value.CompareNumbers(n, hi); opErr == nil && cmp > 0 {
		return hi, nil
	}
	return n, nil
}

func biColorHue(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.hue")
	if err != nil {
		return nil, err
	}
	hsl := c.ToSpace(value.SpaceHSL)
	return value.WithUnit(hsl.C1, "deg"), nil
}

func biColorSaturation(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.saturation")
	if err != nil {
		return nil, err
	}
	hsl := c.ToSpace(value.SpaceHSL)
	return value.WithUnit(hsl.C2*100, "%"), nil
}

func biColorLightness(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.lightness")
	if err != nil {
		return nil, err
	}
	hsl := c.ToSpace(value.SpaceHSL)
	return value.WithUnit(hsl.C3*100, "%"), nil
}

func biColorComplement(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.complement")
	if err != nil {
		return nil, err
	}
	hsl := c.ToSpace(value.SpaceHSL)
	cp := *hsl
	cp.C1 = math.Mod(cp.C1+180, 360)
	return cp.ToSpace(c.Space), nil
}

// colorAdjustArgs pulls the shared red/green/blue/hue/saturation/lightness/
// alpha argument set color.adjust/change/scale all take.
func colorAdjustArgs(a map[string]value.Value, span logger.Range, fn string) (rgb, hsl [3]*float64, alpha *float64, err error) {
	get := func(name string) (*float64, error) {
		v := a[name]
		if v == nil || value.IsNull(v) {
			return nil, nil
		}
		n, err := wantNumber(v, span, fn)
		if err != nil {
			return nil, err
		}
		f := n.Val
		if n.HasUnit("%") && (name == "alpha" || name == "saturation" || name == "lightness") {
			f /= 100
		}
		return &f, nil
	}
	var e error
	if rgb[0], e = get("red"); e != nil {
		return rgb, hsl, nil, e
	}
	if rgb[1], e = get("green"); e != nil {
		return rgb, hsl, nil, e
	}
	if rgb[2], e = get("blue"); e != nil {
		return rgb, hsl, nil, e
	}
	if hsl[0], e = get("hue"); e != nil {
		return rgb, hsl, nil, e
	}
	if hsl[1], e = get("saturation"); e != nil {
		return rgb, hsl, nil, e
	}
	if hsl[2], e = get("lightness"); e != nil {
		return rgb, hsl, nil, e
	}
	if alpha, e = get("alpha"); e != nil {
		return rgb, hsl, nil, e
	}
	return rgb, hsl, alpha, nil
}

func biColorAdjust(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.adjust")
	if err != nil {
		return nil, err
	}
	rgbD, hslD, alphaD, err := colorAdjustArgs(a, span, "color.adjust")
	if err != nil {
		return nil, err
	}
	if rgbD[0] != nil || rgbD[1] != nil || rgbD[2] != nil {
		s := c.ToSpace(value.SpaceSRGB)
		cp := *s
		if rgbD[0] != nil {
			cp.C1 = clamp(cp.C1+*rgbD[0]/255, 0, 1)
		}
		if rgbD[1] != nil {
			cp.C2 = clamp(cp.C2+*rgbD[1]/255, 0, 1)
		}
		if rgbD[2] != nil {
			cp.C3 = clamp(cp.C3+*rgbD[2]/255, 0, 1)
		}
		if alphaD != nil {
			cp.Alpha = clamp(cp.Alpha+*alphaD, 0, 1)
		}
		return cp.ToSpace(c.Space), nil
	}
	if hslD[0] != nil || hslD[1] != nil || hslD[2] != nil {
		s := c.ToSpace(value.SpaceHSL)
		cp := *s
		if hslD[0] != nil {
			cp.C1 = math.Mod(cp.C1+*hslD[0]+360, 360)
		}
		if hslD[1] != nil {
			cp.C2 = clamp(cp.C2+*hslD[1], 0, 1)
		}
		if hslD[2] != nil {
			cp.C3 = clamp(cp.C3+*hslD[2], 0, 1)
		}
		if alphaD != nil {
			cp.Alpha = clamp(cp.Alpha+*alphaD, 0, 1)
		}
		return cp.ToSpace(c.Space), nil
	}
	if alphaD != nil {
		cp := *c
		cp.Alpha = clamp(cp.Alpha+*alphaD, 0, 1)
		return &cp, nil
	}
	return c, nil
}

func biColorChange(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.change")
	if err != nil {
		return nil, err
	}
	rgbD, hslD, alphaD, err := colorAdjustArgs(a, span, "color.change")
	if err != nil {
		return nil, err
	}
	s := c
	if rgbD[0] != nil || rgbD[1] != nil || rgbD[2] != nil {
		srgb := c.ToSpace(value.SpaceSRGB)
		cp := *srgb
		if rgbD[0] != nil {
			cp.C1 = clamp(*rgbD[0]/255, 0, 1)
		}
		if rgbD[1] != nil {
			cp.C2 = clamp(*rgbD[1]/255, 0, 1)
		}
		if rgbD[2] != nil {
			cp.C3 = clamp(*rgbD[2]/255, 0, 1)
		}
		s = &cp
	} else if hslD[0] != nil || hslD[1] != nil || hslD[2] != nil {
		hsl := c.ToSpace(value.SpaceHSL)
		cp := *hsl
		if hslD[0] != nil {
			cp.C1 = math.Mod(*hslD[0]+360, 360)
		}
		if hslD[1] != nil {
			cp.C2 = clamp(*hslD[1], 0, 1)
		}
		if hslD[2] != nil {
			cp.C3 = clamp(*hslD[2], 0, 1)
		}
		s = &cp
	}
	out := s.ToSpace(c.Space)
	if alphaD != nil {
		cp := *out
		cp.Alpha = clamp(*alphaD, 0, 1)
		return &cp, nil
	}
	return out, nil
}

func biColorScale(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "color.scale")
	if err != nil {
		return nil, err
	}
	scaleTo := func(cur, delta float64) float64 {
		if delta >= 0 {
			return cur + (1-cur)*delta
		}
		return cur + cur*delta
	}
	rgbD, hslD, alphaD, err := colorAdjustArgs(a, span, "color.scale")
	if err != nil {
		return nil, err
	}
	result := c
	if rgbD[0] != nil || rgbD[1] != nil || rgbD[2] != nil {
		srgb := c.ToSpace(value.SpaceSRGB)
		cp := *srgb
		if rgbD[0] != nil {
			cp.C1 = clamp(scaleTo(cp.C1, *rgbD[0]), 0, 1)
		}
		if rgbD[1] != nil {
			cp.C2 = clamp(scaleTo(cp.C2, *rgbD[1]), 0, 1)
		}
		if rgbD[2] != nil {
			cp.C3 = clamp(scaleTo(cp.C3, *rgbD[2]), 0, 1)
		}
		result = cp.ToSpace(c.Space)
	} else if hslD[1] != nil || hslD[2] != nil {
		hsl := c.ToSpace(value.SpaceHSL)
		cp := *hsl
		if hslD[1] != nil {
			cp.C2 = clamp(scaleTo(cp.C2, *hslD[1]), 0, 1)
		}
		if hslD[2] != nil {
			cp.C3 = clamp(scaleTo(cp.C3, *hslD[2]), 0, 1)
		}
		result = cp.ToSpace(c.Space)
	}
	if alphaD != nil {
		cp := *result
		cp.Alpha = clamp(scaleTo(cp.Alpha, *alphaD), 0, 1)
		return &cp, nil
	}
	return result, nil
}

func biListZip(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	lists := append([][]value.Value{asItems(a["list"])}, func() [][]value.Value {
		var out [][]value.Value
		for _, v := range asItems(a["lists"]) {
			out = append(out, asItems(v))
		}
		return out
	}()...)
	n := len(lists[0])
	for _, l := range lists[1:] {
		if len(l) < n {
			n = len(l)
		}
	}
	items := make([]value.Value, n)
	for i := 0; i < n; i++ {
		row := make([]value.Value, len(lists))
		for j, l := range lists {
			row[j] = l[i]
		}
		items[i] = value.NewList(row, value.SepSpace, false)
	}
	return value.NewList(items, value.SepComma, false), nil
}

func biStringInsert(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "string.insert")
	if err != nil {
		return nil, err
	}
	ins, err := wantString(a["insert"], span, "string.insert")
	if err != nil {
		return nil, err
	}
	idxN, err := wantNumber(a["index"], span, "string.insert")
	if err != nil {
		return nil, err
	}
	runes := []rune(s.Text)
	idx := int(idxN.Val)
	var at int
	if idx >= 0 {
		at = idx - 1
		if at > len(runes) {
			at = len(runes)
		}
	} else {
		at = len(runes) + idx + 1
		if at < 0 {
			at = 0
		}
	}
	out := string(runes[:at]) + ins.Text + string(runes[at:])
	return &value.SassString{Quoted: s.Quoted, Text: out}, nil
}

// biGetFunction implements meta.get-function: it resolves name (optionally
// scoped to module) against user-defined functions first, then the builtin
// library, producing a FunctionRef that meta.call can invoke later.
func biGetFunction(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	name, err := wantString(a["name"], span, "get-function")
	if err != nil {
		return nil, err
	}
	var moduleName string
	if modArg, ok := a["module"].(*value.SassString); ok {
		moduleName = modArg.Text
	}

	if moduleName != "" {
		if builtinName, ok := e.env.Current.BuiltinUses[moduleName]; ok {
			if _, ok := builtinModules[builtinName][name.Text]; ok {
				return &value.FunctionRef{Name: name.Text, Callable: funcRefTarget{module: builtinName, name: name.Text}}, nil
			}
			return nil, newError(UndefinedFunction, span, "undefined function %s.%s", moduleName, name.Text)
		}
		mod := e.env.Namespace(moduleName)
		if mod == nil {
			return nil, newError(UndefinedFunction, span, "undefined namespace %q", moduleName)
		}
		if fn, ok := mod.LookupFunction(name.Text); ok {
			return &value.FunctionRef{Name: name.Text, Callable: funcRefTarget{decl: fn}}, nil
		}
		return nil, newError(UndefinedFunction, span, "undefined function %s.%s", moduleName, name.Text)
	}

	if fn, ok := e.env.GetFunction(name.Text); ok {
		return &value.FunctionRef{Name: name.Text, Callable: funcRefTarget{decl: fn}}, nil
	}
	if _, ok := builtinFunctions[name.Text]; ok {
		return &value.FunctionRef{Name: name.Text, Callable: funcRefTarget{name: name.Text}}, nil
	}
	return nil, newError(UndefinedFunction, span, "undefined function %s", name.Text)
}

// biCall implements meta.call($function, $args...): it forwards the rest
// argument list's positional and keyword arguments to the FunctionRef's
// target.
func biCall(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	ref, ok := a["function"].(*value.FunctionRef)
	if !ok {
		return nil, newError(TypeError, span, "call: %s is not a function reference", value.Inspect(a["function"]))
	}
	rest, _ := a["args"].(*value.ArgumentList)
	var positional []value.Value
	named := map[string]value.Value{}
	if rest != nil {
		positional = rest.Items
		if rest.Keywords != nil {
			for i, k := range rest.Keywords.Keys {
				if s, ok := k.(*value.SassString); ok {
					named[s.Text] = rest.Keywords.Values[i]
				}
			}
		}
	}
	return e.invokeFunctionRef(ref, positional, named, span)
}

// biContentExists implements meta.content-exists: true when the nearest
// enclosing mixin invocation was passed a content block (spec §4.4).
func biContentExists(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	if len(e.callStack) == 0 {
		return nil, newError(ContentOutsideMixin, span, "content-exists() may only be called within a mixin")
	}
	return value.FromBool(e.callStack[len(e.callStack)-1].content != nil), nil
}

// biKeywords implements meta.keywords($args): the keyword arguments a rest
// parameter collected, as a map from bare name (no "$") to value.
func biKeywords(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	rest, ok := a["args"].(*value.ArgumentList)
	if !ok {
		return nil, newError(TypeError, span, "keywords: %s is not an argument list", value.Inspect(a["args"]))
	}
	out := value.NewMap()
	if rest.Keywords != nil {
		for i, k := range rest.Keywords.Keys {
			out.Set(k, rest.Keywords.Values[i])
		}
	}
	return out, nil
}
