package eval

import (
	"math"
	"strings"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/value"
)

// builtinParam is one parameter of a builtin function's argument list; Def
// is the Go-level default (nil means required) rather than a Sass
// expression, since builtins are implemented in Go and never need to
// re-evaluate a default against the caller's environment.
type builtinParam struct {
	name string
	def  value.Value // nil if required
}

func param(name string) builtinParam                       { return builtinParam{name: name} }
func paramDefault(name string, def value.Value) builtinParam { return builtinParam{name: name, def: def} }

// builtinFunc is one entry of the global builtin library (spec §4.4's
// "builtin library: math/color/list/map/meta/string modules"). rest, if
// non-empty, is the name under which any extra positional/named arguments
// are collected as an argument list.
type builtinFunc struct {
	params []builtinParam
	rest   string
	fn     func(e *Evaluator, args map[string]value.Value, span logger.Range) (value.Value, error)
}

// callBuiltin evaluates an invocation's arguments and matches them against
// a builtin's parameter list the same way bind does for user-defined
// functions, without needing a sassast.Signature (builtin defaults are Go
// values, not expressions to re-evaluate).
func (e *Evaluator) callBuiltin(b builtinFunc, args sassast.ArgInvocation, span logger.Range, name string) (value.Value, error) {
	positional := make([]value.Value, 0, len(args.Positional))
	for _, p := range args.Positional {
		v, err := e.evalExpr(p)
		if err != nil {
			return nil, err
		}
		positional = append(positional, v)
	}
	named := map[string]value.Value{}
	for _, n := range args.Named {
		v, err := e.evalExpr(n.Value)
		if err != nil {
			return nil, err
		}
		named[n.Name] = v
	}
	if args.Rest != nil {
		restVal, err := e.evalExpr(args.Rest)
		if err != nil {
			return nil, err
		}
		switch rv := restVal.(type) {
		case *value.ArgumentList:
			positional = append(positional, rv.Items...)
			if rv.Keywords != nil {
				for i, k := range rv.Keywords.Keys {
					if s, ok := k.(*value.SassString); ok {
						named[s.Text] = rv.Keywords.Values[i]
					}
				}
			}
		case *value.List:
			positional = append(positional, rv.Items...)
		default:
			positional = append(positional, restVal)
		}
	}

	bound, err := bindBuiltinValues(b, positional, named, span, name)
	if err != nil {
		return nil, err
	}
	return b.fn(e, bound, span)
}

// bindBuiltinValues matches already-evaluated positional/named arguments
// against b's parameter list; it is callBuiltin's shared core, reused by
// meta.call so forwarding a FunctionRef's arguments doesn't need a synthetic
// ArgInvocation.
func bindBuiltinValues(b builtinFunc, positional []value.Value, named map[string]value.Value, span logger.Range, name string) (map[string]value.Value, error) {
	named = cloneValueMap(named)
	bound := map[string]value.Value{}
	idx := 0
	for ; idx < len(b.params) && idx < len(positional); idx++ {
		bound[b.params[idx].name] = positional[idx]
	}
	for ; idx < len(b.params); idx++ {
		p := b.params[idx]
		if v, ok := named[p.name]; ok {
			bound[p.name] = v
			delete(named, p.name)
			continue
		}
		if p.def != nil {
			bound[p.name] = p.def
			continue
		}
		return nil, newError(MissingArgument, span, "missing required argument $%s in call to %s", p.name, name)
	}

	var restItems []value.Value
	if idx < len(positional) {
		restItems = append(restItems, positional[idx:]...)
	}
	if b.rest != "" {
		kwMap := value.NewMap()
		for n, v := range named {
			kwMap.Set(value.Quoted(n), v)
		}
		bound[b.rest] = value.NewArgumentList(restItems, value.SepComma, kwMap)
	} else if len(restItems) > 0 {
		return nil, newError(InvalidArgument, span, "%s was passed too many positional arguments", name)
	} else if len(named) > 0 {
		return nil, newError(InvalidArgument, span, "%s has no argument matching the names passed", name)
	}

	return bound, nil
}

func cloneValueMap(m map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func wantNumber(v value.Value, span logger.Range, fn string) (*value.Number, error) {
	n, ok := v.(*value.Number)
	if !ok {
		return nil, newError(TypeError, span, "%s: %s is not a number", fn, value.Inspect(v))
	}
	return n, nil
}

func wantString(v value.Value, span logger.Range, fn string) (*value.SassString, error) {
	s, ok := v.(*value.SassString)
	if !ok {
		return nil, newError(TypeError, span, "%s: %s is not a string", fn, value.Inspect(v))
	}
	return s, nil
}

func wantColor(v value.Value, span logger.Range, fn string) (*value.Color, error) {
	c, ok := v.(*value.Color)
	if !ok {
		return nil, newError(TypeError, span, "%s: %s is not a color", fn, value.Inspect(v))
	}
	return c, nil
}

func wantMap(v value.Value, span logger.Range, fn string) (*value.Map, error) {
	m, ok := value.AsMap(v)
	if !ok {
		return nil, newError(TypeError, span, "%s: %s is not a map", fn, value.Inspect(v))
	}
	return m, nil
}

// builtinFunctions is the global namespace's worth of built-in functions
// (spec §4.4's builtin library); it mirrors the subset of Sass's
// math/string/list/map/meta/color modules most commonly reached without a
// module namespace prefix.
var builtinFunctions = map[string]builtinFunc{
	"abs":        {params: []builtinParam{param("number")}, fn: biAbs},
	"ceil":       {params: []builtinParam{param("number")}, fn: biCeil},
	"floor":      {params: []builtinParam{param("number")}, fn: biFloor},
	"round":      {params: []builtinParam{param("number")}, fn: biRound},
	"max":        {params: []builtinParam{param("number")}, rest: "numbers", fn: biMax},
	"min":        {params: []builtinParam{param("number")}, rest: "numbers", fn: biMin},
	"percentage": {params: []builtinParam{param("number")}, fn: biPercentage},
	"sqrt":       {params: []builtinParam{param("number")}, fn: biSqrt},

	"quote":        {params: []builtinParam{param("string")}, fn: biQuote},
	"unquote":      {params: []builtinParam{param("string")}, fn: biUnquote},
	"to-upper-case": {params: []builtinParam{param("string")}, fn: biToUpper},
	"to-lower-case": {params: []builtinParam{param("string")}, fn: biToLower},
	"str-length":   {params: []builtinParam{param("string")}, fn: biStrLength},
	"str-slice":    {params: []builtinParam{param("string"), param("start-at"), paramDefault("end-at", value.Unitless(-1))}, fn: biStrSlice},
	"str-index":    {params: []builtinParam{param("string"), param("substring")}, fn: biStrIndex},

	"length":          {params: []builtinParam{param("list")}, fn: biLength},
	"nth":              {params: []builtinParam{param("list"), param("n")}, fn: biNth},
	"set-nth":          {params: []builtinParam{param("list"), param("n"), param("value")}, fn: biSetNth},
	"list-separator":   {params: []builtinParam{param("list")}, fn: biListSeparator},
	"is-bracketed":     {params: []builtinParam{param("list")}, fn: biIsBracketed},
	"append":           {params: []builtinParam{param("list"), param("val"), paramDefault("separator", value.Quoted("auto"))}, fn: biAppend},
	"join":             {params: []builtinParam{param("list1"), param("list2"), paramDefault("separator", value.Quoted("auto")), paramDefault("bracketed", value.FromBool(false))}, fn: biJoin},
	"index":            {params: []builtinParam{param("list"), param("value")}, fn: biIndex},

	"map-get":      {params: []builtinParam{param("map"), param("key")}, fn: biMapGet},
	"map-merge":    {params: []builtinParam{param("map1"), param("map2")}, fn: biMapMerge},
	"map-keys":     {params: []builtinParam{param("map")}, fn: biMapKeys},
	"map-values":   {params: []builtinParam{param("map")}, fn: biMapValues},
	"map-has-key":  {params: []builtinParam{param("map"), param("key")}, fn: biMapHasKey},
	"map-remove":   {params: []builtinParam{param("map")}, rest: "keys", fn: biMapRemove},

	"type-of":                {params: []builtinParam{param("value")}, fn: biTypeOf},
	"inspect":                {params: []builtinParam{param("value")}, fn: biInspect},
	"unit":                   {params: []builtinParam{param("number")}, fn: biUnit},
	"unitless":               {params: []builtinParam{param("number")}, fn: biUnitless},
	"comparable":             {params: []builtinParam{param("number1"), param("number2")}, fn: biComparable},
	"variable-exists":        {params: []builtinParam{param("name")}, fn: biVariableExists},
	"global-variable-exists": {params: []builtinParam{param("name")}, fn: biGlobalVariableExists},
	"function-exists":        {params: []builtinParam{param("name")}, fn: biFunctionExists},
	"mixin-exists":           {params: []builtinParam{param("name")}, fn: biMixinExists},

	"rgb":      {params: []builtinParam{param("red"), param("green"), param("blue"), paramDefault("alpha", value.Unitless(1))}, fn: biRGB},
	"rgba":     {params: []builtinParam{param("red"), param("green"), param("blue"), paramDefault("alpha", value.Unitless(1))}, fn: biRGB},
	"red":      {params: []builtinParam{param("color")}, fn: biRed},
	"green":    {params: []builtinParam{param("color")}, fn: biGreen},
	"blue":     {params: []builtinParam{param("color")}, fn: biBlue},
	"alpha":    {params: []builtinParam{param("color")}, fn: biAlpha},
	"opacify":  {params: []builtinParam{param("color"), param("amount")}, fn: biOpacify},
	"fade-in":  {params: []builtinParam{param("color"), param("amount")}, fn: biOpacify},
	"transparentize": {params: []builtinParam{param("color"), param("amount")}, fn: biTransparentize},
	"fade-out": {params: []builtinParam{param("color"), param("amount")}, fn: biTransparentize},
	"mix":      {params: []builtinParam{param("color1"), param("color2"), paramDefault("weight", value.WithUnit(50, "%"))}, fn: biMix},
	"invert":   {params: []builtinParam{param("color"), paramDefault("weight", value.WithUnit(100, "%"))}, fn: biInvert},
	"grayscale": {params: []builtinParam{param("color")}, fn: biGrayscale},
}

func biAbs(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "abs")
	if err != nil {
		return nil, err
	}
	return value.WithUnit(math.Abs(n.Val), n.Unit()), nil
}

func biCeil(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "ceil")
	if err != nil {
		return nil, err
	}
	return value.WithUnit(math.Ceil(n.Val), n.Unit()), nil
}

func biFloor(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "floor")
	if err != nil {
		return nil, err
	}
	return value.WithUnit(math.Floor(n.Val), n.Unit()), nil
}

func biRound(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "round")
	if err != nil {
		return nil, err
	}
	return value.WithUnit(math.Round(n.Val), n.Unit()), nil
}

func biMax(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return minMax(e, a, span, "max", false)
}

func biMin(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return minMax(e, a, span, "min", true)
}

func minMax(e *Evaluator, a map[string]value.Value, span logger.Range, fn string, wantMin bool) (value.Value, error) {
	best, err := wantNumber(a["number"], span, fn)
	if err != nil {
		return nil, err
	}
	rest := a["numbers"].(*value.ArgumentList)
	for _, item := range rest.Items {
		n, err := wantNumber(item, span, fn)
		if err != nil {
			return nil, err
		}
		cmp, opErr := value.CompareNumbers(n, best)
		if opErr != nil {
			return nil, newError(IncompatibleUnits, span, "%s", opErr.Message)
		}
		if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
			best = n
		}
	}
	return best, nil
}

func biPercentage(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "percentage")
	if err != nil {
		return nil, err
	}
	if !n.IsUnitless() {
		return nil, newError(TypeError, span, "percentage() requires a unitless number")
	}
	return value.WithUnit(n.Val*100, "%"), nil
}

func biSqrt(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "sqrt")
	if err != nil {
		return nil, err
	}
	return value.Unitless(math.Sqrt(n.Val)), nil
}

func biQuote(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "quote")
	if err != nil {
		return nil, err
	}
	return value.Quoted(s.Text), nil
}

func biUnquote(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "unquote")
	if err != nil {
		return nil, err
	}
	return value.Unquoted(s.Text), nil
}

func biToUpper(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "to-upper-case")
	if err != nil {
		return nil, err
	}
	return &value.SassString{Quoted: s.Quoted, Text: strings.ToUpper(s.Text)}, nil
}

func biToLower(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "to-lower-case")
	if err != nil {
		return nil, err
	}
	return &value.SassString{Quoted: s.Quoted, Text: strings.ToLower(s.Text)}, nil
}

func biStrLength(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "str-length")
	if err != nil {
		return nil, err
	}
	return value.Unitless(float64(s.Len())), nil
}

func biStrSlice(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "str-slice")
	if err != nil {
		return nil, err
	}
	runes := []rune(s.Text)
	start, err := wantNumber(a["start-at"], span, "str-slice")
	if err != nil {
		return nil, err
	}
	end, err := wantNumber(a["end-at"], span, "str-slice")
	if err != nil {
		return nil, err
	}
	lo := sassIndexToGo(int(start.Val), len(runes))
	hi := int(end.Val)
	if hi < 0 {
		hi = len(runes) + hi + 1
	}
	if hi > len(runes) {
		hi = len(runes)
	}
	if lo >= hi || lo >= len(runes) {
		return &value.SassString{Quoted: s.Quoted, Text: ""}, nil
	}
	return &value.SassString{Quoted: s.Quoted, Text: string(runes[lo:hi])}, nil
}

func sassIndexToGo(n, length int) int {
	if n > 0 {
		return n - 1
	}
	if n < 0 {
		idx := length + n
		if idx < 0 {
			return 0
		}
		return idx
	}
	return 0
}

func biStrIndex(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["string"], span, "str-index")
	if err != nil {
		return nil, err
	}
	sub, err := wantString(a["substring"], span, "str-index")
	if err != nil {
		return nil, err
	}
	idx := strings.Index(s.Text, sub.Text)
	if idx < 0 {
		return value.Null, nil
	}
	return value.Unitless(float64(len([]rune(s.Text[:idx])) + 1)), nil
}

func biLength(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return value.Unitless(float64(len(asItems(a["list"])))), nil
}

func asItems(v value.Value) []value.Value {
	switch vv := v.(type) {
	case *value.List:
		return vv.Items
	case *value.ArgumentList:
		return vv.Items
	case *value.Map:
		items := make([]value.Value, vv.Len())
		for i := range vv.Keys {
			items[i] = value.NewList([]value.Value{vv.Keys[i], vv.Values[i]}, value.SepSpace, false)
		}
		return items
	default:
		return []value.Value{v}
	}
}

func biNth(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	items := asItems(a["list"])
	n, err := wantNumber(a["n"], span, "nth")
	if err != nil {
		return nil, err
	}
	idx := sassIndexToGo(int(n.Val), len(items))
	if idx < 0 || idx >= len(items) {
		return nil, newError(InvalidArgument, span, "nth: index %v out of bounds for list of length %d", n.Val, len(items))
	}
	return items[idx], nil
}

func biSetNth(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	items := append([]value.Value{}, asItems(a["list"])...)
	n, err := wantNumber(a["n"], span, "set-nth")
	if err != nil {
		return nil, err
	}
	idx := sassIndexToGo(int(n.Val), len(items))
	if idx < 0 || idx >= len(items) {
		return nil, newError(InvalidArgument, span, "set-nth: index %v out of bounds for list of length %d", n.Val, len(items))
	}
	items[idx] = a["value"]
	sep := value.SepSpace
	if l, ok := a["list"].(*value.List); ok {
		sep = l.Separator
	}
	return value.NewList(items, sep, false), nil
}

func biListSeparator(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l := value.AsList(a["list"])
	return value.Quoted(l.SeparatorString()), nil
}

func biIsBracketed(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l, ok := a["list"].(*value.List)
	return value.FromBool(ok && l.Brackets), nil
}

func biAppend(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l := value.AsList(a["list"])
	sep := resolveSeparator(a["separator"], l.Separator)
	items := append(append([]value.Value{}, l.Items...), a["val"])
	return value.NewList(items, sep, l.Brackets), nil
}

func biJoin(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	l1 := value.AsList(a["list1"])
	l2 := value.AsList(a["list2"])
	sep := l1.Separator
	if sep == value.SepUndecided {
		sep = l2.Separator
	}
	sep = resolveSeparator(a["separator"], sep)
	bracketed := l1.Brackets
	if b, ok := a["bracketed"].(value.Boolean); ok {
		bracketed = bool(b)
	}
	items := append(append([]value.Value{}, l1.Items...), l2.Items...)
	return value.NewList(items, sep, bracketed), nil
}

func resolveSeparator(v value.Value, fallback value.Separator) value.Separator {
	s, ok := v.(*value.SassString)
	if !ok {
		return fallback
	}
	switch s.Text {
	case "comma":
		return value.SepComma
	case "space":
		return value.SepSpace
	case "slash":
		return value.SepSlash
	default:
		return fallback
	}
}

func biIndex(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	items := asItems(a["list"])
	for i, item := range items {
		if value.Equals(item, a["value"]) {
			return value.Unitless(float64(i + 1)), nil
		}
	}
	return value.Null, nil
}

func biMapGet(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	m, err := wantMap(a["map"], span, "map-get")
	if err != nil {
		return nil, err
	}
	if v, ok := m.Get(a["key"]); ok {
		return v, nil
	}
	return value.Null, nil
}

func biMapMerge(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	m1, err := wantMap(a["map1"], span, "map-merge")
	if err != nil {
		return nil, err
	}
	m2, err := wantMap(a["map2"], span, "map-merge")
	if err != nil {
		return nil, err
	}
	out := m1.Clone()
	for i := range m2.Keys {
		out.Set(m2.Keys[i], m2.Values[i])
	}
	return out, nil
}

func biMapKeys(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	m, err := wantMap(a["map"], span, "map-keys")
	if err != nil {
		return nil, err
	}
	return value.NewList(append([]value.Value{}, m.Keys...), value.SepComma, false), nil
}

func biMapValues(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	m, err := wantMap(a["map"], span, "map-values")
	if err != nil {
		return nil, err
	}
	return value.NewList(append([]value.Value{}, m.Values...), value.SepComma, false), nil
}

func biMapHasKey(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	m, err := wantMap(a["map"], span, "map-has-key")
	if err != nil {
		return nil, err
	}
	_, ok := m.Get(a["key"])
	return value.FromBool(ok), nil
}

func biMapRemove(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	m, err := wantMap(a["map"], span, "map-remove")
	if err != nil {
		return nil, err
	}
	out := m.Clone()
	for _, k := range asItems(a["keys"]) {
		out.Remove(k)
	}
	return out, nil
}

func biTypeOf(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return value.Quoted(a["value"].TypeName()), nil
}

func biInspect(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return value.Unquoted(value.Inspect(a["value"])), nil
}

func biUnit(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "unit")
	if err != nil {
		return nil, err
	}
	return value.Quoted(n.Unit()), nil
}

func biUnitless(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n, err := wantNumber(a["number"], span, "unitless")
	if err != nil {
		return nil, err
	}
	return value.FromBool(n.IsUnitless()), nil
}

func biComparable(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	n1, err := wantNumber(a["number1"], span, "comparable")
	if err != nil {
		return nil, err
	}
	n2, err := wantNumber(a["number2"], span, "comparable")
	if err != nil {
		return nil, err
	}
	_, opErr := value.CompareNumbers(n1, n2)
	return value.FromBool(opErr == nil), nil
}

func biVariableExists(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["name"], span, "variable-exists")
	if err != nil {
		return nil, err
	}
	_, ok := e.env.GetVariable(s.Text)
	return value.FromBool(ok), nil
}

func biGlobalVariableExists(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["name"], span, "global-variable-exists")
	if err != nil {
		return nil, err
	}
	_, ok := e.env.Current.LookupVariable(s.Text)
	return value.FromBool(ok), nil
}

func biFunctionExists(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["name"], span, "function-exists")
	if err != nil {
		return nil, err
	}
	if _, ok := builtinFunctions[s.Text]; ok {
		return value.FromBool(true), nil
	}
	_, ok := e.env.GetFunction(s.Text)
	return value.FromBool(ok), nil
}

func biMixinExists(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	s, err := wantString(a["name"], span, "mixin-exists")
	if err != nil {
		return nil, err
	}
	_, ok := e.env.GetMixin(s.Text)
	return value.FromBool(ok), nil
}

func biRGB(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	r, err := wantNumber(a["red"], span, "rgb")
	if err != nil {
		return nil, err
	}
	g, err := wantNumber(a["green"], span, "rgb")
	if err != nil {
		return nil, err
	}
	b, err := wantNumber(a["blue"], span, "rgb")
	if err != nil {
		return nil, err
	}
	alpha, err := wantNumber(a["alpha"], span, "rgb")
	if err != nil {
		return nil, err
	}
	av := alpha.Val
	if alpha.HasUnit("%") {
		av /= 100
	}
	return value.RGB(clamp(r.Val, 0, 255), clamp(g.Val, 0, 255), clamp(b.Val, 0, 255), clamp(av, 0, 1)), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func biRed(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "red")
	if err != nil {
		return nil, err
	}
	rgb := c.ToSpace(value.SpaceSRGB)
	return value.Unitless(math.Round(rgb.C1 * 255)), nil
}

func biGreen(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "green")
	if err != nil {
		return nil, err
	}
	rgb := c.ToSpace(value.SpaceSRGB)
	return value.Unitless(math.Round(rgb.C2 * 255)), nil
}

func biBlue(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "blue")
	if err != nil {
		return nil, err
	}
	rgb := c.ToSpace(value.SpaceSRGB)
	return value.Unitless(math.Round(rgb.C3 * 255)), nil
}

func biAlpha(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "alpha")
	if err != nil {
		return nil, err
	}
	return value.Unitless(c.Alpha), nil
}

func biOpacify(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return adjustAlpha(a, span, "opacify", 1)
}

func biTransparentize(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	return adjustAlpha(a, span, "transparentize", -1)
}

func adjustAlpha(a map[string]value.Value, span logger.Range, fn string, sign float64) (value.Value, error) {
	c, err := wantColor(a["color"], span, fn)
	if err != nil {
		return nil, err
	}
	amt, err := wantNumber(a["amount"], span, fn)
	if err != nil {
		return nil, err
	}
	delta := amt.Val
	if amt.HasUnit("%") {
		delta /= 100
	}
	cp := *c
	cp.Alpha = clamp(c.Alpha+sign*delta, 0, 1)
	return &cp, nil
}

func biMix(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c1, err := wantColor(a["color1"], span, "mix")
	if err != nil {
		return nil, err
	}
	c2, err := wantColor(a["color2"], span, "mix")
	if err != nil {
		return nil, err
	}
	w, err := wantNumber(a["weight"], span, "mix")
	if err != nil {
		return nil, err
	}
	weight := w.Val
	if w.HasUnit("%") {
		weight /= 100
	}
	s1 := c1.ToSpace(value.SpaceSRGB)
	s2 := c2.ToSpace(value.SpaceSRGB)
	alphaDist := s1.Alpha - s2.Alpha
	w1 := weight*2 - 1
	var combined float64
	if w1*alphaDist == -1 {
		combined = w1
	} else {
		combined = (w1 + alphaDist) / (1 + w1*alphaDist)
	}
	w1Final := (combined + 1) / 2
	w2Final := 1 - w1Final
	r := s1.C1*w1Final + s2.C1*w2Final
	g := s1.C2*w1Final + s2.C2*w2Final
	b := s1.C3*w1Final + s2.C3*w2Final
	alpha := s1.Alpha*weight + s2.Alpha*(1-weight)
	return value.RGB(r*255, g*255, b*255, alpha), nil
}

func biInvert(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "invert")
	if err != nil {
		return nil, err
	}
	w, err := wantNumber(a["weight"], span, "invert")
	if err != nil {
		return nil, err
	}
	weight := w.Val
	if w.HasUnit("%") {
		weight /= 100
	}
	rgb := c.ToSpace(value.SpaceSRGB)
	inverted := value.RGB((1-rgb.C1)*255, (1-rgb.C2)*255, (1-rgb.C3)*255, rgb.Alpha)
	return biMix(e, map[string]value.Value{"color1": inverted, "color2": c, "weight": value.WithUnit(weight*100, "%")}, span)
}

func biGrayscale(e *Evaluator, a map[string]value.Value, span logger.Range) (value.Value, error) {
	c, err := wantColor(a["color"], span, "grayscale")
	if err != nil {
		return nil, err
	}
	rgb := c.ToSpace(value.SpaceSRGB)
	gray := (rgb.C1 + rgb.C2 + rgb.C3) / 3
	return value.RGB(gray*255, gray*255, gray*255, rgb.Alpha), nil
}
