// Package svgattr parses the small attribute languages found in diagram styles:
// SVG transform lists (with the optional trailing tspan y used by rotated labels)
// and CSS functional notation such as rgb(239, 41, 41).
package svgattr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	attrLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[(),%]`},
	})

	transformParser = participle.MustBuild[Transform](
		participle.Lexer(attrLexer),
		participle.Elide("Whitespace"),
	)
	funcParser = participle.MustBuild[Func](
		participle.Lexer(attrLexer),
		participle.Elide("Whitespace"),
	)
)

// Transform is a list of transform functions, optionally followed by the
// y coordinate of the tspan that a rotated label is drawn at.
type Transform struct {
	Funcs  []*Func  `parser:"@@*"`
	TspanY *float64 `parser:"@Number?"`
}

// Func is a single functional-notation call, e.g. rotate(-90, 10, 20).
type Func struct {
	Name string `parser:"@Ident '('"`
	Args []*Arg `parser:"( @@ ( ','? @@ )* )? ')'"`
}

// Arg is a numeric argument, optionally given as a percentage.
type Arg struct {
	Value   float64 `parser:"@Number"`
	Percent bool    `parser:"@'%'?"`
}

// ParseTransform parses an SVG transform attribute.
func ParseTransform(s string) (*Transform, error) {
	tr, err := transformParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("svgattr: transform: %w", err)
	}
	return tr, nil
}

// ParseFunc parses a single CSS functional value such as rgb(1, 2, 3).
func ParseFunc(s string) (*Func, error) {
	fn, err := funcParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("svgattr: function: %w", err)
	}
	return fn, nil
}

// Rotation returns the first rotate() of the list.
func (t *Transform) Rotation() (Func, bool) {
	for _, fn := range t.Funcs {
		if fn.Name == "rotate" {
			return *fn, true
		}
	}
	return Func{}, false
}

// String renders the transform functions without the trailing tspan y.
func (t *Transform) String() string {
	parts := make([]string, 0, len(t.Funcs))
	for _, fn := range t.Funcs {
		parts = append(parts, fn.String())
	}
	return strings.Join(parts, " ")
}

// Floats returns the argument values in order.
func (f Func) Floats() []float64 {
	out := make([]float64, len(f.Args))
	for i, a := range f.Args {
		out[i] = a.Value
	}
	return out
}

func (f Func) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = FormatNumber(a.Value)
		if a.Percent {
			args[i] += "%"
		}
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

// FormatNumber prints v rounded to six decimals without trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
