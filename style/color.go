package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/capsvg/svgattr"
)

// Color 是不透明的 sRGB 颜色。
type Color struct {
	R, G, B uint8
}

// Black is the fallback stroke colour for markers and circles.
var Black = Color{}

var namedColors = map[string]Color{
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"red":    {255, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 255},
	"gray":   {128, 128, 128},
	"grey":   {128, 128, 128},
	"yellow": {255, 255, 0},
	"orange": {255, 165, 0},
}

// ParseColor 解析 "#rgb"、"#rrggbb"、"rgb(r, g, b)"（分量可为百分比）以及少量颜色名。
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return Color{}, fmt.Errorf("style: empty colour")
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return Color{}, fmt.Errorf("style: colour %q: %w", s, err)
		}
		return fromColorful(c), nil
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(s)
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("style: unknown colour %q", s)
}

// MustParseColor is ParseColor for static tables.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseRGBFunc(s string) (Color, error) {
	fn, err := svgattr.ParseFunc(s)
	if err != nil {
		return Color{}, fmt.Errorf("style: colour %q: %w", s, err)
	}
	if fn.Name != "rgb" || len(fn.Args) != 3 {
		return Color{}, fmt.Errorf("style: colour %q: want rgb(r, g, b)", s)
	}
	var ch [3]uint8
	for i, a := range fn.Args {
		v := a.Value
		if a.Percent {
			v = v * 255 / 100
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful converts to a go-colorful colour.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns "#rrggbb".
func (c Color) Hex() string { return c.Colorful().Hex() }

func (c Color) String() string { return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B) }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// GenerateID 为一组颜色生成稳定的定义 id，例如 GenerateID("ArrowMark", black) == "ArrowMark_000000"。
func GenerateID(name string, colors ...Color) string {
	parts := make([]string, 0, len(colors)+1)
	parts = append(parts, name)
	for _, c := range colors {
		parts = append(parts, strings.ToUpper(strings.TrimPrefix(c.Hex(), "#")))
	}
	return strings.Join(parts, "_")
}

// Paint 是填充或描边值：一种颜色、两色线性渐变（自上而下）或 none。
type Paint struct {
	None   bool
	Colors []Color
}

// Solid returns a single-colour paint.
func Solid(c Color) *Paint { return &Paint{Colors: []Color{c}} }

// Gradient returns a top-to-bottom two-stop gradient.
func Gradient(from, to Color) *Paint { return &Paint{Colors: []Color{from, to}} }

// NoPaint returns the "none" paint.
func NoPaint() *Paint { return &Paint{None: true} }

// IsGradient reports whether the paint needs a gradient definition.
func (p *Paint) IsGradient() bool { return p != nil && !p.None && len(p.Colors) > 1 }

// Primary returns the first colour of the paint.
func (p *Paint) Primary() (Color, bool) {
	if p == nil || p.None || len(p.Colors) == 0 {
		return Color{}, false
	}
	return p.Colors[0], true
}

// GradientID is the id of the gradient definition the paint refers to.
func (p *Paint) GradientID() string { return GenerateID("CustomGradient", p.Colors...) }

// CSS renders the paint as a CSS value.
func (p *Paint) CSS() string {
	switch {
	case p == nil || p.None || len(p.Colors) == 0:
		return "none"
	case p.IsGradient():
		return "url(#" + p.GradientID() + ")"
	default:
		return p.Colors[0].String()
	}
}

func (p *Paint) setScalar(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		*p = Paint{None: true}
		return nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	*p = Paint{Colors: []Color{c}}
	return nil
}

func (p *Paint) setColors(colors []Color) error {
	if len(colors) == 0 || len(colors) > 2 {
		return fmt.Errorf("style: paint needs one colour or two gradient stops, got %d", len(colors))
	}
	*p = Paint{Colors: colors}
	return nil
}

// UnmarshalYAML accepts a colour scalar or a list of gradient stops.
func (p *Paint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return p.setScalar(node.Value)
	case yaml.SequenceNode:
		var colors []Color
		if err := node.Decode(&colors); err != nil {
			return err
		}
		return p.setColors(colors)
	}
	return fmt.Errorf("style: line %d: paint must be a colour or a list of colours", node.Line)
}

// UnmarshalJSON accepts a colour string or an array of gradient stops.
func (p *Paint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var colors []Color
		if err := json.Unmarshal(b, &colors); err != nil {
			return err
		}
		return p.setColors(colors)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("style: paint must be a colour string or an array: %w", err)
	}
	return p.setScalar(s)
}

func (p Paint) MarshalJSON() ([]byte, error) {
	if p.None || len(p.Colors) == 0 {
		return json.Marshal("none")
	}
	if len(p.Colors) == 1 {
		return json.Marshal(p.Colors[0])
	}
	return json.Marshal(p.Colors)
}
