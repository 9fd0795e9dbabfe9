package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/pelletier/go-toml/v2"
)

var (
	ErrUnknownAccent = errors.New("unknown accent")
	ErrUnknownMode   = errors.New("unknown mode")
)

//go:embed palette.toml
var defaultPalette []byte

// Accent is one accent color row
type Accent struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

// Mode is one appearance mode row
type Mode struct {
	Background    string  `toml:"background"`
	Surface       string  `toml:"surface"`
	Text          string  `toml:"text"`
	TextSecondary string  `toml:"textSecondary"`
	Border        string  `toml:"border"`
	SurfaceAlpha  float64 `toml:"surfaceAlpha"`
	AccentAlpha   float64 `toml:"accentAlpha"`
	BorderAlpha   float64 `toml:"borderAlpha"`
	Blur          int     `toml:"blur"`
	Glass         bool    `toml:"glass"`
}

// Palette holds the fixed lookup tables
type Palette struct {
	Accents map[string]Accent `toml:"accents"`
	Modes   map[string]Mode   `toml:"modes"`
}

// Variables are the display variables pushed to the render layer
type Variables struct {
	Accent          string `json:"accent"`
	AccentSecondary string `json:"accentSecondary"`
	AccentSoft      string `json:"accentSoft"`
	Background      string `json:"background"`
	Surface         string `json:"surface"`
	Text            string `json:"text"`
	TextSecondary   string `json:"textSecondary"`
	Border          string `json:"border"`
	Blur            string `json:"blur"`
	Glass           bool   `json:"glass"`
}

// Engine resolves (accent, mode) pairs against a palette. It holds no state
// beyond the tables.
type Engine struct {
	palette Palette
}

// Default returns an engine over the built-in palette
func Default() *Engine {
	e, err := Parse(defaultPalette)
	if err != nil {
		panic(fmt.Sprintf("theme: built-in palette: %v", err))
	}
	return e
}

// Parse builds an engine from TOML palette data
func Parse(data []byte) (*Engine, error) {
	var p Palette
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	if len(p.Accents) == 0 || len(p.Modes) == 0 {
		return nil, errors.New("palette needs at least one accent and one mode")
	}
	for name, a := range p.Accents {
		if _, _, _, err := parseHex(a.Primary); err != nil {
			return nil, fmt.Errorf("accent %s: %w", name, err)
		}
	}
	for name, m := range p.Modes {
		for _, c := range []string{m.Surface, m.Border} {
			if _, _, _, err := parseHex(c); err != nil {
				return nil, fmt.Errorf("mode %s: %w", name, err)
			}
		}
	}
	return &Engine{palette: p}, nil
}

// Resolve computes display variables for the pair
func (e *Engine) Resolve(accent types.Accent, mode types.Mode) (Variables, error) {
	a, ok := e.palette.Accents[string(accent)]
	if !ok {
		return Variables{}, fmt.Errorf("%w: %q", ErrUnknownAccent, accent)
	}
	m, ok := e.palette.Modes[string(mode)]
	if !ok {
		return Variables{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	v := Variables{
		Accent:          a.Primary,
		AccentSecondary: a.Secondary,
		AccentSoft:      rgba(a.Primary, m.AccentAlpha),
		Background:      m.Background,
		Surface:         m.Surface,
		Text:            m.Text,
		TextSecondary:   m.TextSecondary,
		Border:          m.Border,
		Blur:            strconv.Itoa(m.Blur) + "px",
		Glass:           m.Glass,
	}

	// Glass surfaces are translucent and borders pick up the accent tint
	if m.Glass {
		v.Surface = rgba(m.Surface, m.SurfaceAlpha)
		v.Border = rgba(m.Border, m.BorderAlpha)
		v.Background = mix(m.Background, a.Primary, 0.15)
	} else if m.SurfaceAlpha < 1 {
		v.Surface = rgba(m.Surface, m.SurfaceAlpha)
	}
	return v, nil
}

// Accents lists known accent names, sorted
func (e *Engine) Accents() []string {
	return sortedKeys(e.palette.Accents)
}

// Modes lists known mode names, sorted
func (e *Engine) Modes() []string {
	return sortedKeys(e.palette.Modes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseHex(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), nil
}

func rgba(hex string, alpha float64) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// mix blends base toward tint by weight and returns a hex color
func mix(base, tint string, weight float64) string {
	r1, g1, b1, err := parseHex(base)
	if err != nil {
		return base
	}
	r2, g2, b2, err := parseHex(tint)
	if err != nil {
		return base
	}
	blend := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-weight) + float64(y)*weight + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(r1, r2), blend(g1, g2), blend(b1, b2))
}
