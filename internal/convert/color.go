package convert

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrRGBRange is returned when a channel is not an integer in 0..255.
	ErrRGBRange = errors.New("RGB values must be integers between 0 and 255")

	// ErrHexFormat is returned for a malformed HEX code.
	ErrHexFormat = errors.New("invalid HEX code format")
)

var hexPattern = regexp.MustCompile(`^#?([0-9A-F]{3}){1,2}$`)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ParseRGB parses three decimal channel values.
func ParseRGB(r, g, b string) (RGB, error) {
	var ch [3]uint8
	for i, s := range []string{r, g, b} {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: %q", ErrRGBRange, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ParseHex parses "#RGB" or "#RRGGBB", with or without the "#".
func ParseHex(s string) (RGB, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !hexPattern.MatchString(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrHexFormat, s)
	}
	c, err := colorful.Hex("#" + strings.ToLower(strings.TrimPrefix(s, "#")))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrHexFormat, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns "#RRGGBB" in upper case.
func (c RGB) Hex() string {
	return strings.ToUpper(c.colorful().Hex())
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
}

// Luminance is the perceived brightness in 0..1.
func (c RGB) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// Contrast returns the text color readable on top of c.
func (c RGB) Contrast() RGB {
	if c.Luminance() > 0.5 {
		return RGB{}
	}
	return RGB{R: 255, G: 255, B: 255}
}

// IsHexColor reports whether s is a valid HEX color.
func IsHexColor(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}
