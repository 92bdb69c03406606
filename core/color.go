package core

import "fmt"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Neon palette
var (
	RGBBlack       = RGB{0, 0, 0}
	RGBWhite       = RGB{255, 255, 255}
	RGBNeonCyan    = RGB{0, 255, 255}
	RGBNeonPink    = RGB{255, 20, 147}
	RGBNeonGreen   = RGB{57, 255, 20}
	RGBNeonYellow  = RGB{255, 255, 0}
	RGBNeonPurple  = RGB{191, 0, 255}
	RGBNeonOrange  = RGB{255, 165, 0}
	RGBShieldBlue  = RGB{150, 0, 255}
	RGBSpeedPink   = RGB{255, 0, 200}
	RGBDecoyPink   = RGB{255, 100, 255}
	RGBWildRed     = RGB{255, 50, 0}
	RGBScrambleLim = RGB{100, 255, 100}
)

// PlayerColors indexed by PlayerID
var PlayerColors = [PlayerCount]RGB{RGBNeonCyan, RGBNeonPink, RGBNeonGreen, RGBNeonYellow}

// PlayerColor returns the palette entry for id, white when out of range
func PlayerColor(id PlayerID) RGB {
	if !id.Valid() {
		return RGBWhite
	}
	return PlayerColors[id]
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText encodes the color as #rrggbb
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes #rrggbb
func (c *RGB) UnmarshalText(b []byte) error {
	var r, g, bl uint8
	if _, err := fmt.Sscanf(string(b), "#%02x%02x%02x", &r, &g, &bl); err != nil {
		return fmt.Errorf("invalid color %q: %w", b, err)
	}
	*c = RGB{r, g, bl}
	return nil
}
