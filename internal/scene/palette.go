package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// palette caches HSL to hex conversions. Lightness is quantized so a
// falling, tumbling block does not grow the cache without bound.
type palette struct {
	cache map[[3]int]string
}

func newPalette() *palette {
	return &palette{cache: make(map[[3]int]string)}
}

const lightnessSteps = 64

// hex returns the "#rrggbb" form of an HSL color. Hue wraps at 360.
func (p *palette) hex(hue, saturation, lightness float64) string {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	key := [3]int{
		int(math.Round(h)),
		int(math.Round(saturation * 100)),
		int(math.Round(lightness * lightnessSteps)),
	}
	if s, ok := p.cache[key]; ok {
		return s
	}
	c := colorful.Hsl(float64(key[0]), float64(key[1])/100, float64(key[2])/lightnessSteps).Clamped()
	s := c.Hex()
	p.cache[key] = s
	return s
}
