package opentype

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// namedColors are the color names AllocColor resolves without a hex
// form. Values follow the X11 core set.
var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xFF},
	"white":   {0xFF, 0xFF, 0xFF, 0xFF},
	"red":     {0xFF, 0x00, 0x00, 0xFF},
	"green":   {0x00, 0xFF, 0x00, 0xFF},
	"blue":    {0x00, 0x00, 0xFF, 0xFF},
	"yellow":  {0xFF, 0xFF, 0x00, 0xFF},
	"cyan":    {0x00, 0xFF, 0xFF, 0xFF},
	"magenta": {0xFF, 0x00, 0xFF, 0xFF},
	"gray":    {0x80, 0x80, 0x80, 0xFF},
	"grey":    {0x80, 0x80, 0x80, 0xFF},
}

// parseColor resolves "#rrggbb", "#rgb" or a well-known name.
func parseColor(name string) (color.Color, error) {
	if c, ok := namedColors[strings.ToLower(name)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return nil, fmt.Errorf("opentype: unknown color %q", name)
	}
	hex := name[1:]
	switch len(hex) {
	case 3:
		var parts [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("opentype: bad color %q", name)
			}
			parts[i] = uint8(v * 17)
		}
		return color.RGBA{parts[0], parts[1], parts[2], 0xFF}, nil
	case 6:
		var parts [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("opentype: bad color %q", name)
			}
			parts[i] = uint8(v)
		}
		return color.RGBA{parts[0], parts[1], parts[2], 0xFF}, nil
	default:
		return nil, fmt.Errorf("opentype: bad color %q", name)
	}
}
