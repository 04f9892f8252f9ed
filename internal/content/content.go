// Package content loads gallery entries from a YAML manifest.
//
// A manifest lists items:
//
//	items:
//	  - id: p1
//	    title: Harbour
//	    description: Fishing boats at dawn.
//	    image: images/harbour.webp
//	    color: "#336699"
//
// Image paths are relative to the manifest's directory.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phanxgames/pangrid"
	"github.com/spf13/viper"
)

// ErrNoItems is returned for a manifest without items.
var ErrNoItems = errors.New("content: manifest has no items")

type entry struct {
	ID          string `mapstructure:"id"`
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Image       string `mapstructure:"image"`
	Color       string `mapstructure:"color"`
}

// Manifest is a loaded content file.
type Manifest struct {
	// Dir is the directory image paths are relative to.
	Dir   string
	Items []pangrid.Content
}

// Load reads the manifest at path. The format follows the file extension
// (YAML, JSON, or TOML).
func Load(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	var raw []entry
	if err := v.UnmarshalKey("items", &raw); err != nil {
		return nil, fmt.Errorf("content: decode %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoItems
	}

	m := &Manifest{Dir: filepath.Dir(path), Items: make([]pangrid.Content, 0, len(raw))}
	for i, e := range raw {
		c, err := e.content(i)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", path, err)
		}
		m.Items = append(m.Items, c)
	}
	return m, nil
}

func (e entry) content(i int) (pangrid.Content, error) {
	c := pangrid.Content{
		ID:          strings.TrimSpace(e.ID),
		Title:       e.Title,
		Description: strings.TrimSpace(e.Description),
		Color:       placeholderColor(i),
	}
	if c.ID == "" {
		return c, fmt.Errorf("item %d: missing id", i)
	}
	if e.Color != "" {
		col, err := ParseColor(e.Color)
		if err != nil {
			return c, fmt.Errorf("item %q: %w", c.ID, err)
		}
		c.Color = col
	}
	if e.Image != "" {
		p := filepath.ToSlash(filepath.Clean(e.Image))
		if !fs.ValidPath(p) {
			return c, fmt.Errorf("item %q: image %q must be a relative path inside the manifest directory", c.ID, e.Image)
		}
		c.ImagePath = p
	}
	return c, nil
}

// FS returns the file system image paths resolve against.
func (m *Manifest) FS() fs.FS {
	return os.DirFS(m.Dir)
}

// ImagePaths returns every image path referenced by the manifest.
func (m *Manifest) ImagePaths() []string {
	var paths []string
	for _, c := range m.Items {
		if c.ImagePath != "" {
			paths = append(paths, c.ImagePath)
		}
	}
	return paths
}

// ParseColor parses "#rgb", "#rrggbb", or "#rrggbbaa".
func ParseColor(s string) (pangrid.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return pangrid.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pangrid.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return pangrid.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Placeholder returns n generated entries with solid colors and short
// descriptions, for running without a manifest.
func Placeholder(n int) []pangrid.Content {
	items := make([]pangrid.Content, n)
	for i := range items {
		id := fmt.Sprintf("p%d", i+1)
		items[i] = pangrid.Content{
			ID:    id,
			Title: fmt.Sprintf("Plate %d", i+1),
			Description: fmt.Sprintf("Placeholder plate %d of %d.\n"+
				"Drag the grid or use the wheel to pan. Click another plate to switch, "+
				"or click the background to close this panel.", i+1, n),
			Color: placeholderColor(i),
		}
	}
	return items
}

// placeholderColor walks the hue circle by the golden angle.
func placeholderColor(i int) pangrid.Color {
	h := math.Mod(float64(i)*137.508, 360)
	return hsv(h, 0.45, 0.85)
}

func hsv(h, s, v float64) pangrid.Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return pangrid.Color{R: r + m, G: g + m, B: b + m, A: 1}
}
