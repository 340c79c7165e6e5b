package obj

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/prefabs"
)

const (
	tileSolid = '#'
	tileSpawn = 'S'

	defaultTileSize       = 16
	defaultPixelsPerMeter = 16.0
)

// Level is a side-view tile grid. Pixel space has its origin at the top-left
// corner with y growing down; world space is in meters with y up and the
// origin at the bottom-left corner.
type Level struct {
	Name           string
	Width          int
	Height         int
	TileSize       int
	PixelsPerMeter float64

	solid  []bool
	spawnX int
	spawnY int
}

func LoadLevel(name string) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return nil, err
	}
	return NewLevel(spec)
}

func LoadLevelFile(path string) (*Level, error) {
	spec, err := prefabs.LoadSpecFile[prefabs.LevelSpec](path)
	if err != nil {
		return nil, err
	}
	return NewLevel(spec)
}

// NewLevel builds a level from its spec. Short rows are padded with empty
// tiles. Without an 'S' tile the spawn is the top-left cell.
func NewLevel(spec prefabs.LevelSpec) (*Level, error) {
	if len(spec.Rows) == 0 {
		return nil, fmt.Errorf("level %q: no rows", spec.Name)
	}
	l := &Level{
		Name:           spec.Name,
		Height:         len(spec.Rows),
		TileSize:       spec.TileSize,
		PixelsPerMeter: spec.PixelsPerMeter,
	}
	if l.TileSize <= 0 {
		l.TileSize = defaultTileSize
	}
	if l.PixelsPerMeter <= 0 {
		l.PixelsPerMeter = defaultPixelsPerMeter
	}
	for _, row := range spec.Rows {
		if n := len(strings.TrimRight(row, " ")); n > l.Width {
			l.Width = n
		}
	}
	if l.Width == 0 {
		return nil, fmt.Errorf("level %q: empty rows", spec.Name)
	}

	l.solid = make([]bool, l.Width*l.Height)
	for y, row := range spec.Rows {
		for x := 0; x < len(row) && x < l.Width; x++ {
			switch row[x] {
			case tileSolid:
				l.solid[y*l.Width+x] = true
			case tileSpawn:
				l.spawnX, l.spawnY = x, y
			}
		}
	}
	return l, nil
}

// Solid reports whether the tile at (x, y) blocks movement. Cells outside
// the grid are solid.
func (l *Level) Solid(x, y int) bool {
	if l == nil {
		return false
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return true
	}
	return l.solid[y*l.Width+x]
}

func (l *Level) PixelWidth() float64  { return float64(l.Width * l.TileSize) }
func (l *Level) PixelHeight() float64 { return float64(l.Height * l.TileSize) }

// Solids returns the solid tiles merged into as few pixel rectangles as
// possible. Rectangles grow along the row first, then downward.
func (l *Level) Solids() []common.Rect {
	if l == nil {
		return nil
	}
	size := float64(l.TileSize)
	processed := make([]bool, len(l.solid))
	var out []common.Rect
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] || !l.solid[idx] {
				continue
			}

			w := 1
			for x+w < l.Width {
				idx2 := y*l.Width + x + w
				if processed[idx2] || !l.solid[idx2] {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*l.Width + xi
					if processed[idx2] || !l.solid[idx2] {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
			out = append(out, common.Rect{
				X:      float64(x) * size,
				Y:      float64(y) * size,
				Width:  float64(w) * size,
				Height: float64(h) * size,
			})
		}
	}
	return out
}

// Spawn returns the world position of the bottom-center of the spawn cell.
func (l *Level) Spawn() mgl64.Vec3 {
	size := float64(l.TileSize)
	px := (float64(l.spawnX) + 0.5) * size
	py := float64(l.spawnY+1) * size
	return l.ToWorld(px, py, 0)
}

// ToPixels converts a world position to pixel coordinates. Depth is dropped.
func (l *Level) ToPixels(p mgl64.Vec3) (x, y float64) {
	return p.X() * l.PixelsPerMeter, l.PixelHeight() - p.Y()*l.PixelsPerMeter
}

// ToWorld converts pixel coordinates back to meters, keeping depth z.
func (l *Level) ToWorld(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x / l.PixelsPerMeter, (l.PixelHeight() - y) / l.PixelsPerMeter, z}
}
