package obj

import (
	"math"

	"github.com/milk9111/locomotion/common"
)

// Camera follows a point in level pixels and maps it to the center of the
// screen at a fixed zoom. The view never leaves the level.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH, zoom float64, level *Level) *Camera {
	c := &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
	if level != nil {
		c.worldW = level.PixelWidth()
		c.worldH = level.PixelHeight()
	}
	c.PosX = screenW / 2
	c.PosY = screenH / 2
	return c
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// ViewTopLeft returns the level-pixel top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := c.screenW / c.zoom
	viewH := c.screenH / c.zoom
	return c.PosX - viewW/2, c.PosY - viewH/2
}

// ToScreen maps a level-pixel point to screen coordinates.
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return (x - left) * c.zoom, (y - top) * c.zoom
}

// Update moves the camera toward the target by the smoothing factor.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX, c.PosY = targetX, targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.constrain()
}

// SnapTo centers the camera on the target without smoothing.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX, c.PosY = x, y
	c.constrain()
}

func (c *Camera) constrain() {
	// snap position to 1/zoom grid to align source texels to integer screen pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := c.screenW / c.zoom / 2
	halfH := c.screenH / c.zoom / 2
	if c.worldW > 0 {
		if c.worldW < 2*halfW {
			// world smaller than view: center on world
			c.PosX = c.worldW / 2
		} else {
			c.PosX = common.Clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH < 2*halfH {
			c.PosY = c.worldH / 2
		} else {
			c.PosY = common.Clamp(c.PosY, halfH, c.worldH-halfH)
		}
	}
}
