package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/spheretrace/types"
	"github.com/go-gl/mathgl/mgl64"
)

type CameraDirection uint8

// Camera movement directions.
const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

// The camera type controls the scene camera. The exported fields describe
// the camera placement; after changing them Update must be called to
// recalculate the image plane.
type Camera struct {
	Origin types.Vec3
	LookAt types.Vec3
	Up     types.Vec3

	// Vertical field of view in degrees.
	VFov float64

	// Image width over image height.
	Aspect float64

	// The image plane spanned by the generated rays.
	lowerLeftCorner types.Vec3
	horizontal      types.Vec3
	vertical        types.Vec3
}

// Create a perspective camera at origin looking towards lookAt.
func NewCamera(origin, lookAt, up types.Vec3, vfov, aspect float64) *Camera {
	c := &Camera{
		Origin: origin,
		LookAt: lookAt,
		Up:     up,
		VFov:   vfov,
		Aspect: aspect,
	}
	c.Update()
	return c
}

// Recalculate the image plane from the camera parameters.
func (c *Camera) Update() {
	h := math.Tan(mgl64.DegToRad(c.VFov) / 2)
	viewportH := 2.0 * h
	viewportW := c.Aspect * viewportH

	w := c.Origin.Sub(c.LookAt).Normalize()
	u := c.Up.Cross(w).Normalize()
	v := w.Cross(u)

	c.horizontal = u.Mul(viewportW)
	c.vertical = v.Mul(viewportH)
	c.lowerLeftCorner = c.Origin.
		Sub(c.horizontal.Mul(0.5)).
		Sub(c.vertical.Mul(0.5)).
		Sub(w)
}

// Generate a ray through the normalized image plane coordinates (u, v) where
// (0, 0) is the bottom-left corner. The direction is not normalized.
func (c *Camera) GetRay(u, v float64) types.Ray {
	dir := c.lowerLeftCorner.
		Add(c.horizontal.Mul(u)).
		Add(c.vertical.Mul(v)).
		Sub(c.Origin)
	return types.NewRay(c.Origin, dir)
}

// Translate both the camera origin and its look at point.
func (c *Camera) Move(dir CameraDirection, amount float64) {
	forward := c.LookAt.Sub(c.Origin).Normalize()
	var delta types.Vec3
	switch dir {
	case Forward:
		delta = forward.Mul(amount)
	case Backward:
		delta = forward.Mul(-amount)
	case Left:
		delta = c.Up.Cross(forward).Normalize().Mul(amount)
	case Right:
		delta = forward.Cross(c.Up).Normalize().Mul(amount)
	}

	c.Origin = c.Origin.Add(delta)
	c.LookAt = c.LookAt.Add(delta)
	c.Update()
}

// Rotate the camera origin around its look at point. Yaw rotates around the
// up vector and pitch around the camera's right axis; both are in degrees.
func (c *Camera) Orbit(yaw, pitch float64) {
	offset := mgl64.Vec3(c.Origin.Sub(c.LookAt))
	up := mgl64.Vec3(c.Up).Normalize()

	orient := mgl64.QuatRotate(mgl64.DegToRad(yaw), up)
	if right := offset.Mul(-1).Cross(up); right.Len() > 1e-9 && pitch != 0 {
		pitchQuat := mgl64.QuatRotate(mgl64.DegToRad(pitch), right.Normalize())
		orient = pitchQuat.Mul(orient)
	}

	offset = orient.Normalize().Rotate(offset)
	c.Origin = c.LookAt.Add(types.Vec3(offset))
	c.Update()
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera:\nOrigin     : %v\nLookAt     : %v\nVFov       : %3.3f\nAspect     : %3.3f\nLowerLeft  : %v\nHorizontal : %v\nVertical   : %v",
		c.Origin, c.LookAt, c.VFov, c.Aspect,
		c.lowerLeftCorner, c.horizontal, c.vertical,
	)
}
