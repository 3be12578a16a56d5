package folio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(1280, 720)
	assert.Equal(t, 50.0, cam.FOV)
	w, h := cam.Viewport()
	assert.Equal(t, 1280.0, w)
	assert.Equal(t, 720.0, h)
}

func TestCameraTargetAtCenter(t *testing.T) {
	cam := newCamera(1280, 720)
	sx, sy, _, ok := cam.WorldToScreen(cam.Target)
	require.True(t, ok)
	assert.InDelta(t, 640, sx, 1e-6)
	assert.InDelta(t, 360, sy, 1e-6)
}

func TestCameraAxes(t *testing.T) {
	cam := newCamera(800, 600)
	cx, cy, _, _ := cam.WorldToScreen(cam.Target)

	_, upY, _, _ := cam.WorldToScreen(cam.Target.Add(Vec3{0, 1, 0}))
	assert.Less(t, upY, cy, "world up projects above the target")
	rightX, _, _, _ := cam.WorldToScreen(cam.Target.Add(Vec3{1, 0, 0}))
	assert.Greater(t, rightX, cx, "world right projects right of the target")
}

func TestCameraBehindEye(t *testing.T) {
	cam := newCamera(800, 600)
	_, _, _, ok := cam.WorldToScreen(Vec3{1.5, 0, 10})
	assert.False(t, ok)
}

func TestCameraViewDepth(t *testing.T) {
	cam := newCamera(800, 600)
	assert.InDelta(t, cam.Eye.Sub(cam.Target).Len(), cam.viewDepth(cam.Target), epsilon)
	assert.Greater(t, cam.viewDepth(Vec3{0.8, 0, -2}), cam.viewDepth(Vec3{0.8, 0, 2}))
}

func TestCameraResize(t *testing.T) {
	cam := newCamera(800, 600)
	cam.computeViewProj()
	require.False(t, cam.dirty)

	cam.Resize(800, 600)
	assert.False(t, cam.dirty, "same size")
	cam.Resize(1600, 600)
	assert.True(t, cam.dirty)
	sx, _, _, _ := cam.WorldToScreen(cam.Target)
	assert.InDelta(t, 800, sx, 1e-6)

	cam.Resize(0, -5)
	w, h := cam.Viewport()
	assert.Equal(t, 1.0, w)
	assert.Equal(t, 1.0, h)
}

func TestCameraFieldOfView(t *testing.T) {
	cam := newCamera(1000, 1000)
	d := cam.Eye.Sub(cam.Target).Len()
	half := d * math.Tan(25*math.Pi/180)
	// A point half the view height above the target, perpendicular to the
	// view direction, lands on the top edge.
	fwd := cam.Target.Sub(cam.Eye).Normalize()
	right := fwd.Cross(cam.Up).Normalize()
	up := right.Cross(fwd)
	_, sy, _, ok := cam.WorldToScreen(cam.Target.Add(up.Scale(half)))
	require.True(t, ok)
	assert.InDelta(t, 0, sy, 1e-6)
}
