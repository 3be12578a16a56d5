package folio

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Mix returns a blend of c and other, with weight w applied to c.
func (c Color) Mix(other Color, w float64) Color {
	return Color{
		R: lerp(other.R, c.R, w),
		G: lerp(other.G, c.G, w),
		B: lerp(other.B, c.B, w),
		A: lerp(other.A, c.A, w),
	}
}

// Vec3 is a 3D vector used for positions, directions and rotations.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns v scaled to unit length, or the zero vector if v is
// degenerate.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Pose is a card's placement in world space: position, Euler rotation
// (radians, XYZ order) and uniform scale.
type Pose struct {
	X, Y, Z          float64
	RotX, RotY, RotZ float64
	Scale            float64
}

// HeroPose is the fixed placement a card takes in the case-study view. It sits
// on the camera's focal axis so the card is shown without perspective skew.
var HeroPose = Pose{X: 0.8, Y: 0.2, Z: 0, Scale: 1}

// heroBend is the curvature of a card in hero pose (flat).
const heroBend = 0.0

// lerpPose interpolates every field of a pose.
func lerpPose(a, b Pose, t float64) Pose {
	return Pose{
		X:     lerp(a.X, b.X, t),
		Y:     lerp(a.Y, b.Y, t),
		Z:     lerp(a.Z, b.Z, t),
		RotX:  lerp(a.RotX, b.RotX, t),
		RotY:  lerp(a.RotY, b.RotY, t),
		RotZ:  lerp(a.RotZ, b.RotZ, t),
		Scale: lerp(a.Scale, b.Scale, t),
	}
}

// Phase identifies which controller currently owns the card poses.
type Phase uint8

const (
	PhaseEntry                  Phase = iota // entry animation pending or running
	PhaseGallery                             // scroll physics drives the strip
	PhaseTransitioningToHero                 // active card morphing into hero pose
	PhaseHero                                // case-study view is open
	PhaseTransitioningToGallery              // active card morphing back to its slot
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEntry:
		return "entry"
	case PhaseGallery:
		return "gallery"
	case PhaseTransitioningToHero:
		return "to-hero"
	case PhaseHero:
		return "hero"
	case PhaseTransitioningToGallery:
		return "to-gallery"
	default:
		return "unknown"
	}
}

// InputSource identifies where a scroll impulse came from.
type InputSource uint8

const (
	InputWheel InputSource = iota // mouse wheel or trackpad; feeds velocity
	InputTouch                    // touch or pointer drag; feeds the target directly
)

// EngineState is the engine's single owned mutable state. It is written only
// by Engine.Update and the engine's operation handlers.
type EngineState struct {
	ScrollPosition float64
	ScrollTarget   float64
	ScrollVelocity float64

	// ActiveIndex is the centered card, always in [0, N-1].
	ActiveIndex int
	Phase       Phase

	// EntryProgress and TransitionProgress grow monotonically while their
	// phase is active and reset to 0 when it exits.
	EntryProgress      float64
	TransitionProgress float64
}

// --- scalar helpers ---

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
