package orientation

import "math"

// Pose is a head orientation in degrees, as sent by the phone.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Source is anything that can provide poses over time.
type Source interface {
	Next() (Pose, error)
}

// Sub returns the per-axis change from prev to p. Yaw is wrapped into
// (-180, 180] so crossing the ±180° seam reads as a small turn.
func (p Pose) Sub(prev Pose) Pose {
	return Pose{
		Roll:  p.Roll - prev.Roll,
		Pitch: p.Pitch - prev.Pitch,
		Yaw:   WrapDegrees(p.Yaw - prev.Yaw),
	}
}

// WrapDegrees maps an angle into (-180, 180].
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
