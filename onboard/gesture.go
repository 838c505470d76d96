package onboard

import "fmt"

// Gesture enumerates the motion gestures. Front ends key their dispatch on
// these values rather than matching strings or keystrokes.
type Gesture int

const (
	GestureStop Gesture = iota
	GestureForward
	GestureForwardFaster
	GestureForwardFastest
	GestureBackward
	GestureBackwardFaster
	GestureBackwardFastest
	GestureTurnLeft
	GestureTurnRight
	GestureRotateHeadLeft
	GestureRotateHeadRight
	GestureTiltHeadUp
	GestureTiltHeadDown
	GestureTwistLeft
	GestureTwistCenter
	GestureTwistRight
	GestureResetAll
)

var gestureNames = map[Gesture]string{
	GestureStop:            "stop",
	GestureForward:         "forward",
	GestureForwardFaster:   "forward-faster",
	GestureForwardFastest:  "forward-fastest",
	GestureBackward:        "backward",
	GestureBackwardFaster:  "backward-faster",
	GestureBackwardFastest: "backward-fastest",
	GestureTurnLeft:        "turn-left",
	GestureTurnRight:       "turn-right",
	GestureRotateHeadLeft:  "rotate-head-left",
	GestureRotateHeadRight: "rotate-head-right",
	GestureTiltHeadUp:      "tilt-head-up",
	GestureTiltHeadDown:    "tilt-head-down",
	GestureTwistLeft:       "twist-left",
	GestureTwistCenter:     "twist-center",
	GestureTwistRight:      "twist-right",
	GestureResetAll:        "reset",
}

func (g Gesture) String() string {
	if name, ok := gestureNames[g]; ok {
		return name
	}
	return fmt.Sprintf("gesture(%d)", int(g))
}

// ParseGesture resolves the wire/CLI name of a gesture.
func ParseGesture(name string) (Gesture, error) {
	for g, n := range gestureNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gesture %q", name)
}

// GestureNames lists every gesture name, for completion and route docs.
func GestureNames() []string {
	names := make([]string, 0, len(gestureNames))
	for _, n := range gestureNames {
		names = append(names, n)
	}
	return names
}

// Perform runs a gesture by value.
func (r *Robot) Perform(g Gesture) error {
	switch g {
	case GestureStop:
		return r.Stop()
	case GestureForward:
		return r.Forward()
	case GestureForwardFaster:
		return r.ForwardFaster()
	case GestureForwardFastest:
		return r.ForwardFastest()
	case GestureBackward:
		return r.Backward()
	case GestureBackwardFaster:
		return r.BackwardFaster()
	case GestureBackwardFastest:
		return r.BackwardFastest()
	case GestureTurnLeft:
		return r.TurnLeft()
	case GestureTurnRight:
		return r.TurnRight()
	case GestureRotateHeadLeft:
		return r.RotateHeadLeft()
	case GestureRotateHeadRight:
		return r.RotateHeadRight()
	case GestureTiltHeadUp:
		return r.TiltHeadUp()
	case GestureTiltHeadDown:
		return r.TiltHeadDown()
	case GestureTwistLeft:
		return r.TwistLeft()
	case GestureTwistCenter:
		return r.TwistCenter()
	case GestureTwistRight:
		return r.TwistRight()
	case GestureResetAll:
		return r.ResetAll()
	default:
		return fmt.Errorf("unknown gesture %v", g)
	}
}
