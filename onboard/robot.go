package onboard

import (
	"sync"

	device "github.com/peppercorn-robotics/gomaestro/onboard/errors"
)

// Drive and steer gesture targets, in quarter-microseconds. 6000 is servo
// center; the three tiers either side of it are the robot's fixed speed
// steps on continuous-rotation wheels.
const (
	driveStop        = 6000
	driveForward     = 6700
	driveForwarder   = 6800
	driveForwardest  = 6900
	driveBackward    = 5400
	driveBackwarder  = 5300
	driveBackwardest = 5200

	steerLeft  = 5000
	steerRight = 7000

	twistLeft   = 3000
	twistCenter = 6000
	twistRight  = 9000

	// headStep is the increment for the relative head gestures.
	headStep = 1000

	// centerTarget is where ResetAll parks every axis.
	centerTarget = 6000
)

// ServoController is the primitive channel surface the gesture layer is
// built on. *maestro.Controller implements it.
type ServoController interface {
	SetRange(channel, min, max int) error
	SetTarget(channel, target int) error
	SetSpeed(channel, speed int) error
	GetPosition(channel int) (int, error)
	IsMoving(channel int) (bool, error)
	GetMovingState() (bool, error)
	Close() error
}

// Robot exposes the motion gestures, mapping logical axes onto controller
// channels via its config. The controller itself is synchronous and
// single-owner, so one mutex here serializes the shell, HTTP and telemetry
// front ends.
type Robot struct {
	lock sync.Mutex
	ctrl ServoController
	axes map[string]AxisConfig
}

// NewRobot builds a robot over an open controller. Every gesture axis must
// be mapped or construction fails.
func NewRobot(ctrl ServoController, config Config) (*Robot, error) {
	for _, name := range requiredAxes {
		if _, ok := config.Axes[name]; !ok {
			return nil, device.AxisError{Name: name}
		}
	}

	return &Robot{
		ctrl: ctrl,
		axes: config.Axes,
	}, nil
}

// prepare re-asserts an axis's range and speed before a move, so gestures
// stay idempotent no matter what ran before them.
func (r *Robot) prepare(name string) (AxisConfig, error) {
	axis, ok := r.axes[name]
	if !ok {
		return axis, device.AxisError{Name: name}
	}

	if err := r.ctrl.SetRange(axis.Channel, axis.Min, axis.Max); err != nil {
		return axis, err
	}
	if err := r.ctrl.SetSpeed(axis.Channel, axis.Speed); err != nil {
		return axis, err
	}
	return axis, nil
}

func (r *Robot) drive(target int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	axis, err := r.prepare(AxisDrive)
	if err != nil {
		return err
	}
	return r.ctrl.SetTarget(axis.Channel, target)
}

func (r *Robot) Forward() error        { return r.drive(driveForward) }
func (r *Robot) ForwardFaster() error  { return r.drive(driveForwarder) }
func (r *Robot) ForwardFastest() error { return r.drive(driveForwardest) }

func (r *Robot) Backward() error        { return r.drive(driveBackward) }
func (r *Robot) BackwardFaster() error  { return r.drive(driveBackwarder) }
func (r *Robot) BackwardFastest() error { return r.drive(driveBackwardest) }

// Stop recenters the drive servo, halting the wheels.
func (r *Robot) Stop() error { return r.drive(driveStop) }

func (r *Robot) steer(target int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	axis, err := r.prepare(AxisSteer)
	if err != nil {
		return err
	}
	return r.ctrl.SetTarget(axis.Channel, target)
}

func (r *Robot) TurnLeft() error  { return r.steer(steerLeft) }
func (r *Robot) TurnRight() error { return r.steer(steerRight) }

// step nudges an axis by a fixed amount relative to its live position. The
// move is skipped, without error, once the position is at or beyond the
// configured bound.
//
// The position read reflects the device's commanded position, not physical
// feedback; if the previous step is still slewing the next one starts from
// a stale value. That ambiguity is inherent to the protocol.
func (r *Robot) step(name string, delta int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	axis, err := r.prepare(name)
	if err != nil {
		return err
	}

	pos, err := r.ctrl.GetPosition(axis.Channel)
	if err != nil {
		return err
	}

	if delta > 0 && pos >= axis.Max {
		return nil
	}
	if delta < 0 && pos <= axis.Min {
		return nil
	}
	return r.ctrl.SetTarget(axis.Channel, pos+delta)
}

func (r *Robot) RotateHeadLeft() error  { return r.step(AxisPan, -headStep) }
func (r *Robot) RotateHeadRight() error { return r.step(AxisPan, +headStep) }
func (r *Robot) TiltHeadUp() error      { return r.step(AxisTilt, +headStep) }
func (r *Robot) TiltHeadDown() error    { return r.step(AxisTilt, -headStep) }

func (r *Robot) twist(target int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	axis, err := r.prepare(AxisTwist)
	if err != nil {
		return err
	}
	return r.ctrl.SetTarget(axis.Channel, target)
}

func (r *Robot) TwistLeft() error   { return r.twist(twistLeft) }
func (r *Robot) TwistCenter() error { return r.twist(twistCenter) }
func (r *Robot) TwistRight() error  { return r.twist(twistRight) }

// ResetAll recenters every axis: head, torso, steering, then drive.
func (r *Robot) ResetAll() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, name := range []string{AxisPan, AxisTilt, AxisTwist, AxisSteer, AxisDrive} {
		axis := r.axes[name]
		if err := r.ctrl.SetSpeed(axis.Channel, axis.Speed); err != nil {
			return err
		}
		if err := r.ctrl.SetTarget(axis.Channel, centerTarget); err != nil {
			return err
		}
	}
	return nil
}

// Position reports the live position of a logical axis.
func (r *Robot) Position(name string) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	axis, ok := r.axes[name]
	if !ok {
		return 0, device.AxisError{Name: name}
	}
	return r.ctrl.GetPosition(axis.Channel)
}

// Positions reports the live position of every mapped axis.
func (r *Robot) Positions() (map[string]int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	positions := make(map[string]int, len(r.axes))
	for name, axis := range r.axes {
		pos, err := r.ctrl.GetPosition(axis.Channel)
		if err != nil {
			return nil, err
		}
		positions[name] = pos
	}
	return positions, nil
}

// AxisMoving reports whether one axis is still short of its last
// commanded target. An axis that has never been commanded is never moving.
func (r *Robot) AxisMoving(name string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	axis, ok := r.axes[name]
	if !ok {
		return false, device.AxisError{Name: name}
	}
	return r.ctrl.IsMoving(axis.Channel)
}

// Moving reports whether any channel on the device is still slewing.
func (r *Robot) Moving() (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.ctrl.GetMovingState()
}

// AxisNames lists the mapped axes, for shell completion.
func (r *Robot) AxisNames() []string {
	names := make([]string, 0, len(r.axes))
	for name := range r.axes {
		names = append(names, name)
	}
	return names
}

// Close releases the controller and its serial port.
func (r *Robot) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.ctrl.Close()
}
