package maestro

import (
	device "github.com/peppercorn-robotics/gomaestro/onboard/errors"
	"github.com/peppercorn-robotics/gomaestro/onboard/serbus"
)

// Controller drives one Maestro servo controller over a serial bus. It
// tracks the last commanded target and the software travel limits for each
// of the 24 channels. The bus is exclusively owned and released by Close.
//
// All exchanges are strictly synchronous: one frame out, then for query
// commands a fixed-size response in. The controller itself is not safe for
// concurrent use; callers with multiple goroutines must serialize access
// externally.
type Controller struct {
	bus    serbus.Bus
	dev    byte
	closed bool

	targets [ChannelCount]int
	mins    [ChannelCount]int
	maxs    [ChannelCount]int
}

// NewController wraps an open bus. A zero device byte selects the factory
// default device number.
func NewController(bus serbus.Bus, dev byte) *Controller {
	if dev == 0 {
		dev = DefaultDevice
	}
	return &Controller{
		bus: bus,
		dev: dev,
	}
}

func (c *Controller) check(channel int) error {
	if c.closed {
		return device.ClosedError{}
	}
	if channel < 0 || channel >= ChannelCount {
		return device.ChannelError{Channel: channel}
	}
	return nil
}

func (c *Controller) send(op byte, data ...byte) error {
	frame := make([]byte, 0, 3+len(data))
	frame = append(frame, leadIn, c.dev, op)
	frame = append(frame, data...)
	return c.bus.Write(frame)
}

// SetRange stores software travel limits for a channel. A bound of 0
// disables that side of the clamp. Nothing is transmitted; the Maestro's
// own configured limits still apply on top of these.
func (c *Controller) SetRange(channel, min, max int) error {
	if err := c.check(channel); err != nil {
		return err
	}
	c.mins[channel] = min
	c.maxs[channel] = max
	return nil
}

// Min returns the stored lower travel limit for a channel.
func (c *Controller) Min(channel int) (int, error) {
	if err := c.check(channel); err != nil {
		return 0, err
	}
	return c.mins[channel], nil
}

// Max returns the stored upper travel limit for a channel.
func (c *Controller) Max(channel int) (int, error) {
	if err := c.check(channel); err != nil {
		return 0, err
	}
	return c.maxs[channel], nil
}

// Target returns the last target recorded for a channel; 0 means the
// channel has never been commanded.
func (c *Controller) Target(channel int) (int, error) {
	if err := c.check(channel); err != nil {
		return 0, err
	}
	return c.targets[channel], nil
}

// SetTarget commands a channel to a position in quarter-microseconds.
// The value is clamped into the stored range (min first, then max) before
// transmission. The target table records the clamped value, and only once
// the frame has actually been written.
func (c *Controller) SetTarget(channel, target int) error {
	if err := c.check(channel); err != nil {
		return err
	}

	if c.mins[channel] > 0 && target < c.mins[channel] {
		target = c.mins[channel]
	}
	if c.maxs[channel] > 0 && target > c.maxs[channel] {
		target = c.maxs[channel]
	}

	if err := c.send(cmdSetTarget, byte(channel), lo(target), hi(target)); err != nil {
		return err
	}

	c.targets[channel] = target
	return nil
}

// SetSpeed limits how fast a channel slews toward its target, in units of
// 0.25us per 10ms. 0 removes the limit.
func (c *Controller) SetSpeed(channel, speed int) error {
	if err := c.check(channel); err != nil {
		return err
	}
	return c.send(cmdSetSpeed, byte(channel), lo(speed), hi(speed))
}

// SetAccel limits a channel's acceleration, 0-255. 0 removes the limit.
// The wire format is the same two byte split as speed; the high byte is
// always zero for in-range values.
func (c *Controller) SetAccel(channel, accel int) error {
	if err := c.check(channel); err != nil {
		return err
	}
	return c.send(cmdSetAccel, byte(channel), lo(accel), hi(accel))
}

// GetPosition queries the device for a channel's current position and
// blocks for the two byte response. The tracked target is not touched.
//
// The device reports its own commanded position, not physical feedback;
// with a speed limit set it tracks the real servo closely, otherwise it
// simply echoes the last target.
func (c *Controller) GetPosition(channel int) (int, error) {
	if err := c.check(channel); err != nil {
		return 0, err
	}

	if err := c.send(cmdGetPosition, byte(channel)); err != nil {
		return 0, err
	}

	resp := make([]byte, 2)
	if err := c.bus.ReadFull(resp); err != nil {
		return 0, err
	}

	return decode(resp[0], resp[1]), nil
}

// IsMoving reports whether a channel has reached its last commanded
// target. A channel that has never been commanded is never moving.
func (c *Controller) IsMoving(channel int) (bool, error) {
	if err := c.check(channel); err != nil {
		return false, err
	}

	if c.targets[channel] == 0 {
		return false, nil
	}

	pos, err := c.GetPosition(channel)
	if err != nil {
		return false, err
	}
	return pos != c.targets[channel], nil
}

// GetMovingState asks the device whether any channel is still slewing.
// Not available on the Micro Maestro.
func (c *Controller) GetMovingState() (bool, error) {
	if c.closed {
		return false, device.ClosedError{}
	}

	if err := c.send(cmdGetMovingState); err != nil {
		return false, err
	}

	resp := make([]byte, 1)
	if err := c.bus.ReadFull(resp); err != nil {
		return false, err
	}

	return resp[0] != 0, nil
}

// RunScriptSub starts the numbered subroutine of the script loaded on the
// device. Fire and forget.
func (c *Controller) RunScriptSub(sub int) error {
	if c.closed {
		return device.ClosedError{}
	}
	return c.send(cmdRunScriptSub, byte(sub))
}

// StopScript halts the currently running device script.
func (c *Controller) StopScript() error {
	if c.closed {
		return device.ClosedError{}
	}
	return c.send(cmdStopScript)
}

// Close releases the bus. Every operation afterwards fails with a
// ClosedError rather than silently doing nothing.
func (c *Controller) Close() error {
	if c.closed {
		return device.ClosedError{}
	}
	c.closed = true
	return c.bus.Close()
}
