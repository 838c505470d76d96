package maestro

import (
	device "github.com/peppercorn-robotics/gomaestro/onboard/errors"
	"github.com/peppercorn-robotics/gomaestro/onboard/serbus"
)

// Simulator is an in-memory stand-in for a real Maestro, implementing
// serbus.Bus. It parses the frames a Controller writes, tracks targets,
// and queues the response bytes query commands expect: position reports
// echo the last target (servos are assumed to move instantly) and the
// moving state is always idle.
//
// It backs the -sim flag and lets the rest of the stack be exercised
// without hardware on the bench.
type Simulator struct {
	dev     byte
	closed  bool
	targets [ChannelCount]int
	pending []byte
}

// NewSimulator models a device with the given device number; 0 selects the
// factory default.
func NewSimulator(dev byte) *Simulator {
	if dev == 0 {
		dev = DefaultDevice
	}
	return &Simulator{dev: dev}
}

// Target exposes the simulated device state for assertions.
func (s *Simulator) Target(channel int) int {
	return s.targets[channel]
}

func (s *Simulator) Write(frame []byte) error {
	if s.closed {
		return device.TransportError{Op: "write", Err: device.ClosedError{}}
	}
	if len(frame) < 3 || frame[0] != leadIn || frame[1] != s.dev {
		// addressed to somebody else, or garbage; a real bus ignores it
		return nil
	}

	op, data := frame[2], frame[3:]
	switch op {
	case cmdSetTarget:
		if len(data) != 3 || int(data[0]) >= ChannelCount {
			return nil
		}
		s.targets[int(data[0])] = int(data[2])<<7 | int(data[1])
	case cmdGetPosition:
		if len(data) != 1 || int(data[0]) >= ChannelCount {
			return nil
		}
		v := s.targets[int(data[0])]
		s.pending = append(s.pending, byte(v&0xFF), byte(v>>8))
	case cmdGetMovingState:
		s.pending = append(s.pending, 0)
	case cmdSetSpeed, cmdSetAccel, cmdRunScriptSub, cmdStopScript:
		// accepted, no observable effect in the model
	}
	return nil
}

func (s *Simulator) ReadFull(resp []byte) error {
	if s.closed {
		return device.TransportError{Op: "read", Err: device.ClosedError{}}
	}
	if len(s.pending) == 0 {
		return device.TransportError{Op: "read", Err: serbus.ErrTimeout}
	}
	if len(s.pending) < len(resp) {
		return device.ProtocolError{Expected: len(resp), Got: len(s.pending)}
	}
	copy(resp, s.pending[:len(resp)])
	s.pending = s.pending[len(resp):]
	return nil
}

func (s *Simulator) Close() error {
	s.closed = true
	return nil
}
