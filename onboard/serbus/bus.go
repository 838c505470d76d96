package serbus

import (
	"errors"
	"io"
	"time"

	"github.com/tarm/serial"

	device "github.com/peppercorn-robotics/gomaestro/onboard/errors"
)

// ErrTimeout is the cause carried by the TransportError returned when a
// read expires with the device completely silent.
var ErrTimeout = errors.New("serial read timed out")

// Bus is a byte-oriented transport carrying protocol frames. Implementations
// must write each frame as one contiguous sequence and block on reads until
// the requested count arrives or the configured timeout expires.
type Bus interface {
	Write(frame []byte) error
	ReadFull(resp []byte) error
	Close() error
}

// SerialBus drives a physical serial port. It is exclusively owned by one
// controller; there is no internal locking.
type SerialBus struct {
	port io.ReadWriteCloser
}

// Open opens the named serial port. The read timeout bounds every ReadFull
// call; the Pololu protocol itself has none and would hang forever on a
// silent device.
func Open(name string, baud int, timeout time.Duration) (*SerialBus, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, device.TransportError{Op: "open", Err: err}
	}

	return &SerialBus{port: port}, nil
}

func (b *SerialBus) Write(frame []byte) error {
	n, err := b.port.Write(frame)
	if err != nil {
		return device.TransportError{Op: "write", Err: err}
	}
	if n != len(frame) {
		return device.TransportError{Op: "write", Err: io.ErrShortWrite}
	}
	return nil
}

// ReadFull blocks until len(resp) bytes have arrived. A timeout with zero
// bytes read is a TransportError; a timeout after partial progress means
// the stream is desynchronized and is reported as a ProtocolError.
func (b *SerialBus) ReadFull(resp []byte) error {
	read := 0
	for read < len(resp) {
		n, err := b.port.Read(resp[read:])
		read += n
		if err != nil && err != io.EOF {
			return device.TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			// tarm/serial reports an expired ReadTimeout as an empty read
			if read > 0 {
				return device.ProtocolError{Expected: len(resp), Got: read}
			}
			return device.TransportError{Op: "read", Err: ErrTimeout}
		}
	}
	return nil
}

func (b *SerialBus) Close() error {
	if err := b.port.Close(); err != nil {
		return device.TransportError{Op: "close", Err: err}
	}
	return nil
}
