package serbus

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	device "github.com/peppercorn-robotics/gomaestro/onboard/errors"
)

// fakePort scripts the underlying serial port: each Read call pops the next
// chunk, an empty chunk models a ReadTimeout expiry.
type fakePort struct {
	chunks   [][]byte
	readErr  error
	wrote    []byte
	writeN   int
	writeErr error
	closed   bool
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.chunks) == 0 {
		return 0, nil // timeout
	}
	chunk := f.chunks[0]
	f.chunks = f.chunks[1:]
	return copy(p, chunk), nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.wrote = append(f.wrote, p...)
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.writeN > 0 {
		return f.writeN, nil
	}
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func TestWrite(t *testing.T) {
	port := &fakePort{}
	bus := &SerialBus{port: port}

	require.NoError(t, bus.Write([]byte{0xAA, 0x0C, 0x24}))
	require.Equal(t, []byte{0xAA, 0x0C, 0x24}, port.wrote)

	port = &fakePort{writeErr: errors.New("unplugged")}
	bus = &SerialBus{port: port}
	err := bus.Write([]byte{0xAA})
	require.IsType(t, device.TransportError{}, err)

	port = &fakePort{writeN: 1}
	bus = &SerialBus{port: port}
	err = bus.Write([]byte{0xAA, 0x0C})
	require.IsType(t, device.TransportError{}, err)
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestReadFull(t *testing.T) {
	tests := []struct {
		name   string
		port   *fakePort
		want   []byte
		errTyp error
	}{
		{
			name: "single chunk",
			port: &fakePort{chunks: [][]byte{{0x74, 0x35}}},
			want: []byte{0x74, 0x35},
		},
		{
			name: "split across reads",
			port: &fakePort{chunks: [][]byte{{0x74}, {0x35}}},
			want: []byte{0x74, 0x35},
		},
		{
			name:   "silent device",
			port:   &fakePort{},
			errTyp: device.TransportError{},
		},
		{
			name:   "truncated response",
			port:   &fakePort{chunks: [][]byte{{0x74}}},
			errTyp: device.ProtocolError{},
		},
		{
			name:   "port error",
			port:   &fakePort{readErr: errors.New("unplugged")},
			errTyp: device.TransportError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &SerialBus{port: tt.port}
			resp := make([]byte, 2)
			err := bus.ReadFull(resp)

			if tt.errTyp != nil {
				require.IsType(t, tt.errTyp, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, resp)
		})
	}
}

func TestReadFullTimeoutCause(t *testing.T) {
	bus := &SerialBus{port: &fakePort{}}
	err := bus.ReadFull(make([]byte, 1))
	require.ErrorIs(t, err, ErrTimeout)
}

func TestClose(t *testing.T) {
	port := &fakePort{}
	bus := &SerialBus{port: port}
	require.NoError(t, bus.Close())
	require.True(t, port.closed)
}
