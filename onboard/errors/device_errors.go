package errors

import "fmt"

// TransportError reports a failure on the underlying serial connection:
// the port could not be opened, a frame could not be written, or a read
// timed out with no data. The core never retries; callers decide whether
// to reconnect or abort.
type TransportError struct {
	Op  string
	Err error
}

func (err TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", err.Op, err.Err)
}

func (err TransportError) Unwrap() error {
	return err.Err
}

// ProtocolError reports a truncated response: fewer bytes arrived than the
// opcode promises, which means the stream is desynchronized.
type ProtocolError struct {
	Expected int
	Got      int
}

func (err ProtocolError) Error() string {
	return fmt.Sprintf("protocol desync; expected %d response bytes, got %d", err.Expected, err.Got)
}

// ChannelError reports a channel index outside the controller's 0-23 range.
type ChannelError struct {
	Channel int
}

func (err ChannelError) Error() string {
	return fmt.Sprintf("no such channel %d", err.Channel)
}

// ClosedError reports an operation attempted after Close.
type ClosedError struct{}

func (err ClosedError) Error() string {
	return "controller is closed"
}

// AxisError reports an unknown logical axis name.
type AxisError struct {
	Name string
}

func (err AxisError) Error() string {
	return fmt.Sprintf("no such axis %s", err.Name)
}
