package maestro

// Pololu serial protocol, extended (AA-prefixed) form. Every frame is
// lead-in, device number, opcode, then 0-3 data bytes depending on the
// opcode. See the Maestro user's guide, "Serial Servo Commands".
const (
	cmdSetTarget      = 0x04 // channel, target lsb, target msb
	cmdSetSpeed       = 0x07 // channel, speed lsb, speed msb
	cmdSetAccel       = 0x09 // channel, accel lsb, accel msb
	cmdGetPosition    = 0x10 // channel; responds with 2 bytes
	cmdGetMovingState = 0x13 // responds with 1 byte
	cmdStopScript     = 0x24
	cmdRunScriptSub   = 0x27 // subroutine number
)

const (
	// leadIn marks the start of every extended protocol frame.
	leadIn = 0xAA

	// DefaultDevice is the factory-configured Pololu device number.
	DefaultDevice = 0x0C

	// ChannelCount is the number of output channels on the largest Maestro.
	ChannelCount = 24

	// ValueMax is the largest value a two byte command argument can carry.
	ValueMax = 0x3FFF
)

// lo and hi split a 14-bit quantity into the two 7-bit data bytes the
// command set expects, least significant first.
func lo(v int) byte {
	return byte(v & 0x7F)
}

func hi(v int) byte {
	return byte((v >> 7) & 0x7F)
}

// decode recombines a two byte response. The msb is shifted a full eight
// bits: responses carry plain 16-bit little endian values, unlike command
// arguments. This is the device's own definition, not the inverse of
// lo/hi, and must not be "fixed".
func decode(lsb, msb byte) int {
	return int(msb)<<8 | int(lsb)
}
