package proto

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"
)

// Every command shares the same header: a little-endian u16 total length
// (payload size + 4), a little-endian u16 opcode, then the payload.
const (
	OpImage       uint16 = 0x0002
	OpDIYMode     uint16 = 0x0104
	OpPower       uint16 = 0x0107
	OpDefaultMode uint16 = 0x8003
)

const headerSize = 4

// MaxPayload is the largest payload the u16 length field can describe.
const MaxPayload = 0xFFFF - headerSize

// ErrPayloadTooLarge is returned when a payload does not fit the length field.
var ErrPayloadTooLarge = errors.New("payload exceeds frame capacity")

// Frame builds a complete command buffer from an opcode and payload.
// All command builders go through here.
func Frame(opcode uint16, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}

	buf := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(payload)+headerSize))
	binary.LittleEndian.PutUint16(buf[2:4], opcode)
	copy(buf[headerSize:], payload)
	return buf, nil
}

// Power builds the power toggle command, [5 0 7 1 x].
func Power(on bool) []byte {
	var b byte
	if on {
		b = 1
	}

	cmd, _ := Frame(OpPower, []byte{b})
	return cmd
}

// DIYMode builds the DIY mode command, [5 0 4 1 mode].
// Mode 1 enters DIY mode and clears the current buffer. The accepted range
// is device firmware dependent and not validated here.
func DIYMode(mode uint8) []byte {
	cmd, _ := Frame(OpDIYMode, []byte{mode})
	return cmd
}

// DefaultMode builds the command that exits slideshow into the default
// mode, [4 0 3 128].
func DefaultMode() []byte {
	cmd, _ := Frame(OpDefaultMode, nil)
	return cmd
}

// Image wraps an encoded PNG into an upload command targeting the given
// device buffer slot:
//
//	[0x00][size:u32-LE][crc32(png):u32-LE][0x00][buffer][png bytes]
//
// The checksum is plain CRC-32 (IEEE) over the PNG bytes only.
func Image(png []byte, buffer uint8) ([]byte, error) {
	payload := make([]byte, 11+len(png))
	binary.LittleEndian.PutUint32(payload[1:5], uint32(len(png)))
	binary.LittleEndian.PutUint32(payload[5:9], crc32.ChecksumIEEE(png))
	payload[10] = buffer
	copy(payload[11:], png)

	return Frame(OpImage, payload)
}
