package protocol

import (
	"errors"
	"io"
)

// FrameHeaderSize is the size of the frame header in bytes.
const FrameHeaderSize = 6

// MaxPayloadSize is the largest payload a frame may carry.
const MaxPayloadSize = HardMaxAllocation

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameCommit  FrameType = 0x01 // Committed node snapshot
	FrameUnmount FrameType = 0x02 // Fiber destroyed
	FramePing    FrameType = 0x03 // Keepalive
	FrameError   FrameType = 0x04 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameCommit:
		return "Commit"
	case FrameUnmount:
		return "Unmount"
	case FramePing:
		return "Ping"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags are optional flags for frame processing.
type FrameFlags uint8

const (
	FlagRoot  FrameFlags = 0x01 // Record belongs to the root fiber
	FlagFinal FrameFlags = 0x02 // Last record of a render pass
)

// Has reports whether ff contains flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// ErrFrameTooLarge is returned for payloads above MaxPayloadSize.
var ErrFrameTooLarge = errors.New("protocol: frame payload too large")

// Frame is a typed, length-prefixed payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame with no flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the frame header followed by the payload.
func (f *Frame) Encode() []byte {
	e := NewEncoderBuffer(make([]byte, 0, FrameHeaderSize+len(f.Payload)))
	f.EncodeTo(e)
	return e.Bytes()
}

// EncodeTo appends the encoded frame to e.
func (f *Frame) EncodeTo(e *Encoder) {
	e.WriteByte(byte(f.Type))
	e.WriteByte(byte(f.Flags))
	e.WriteUint32(uint32(len(f.Payload)))
	e.WriteBytes(f.Payload)
}

// DecodeFrame decodes one frame from data, copying the payload.
func DecodeFrame(data []byte) (*Frame, error) {
	ft, flags, length, err := DecodeFrameHeader(data)
	if err != nil {
		return nil, err
	}
	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{Type: ft, Flags: flags, Payload: payload}, nil
}

// DecodeFrameHeader decodes the header, returning type, flags and payload
// length.
func DecodeFrameHeader(data []byte) (FrameType, FrameFlags, int, error) {
	if len(data) < FrameHeaderSize {
		return 0, 0, 0, io.ErrUnexpectedEOF
	}
	length := int(data[2])<<24 | int(data[3])<<16 | int(data[4])<<8 | int(data[5])
	if length > MaxPayloadSize {
		return 0, 0, 0, ErrFrameTooLarge
	}
	return FrameType(data[0]), FrameFlags(data[1]), length, nil
}

// ReadFrame reads a complete frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	ft, flags, length, err := DecodeFrameHeader(header)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &Frame{Type: ft, Flags: flags, Payload: payload}, nil
}

// WriteFrame writes a complete frame to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}
