package deps

import (
	"fmt"

	"github.com/vango-dev/reconciler/pkg/protocol"
)

// Value tags prefix each encoded value so that, for example, the int 1 and
// the string "\x01" never encode to the same bytes.
const (
	tagNil byte = iota
	tagBool
	tagInt
	tagUint
	tagFloat
	tagString
	tagBytes
	tagOther
)

// Of returns a canonical byte encoding of values, suitable as a hook
// dependency. Integers, unsigned integers, floats, booleans, strings, byte
// slices and nil have exact encodings. Other values are encoded through
// their fmt %#v form prefixed by their type, which is only canonical for
// values whose printed form is.
func Of(values ...any) []byte {
	return AppendOf(nil, values...)
}

// AppendOf appends the encoding of values to dst and returns the extended
// buffer. Reusing dst across renders avoids allocating a fresh dependency
// slice each time.
func AppendOf(dst []byte, values ...any) []byte {
	e := protocol.NewEncoderBuffer(dst)
	for _, v := range values {
		encodeValue(e, v)
	}
	return e.Bytes()
}

func encodeValue(e *protocol.Encoder, v any) {
	switch x := v.(type) {
	case nil:
		e.WriteByte(tagNil)
	case bool:
		e.WriteByte(tagBool)
		e.WriteBool(x)
	case int:
		writeInt(e, int64(x))
	case int8:
		writeInt(e, int64(x))
	case int16:
		writeInt(e, int64(x))
	case int32:
		writeInt(e, int64(x))
	case int64:
		writeInt(e, x)
	case uint:
		writeUint(e, uint64(x))
	case uint8:
		writeUint(e, uint64(x))
	case uint16:
		writeUint(e, uint64(x))
	case uint32:
		writeUint(e, uint64(x))
	case uint64:
		writeUint(e, x)
	case uintptr:
		writeUint(e, uint64(x))
	case float32:
		e.WriteByte(tagFloat)
		e.WriteFloat64(float64(x))
	case float64:
		e.WriteByte(tagFloat)
		e.WriteFloat64(x)
	case string:
		e.WriteByte(tagString)
		e.WriteString(x)
	case []byte:
		e.WriteByte(tagBytes)
		e.WriteLenBytes(x)
	default:
		e.WriteByte(tagOther)
		e.WriteString(fmt.Sprintf("%T:%#v", v, v))
	}
}

func writeInt(e *protocol.Encoder, v int64) {
	e.WriteByte(tagInt)
	e.WriteSvarint(v)
}

func writeUint(e *protocol.Encoder, v uint64) {
	e.WriteByte(tagUint)
	e.WriteUvarint(v)
}
