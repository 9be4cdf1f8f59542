// Package protocol implements the binary encoding used for commit records.
//
// Render targets that persist or stream committed output share one compact
// format: a snapshot of the resolved node tree plus the identity of the
// fiber that produced it. The format uses no reflection and is stable
// across runs, which also makes it suitable as a canonical byte encoding
// for hook dependencies (see package deps).
//
// # Encoding
//
//   - Varint: compact encoding for small integers (protobuf-style)
//   - ZigZag: signed integers encoded as unsigned varints
//   - Length-prefixed: strings and byte arrays prefixed with varint length
//   - Big-endian: fixed-width integers and IEEE 754 floats
//
// # Frames
//
// Records sent over a stream are framed with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// Frame types:
//
//   - FrameCommit (0x01): a committed node snapshot
//   - FrameUnmount (0x02): a fiber was destroyed
//   - FramePing (0x03): keepalive
//   - FrameError (0x04): a render or commit error message
//
// # Limits
//
// Decoders enforce allocation, collection and depth limits so untrusted
// input cannot exhaust memory or the stack.
package protocol
