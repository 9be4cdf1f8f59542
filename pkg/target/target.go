// Package target provides render targets for a fiber.Root.
//
// A target receives every committed fiber output. Targets in this package
// persist or forward a snapshot of each commit in the binary format of
// package protocol:
//
//   - Memory keeps snapshots in memory (tests, the demo command)
//   - SQL stores the latest snapshot per fiber in a database/sql table
//   - S3 stores the latest snapshot per fiber as an S3 object
//   - Stream broadcasts commit frames to WebSocket clients
//   - Multi fans out to several targets
package target

import (
	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/protocol"
)

// Record converts a commit to its wire record.
func Record(c fiber.Commit) *protocol.CommitRecord {
	return &protocol.CommitRecord{
		Seq:       c.Seq,
		Fiber:     uint64(c.Fiber),
		Parent:    uint64(c.Parent),
		Component: c.Component,
		Key:       c.Key,
		Node:      protocol.NodeToWire(c.Node),
	}
}

// Encode returns the binary encoding of a commit record.
func Encode(c fiber.Commit) []byte {
	e := protocol.NewEncoder()
	protocol.EncodeCommit(e, Record(c))
	return e.Bytes()
}

// Decode decodes a record produced by Encode.
func Decode(data []byte) (*protocol.CommitRecord, error) {
	return protocol.DecodeCommit(protocol.NewDecoder(data))
}
