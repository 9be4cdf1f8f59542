package protocol

// CommitRecord is the persisted or streamed form of one fiber commit.
type CommitRecord struct {
	Seq       uint64 // Monotonic per root
	Fiber     uint64
	Parent    uint64 // Zero for the root fiber
	Component string
	Key       string
	Node      *NodeWire
}

// UnmountRecord reports that a fiber was destroyed.
type UnmountRecord struct {
	Seq   uint64
	Fiber uint64
}

// EncodeCommit appends the encoding of r to e.
func EncodeCommit(e *Encoder, r *CommitRecord) {
	e.WriteUvarint(r.Seq)
	e.WriteUvarint(r.Fiber)
	e.WriteUvarint(r.Parent)
	e.WriteString(r.Component)
	e.WriteString(r.Key)
	EncodeNode(e, r.Node)
}

// DecodeCommit decodes a record written by EncodeCommit.
func DecodeCommit(d *Decoder) (*CommitRecord, error) {
	var (
		r   CommitRecord
		err error
	)
	if r.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if r.Fiber, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if r.Parent, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if r.Component, err = d.ReadString(); err != nil {
		return nil, err
	}
	if r.Key, err = d.ReadString(); err != nil {
		return nil, err
	}
	if r.Node, err = DecodeNode(d); err != nil {
		return nil, err
	}
	return &r, nil
}

// CommitFrame wraps an encoded commit record in a frame.
func CommitFrame(r *CommitRecord) *Frame {
	e := NewEncoder()
	EncodeCommit(e, r)
	f := NewFrame(FrameCommit, e.Bytes())
	if r.Parent == 0 {
		f.Flags |= FlagRoot
	}
	return f
}

// UnmountFrame wraps an unmount record in a frame.
func UnmountFrame(r *UnmountRecord) *Frame {
	e := NewEncoderBuffer(make([]byte, 0, 20))
	e.WriteUvarint(r.Seq)
	e.WriteUvarint(r.Fiber)
	return NewFrame(FrameUnmount, e.Bytes())
}

// DecodeUnmount decodes the payload of an unmount frame.
func DecodeUnmount(payload []byte) (*UnmountRecord, error) {
	d := NewDecoder(payload)
	var (
		r   UnmountRecord
		err error
	)
	if r.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if r.Fiber, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	return &r, nil
}
