package protocol

// MaxNodeDepth limits the nesting depth of decoded node snapshots.
const MaxNodeDepth = 256

// checkDepth fails once current passes max.
func checkDepth(current, max int) error {
	if current > max {
		return ErrMaxDepthExceeded
	}
	return nil
}
