package kernel

// Timestamp is a logical clock value, such as the block number of the call that
// created or mutated a record.
type Timestamp uint64

// Max returns the later of t and other. Aggregates use it so updated_at never
// moves backwards when a clock is reset.
func (t Timestamp) Max(other Timestamp) Timestamp {
	if other > t {
		return other
	}
	return t
}
