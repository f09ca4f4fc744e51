package records

// Capacities are the per-bucket limits of the three index families.
type Capacities struct {
	Owner  int
	Group  int
	Status int
}

func DefaultCapacities() Capacities {
	return Capacities{
		Owner:  1_000,
		Group:  10_000,
		Status: 10_000,
	}
}
