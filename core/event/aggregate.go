package event

// AggregateAllocations sums seats grouped by event id. Events with no
// allocation are simply absent; readers default missing keys to 0.
// Duplicate-id detection is the fetch layer's concern, not this function's.
func AggregateAllocations(allocs []Allocation) map[string]int {
	enrolled := make(map[string]int, len(allocs))
	for _, a := range allocs {
		enrolled[a.EventID] += a.SeatsAllocated
	}
	return enrolled
}
