package history

// Timed is a value tagged with the timestamp it was recorded at.
type Timed struct {
	Time  uint64
	Value float64
}

// GetOrAverage returns the entry position places into the past. When that
// entry does not exist it returns the mean of every stored value paired with a
// zero timestamp, placing the fallback as far in the past as possible so that
// recency-weighted consumers give it minimal influence.
func GetOrAverage(q *Queue[Timed], position int) Timed {
	if item, ok := q.Get(position); ok {
		return item
	}
	if q.Empty() {
		return Timed{}
	}

	sum := 0.0
	for pos := 0; pos < q.Size(); pos++ {
		item, _ := q.Get(pos)
		sum += item.Value
	}
	return Timed{Time: 0, Value: sum / float64(q.Size())}
}
