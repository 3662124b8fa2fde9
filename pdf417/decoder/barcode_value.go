package decoder

import "sort"

// votes counts how often each value was read for one cell of the symbol.
type votes struct {
	counts map[int]int
}

func (v *votes) add(value int) {
	if v.counts == nil {
		v.counts = make(map[int]int)
	}
	v.counts[value]++
}

// best returns every value sharing the highest count, in ascending order.
func (v *votes) best() []int {
	top := 0
	var out []int
	for value, n := range v.counts {
		switch {
		case n > top:
			top = n
			out = append(out[:0], value)
		case n == top:
			out = append(out, value)
		}
	}
	sort.Ints(out)
	return out
}

func (v *votes) confidence(value int) int {
	return v.counts[value]
}
