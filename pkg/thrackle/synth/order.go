package synth

import (
	"math"
	"slices"
)

// pathBound is the thrackle number of a path on n vertices.
func pathBound(n int) int {
	if n < 3 {
		return 0
	}
	return (n - 2) * (n - 3) / 2
}

// cycleBound is the thrackle number of a cycle on n vertices.
func cycleBound(n int) int {
	return n * (n - 3) / 2
}

// prefixLength returns the shortest path prefix whose bound reaches k:
// ⌈(5 + √(1 + 8k)) / 2⌉, corrected upwards against rounding.
func prefixLength(k int) int {
	if k == 0 {
		return 0
	}
	n := int(math.Ceil((5 + math.Sqrt(float64(1+8*k))) / 2))
	for pathBound(n) < k {
		n++
	}
	return n
}

// insertionGains lists, for every gap j in order (0 = before the first
// item, len(order) = after the last), how many crossings inserting vertex m
// at j adds once m is joined to m-1 by an arc below the line.
//
// The new arc spans the interval between m-1 and the gap. It crosses an
// earlier arc exactly when that arc has one end strictly inside the interval
// and the other strictly outside. Arcs ending at m-1 are adjacent and never
// cross it. Positions are doubled so a gap sits at an odd coordinate.
func insertionGains(order []int, m int) []int {
	pos := make([]int, m)
	for i, v := range order {
		pos[v] = 2 * i
	}
	p := pos[m-1]
	gains := make([]int, len(order)+1)
	for j := range gains {
		q := 2*j - 1
		lo, hi := min(p, q), max(p, q)
		for a := 0; a+1 < m-1; a++ {
			in := 0
			if pos[a] > lo && pos[a] < hi {
				in++
			}
			if pos[a+1] > lo && pos[a+1] < hi {
				in++
			}
			if in == 1 {
				gains[j]++
			}
		}
	}
	return gains
}

// insertionOrder places vertices m..n-1 one at a time into order so that
// the arcs of the path 0..n-1 cross exactly rem times in total. Larger gains
// are tried first and only one gap per distinct gain is explored; vertex mm
// can add at most mm-2 crossings, which bounds the search.
func insertionOrder(order []int, m, n, rem int) []int {
	if m == n {
		if rem == 0 {
			return order
		}
		return nil
	}
	future := 0
	for mm := m; mm < n; mm++ {
		future += max(0, mm-2)
	}
	if rem < 0 || rem > future {
		return nil
	}

	type candidate struct{ gain, gap int }
	var cands []candidate
	for j, c := range insertionGains(order, m) {
		cands = append(cands, candidate{c, j})
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		if a.gain != b.gain {
			return b.gain - a.gain
		}
		return a.gap - b.gap
	})

	seen := make(map[int]bool)
	for _, c := range cands {
		if c.gain > rem || seen[c.gain] {
			continue
		}
		seen[c.gain] = true
		next := slices.Insert(slices.Clone(order), c.gap, m)
		if res := insertionOrder(next, m+1, n, rem-c.gain); res != nil {
			return res
		}
	}
	return nil
}

// pathOrder returns a left-to-right order of the path 0..n-1 whose arcs,
// drawn below the line, cross exactly k times. Only the shortest prefix that
// can reach k is searched. Each later vertex goes right after its
// predecessor, which adds nothing.
func pathOrder(n, k int) []int {
	if n <= 2 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}
	np := min(max(prefixLength(k), 2), n)
	order := insertionOrder([]int{0, 1}, 2, np, k)
	if order == nil {
		return nil
	}
	for v := np; v < n; v++ {
		order = slices.Insert(order, slices.Index(order, v-1)+1, v)
	}
	return order
}
