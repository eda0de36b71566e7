package processors

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// interval is a closed range of integers or char code points.
type interval struct {
	lo, hi int64
}

func (i interval) isEmpty() bool {
	return i.lo > i.hi
}

func (i interval) isSingleton() bool {
	return i.lo == i.hi
}

func (i interval) contains(o interval) bool {
	return i.lo <= o.lo && o.hi <= i.hi
}

func (i interval) intersect(o interval) (interval, bool) {
	r := interval{max(i.lo, o.lo), min(i.hi, o.hi)}
	return r, !r.isEmpty()
}

func (i interval) format(char bool) string {
	if i.isSingleton() {
		return formatPoint(i.lo, char)
	}
	return fmt.Sprintf("%s..=%s", formatPoint(i.lo, char), formatPoint(i.hi, char))
}

func formatPoint(v int64, char bool) string {
	if char {
		return strconv.QuoteRune(rune(v))
	}
	return strconv.FormatInt(v, 10)
}

var (
	intDomain  = []interval{{math.MinInt64, math.MaxInt64}}
	charDomain = []interval{{0, 0xD7FF}, {0xE000, 0x10FFFF}}
)

func domainOf(char bool) []interval {
	if char {
		return charDomain
	}
	return intDomain
}

// clip returns the parts of i that lie inside domain.
func clip(domain []interval, i interval) []interval {
	var result []interval
	for _, d := range domain {
		if r, ok := d.intersect(i); ok {
			result = append(result, r)
		}
	}
	return result
}

// splitDomain cuts every part of domain at the edges of cuts. Each resulting
// piece is either contained in or disjoint from every cut.
func splitDomain(domain []interval, cuts []interval) []interval {
	points := make([]int64, 0, len(cuts)*2)
	for _, c := range cuts {
		if c.isEmpty() {
			continue
		}
		points = append(points, c.lo)
		if c.hi < math.MaxInt64 {
			points = append(points, c.hi+1)
		}
	}
	slices.Sort(points)
	points = slices.Compact(points)

	var result []interval
	for _, d := range domain {
		if d.isEmpty() {
			continue
		}
		start := d.lo
		idx, _ := slices.BinarySearch(points, d.lo+1)
		if d.lo == math.MaxInt64 {
			idx = len(points)
		}
		for ; idx < len(points) && points[idx] <= d.hi; idx++ {
			result = append(result, interval{start, points[idx] - 1})
			start = points[idx]
		}
		result = append(result, interval{start, d.hi})
	}
	return result
}

// representative picks the value a witness shows for piece: the value next to
// the covered neighbour where there is one, zero or 'a' when the piece
// contains it, the lower bound otherwise.
func representative(piece interval, char bool) int64 {
	domain := domainOf(char)
	atMin := piece.lo == domain[0].lo
	atMax := piece.hi == domain[len(domain)-1].hi
	if atMin && !atMax {
		return piece.hi
	}
	natural := int64(0)
	if char {
		natural = 'a'
	}
	if piece.contains(interval{natural, natural}) {
		return natural
	}
	return piece.lo
}
