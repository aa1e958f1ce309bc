// Package dominance computes, per RT/RW pair, the most frequent gender among
// residents and the pair's total population.
package dominance

import "strconv"

// UnitKey identifies an RT/RW pair. Aggregation and join must both build keys
// with NewUnitKey.
type UnitKey string

// NewUnitKey joins the decimal forms of rt and rw.
func NewUnitKey(rt, rw int) UnitKey {
	return UnitKey(strconv.Itoa(rt) + "-" + strconv.Itoa(rw))
}

// Resident is the slice of a resident record the aggregation needs.
type Resident struct {
	RT       int
	RW       int
	Category string
}

// Summary is the dominance result for one UnitKey. Count <= Total always holds.
type Summary struct {
	Category string
	Count    int
	Total    int
}

// Table maps each UnitKey seen among residents to its summary. Keys never seen
// are absent.
type Table map[UnitKey]Summary

// Lookup joins a parsed RT/RW pair against the table. Nil codes never match.
func (t Table) Lookup(rt, rw *int) (Summary, bool) {
	if rt == nil || rw == nil {
		return Summary{}, false
	}
	s, ok := t[NewUnitKey(*rt, *rw)]
	return s, ok
}

type categoryCount struct {
	category string
	count    int
}

// unitGroups keeps a UnitKey's categories in first-occurrence order.
type unitGroups struct {
	order []categoryCount
	index map[string]int
}

// Aggregate groups records by (RT, RW, category) and picks, per RT/RW, the
// category with the highest count. Equal counts resolve to the category seen
// first in records.
func Aggregate(records []Resident) Table {
	groups := make(map[UnitKey]*unitGroups)
	for _, r := range records {
		key := NewUnitKey(r.RT, r.RW)
		g, ok := groups[key]
		if !ok {
			g = &unitGroups{index: make(map[string]int)}
			groups[key] = g
		}
		i, ok := g.index[r.Category]
		if !ok {
			i = len(g.order)
			g.index[r.Category] = i
			g.order = append(g.order, categoryCount{category: r.Category})
		}
		g.order[i].count++
	}

	table := make(Table, len(groups))
	for key, g := range groups {
		var s Summary
		for i, cc := range g.order {
			if i == 0 || cc.count > s.Count {
				s.Category = cc.category
				s.Count = cc.count
			}
			s.Total += cc.count
		}
		table[key] = s
	}
	return table
}
