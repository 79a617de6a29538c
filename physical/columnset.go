package physical

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnSet is a set of column indices, always interpreted relative to the
// output schema of the node it travels with.
type ColumnSet map[int]struct{}

func NewColumnSet(columns ...int) ColumnSet {
	out := make(ColumnSet, len(columns))
	for _, column := range columns {
		out[column] = struct{}{}
	}
	return out
}

func (set ColumnSet) Add(column int) {
	set[column] = struct{}{}
}

func (set ColumnSet) Remove(column int) {
	delete(set, column)
}

func (set ColumnSet) Contains(column int) bool {
	_, ok := set[column]
	return ok
}

func (set ColumnSet) Len() int {
	return len(set)
}

func (set ColumnSet) Clone() ColumnSet {
	out := make(ColumnSet, len(set))
	for column := range set {
		out[column] = struct{}{}
	}
	return out
}

// Retain removes every column not contained in other.
func (set ColumnSet) Retain(other ColumnSet) {
	for column := range set {
		if !other.Contains(column) {
			delete(set, column)
		}
	}
}

// Slice returns the columns in increasing order.
func (set ColumnSet) Slice() []int {
	out := make([]int, 0, len(set))
	for column := range set {
		out = append(out, column)
	}
	sort.Ints(out)
	return out
}

func (set ColumnSet) String() string {
	columns := set.Slice()
	columnStrings := make([]string, len(columns))
	for i, column := range columns {
		columnStrings[i] = fmt.Sprint(column)
	}
	return fmt.Sprintf("{%s}", strings.Join(columnStrings, ", "))
}
