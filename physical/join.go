package physical

import (
	"fmt"
)

// JoinInputMapper translates between the global column numbering of a join's
// output (the concatenation of all input columns in order) and the local
// numbering of each input.
type JoinInputMapper struct {
	arities []int
	offsets []int
	total   int
}

func NewJoinInputMapper(inputTypes []Schema) JoinInputMapper {
	arities := make([]int, len(inputTypes))
	offsets := make([]int, len(inputTypes))
	total := 0
	for i := range inputTypes {
		arities[i] = len(inputTypes[i].Fields)
		offsets[i] = total
		total += arities[i]
	}
	return JoinInputMapper{
		arities: arities,
		offsets: offsets,
		total:   total,
	}
}

// Total is the number of global columns.
func (mapper JoinInputMapper) Total() int {
	return mapper.total
}

// MapColumnToLocal maps a global column index to its local index and the
// input owning it.
func (mapper JoinInputMapper) MapColumnToLocal(column int) (local int, input int) {
	if column < 0 || column >= mapper.total {
		panic(fmt.Sprintf("global column index %d out of range for join with %d columns", column, mapper.total))
	}
	input = len(mapper.offsets) - 1
	for mapper.offsets[input] > column {
		input--
	}
	return column - mapper.offsets[input], input
}

// MapColumnToGlobal maps a local column index of the given input to the
// global numbering.
func (mapper JoinInputMapper) MapColumnToGlobal(local int, input int) int {
	if local < 0 || local >= mapper.arities[input] {
		panic(fmt.Sprintf("local column index %d out of range for join input %d with %d columns", local, input, mapper.arities[input]))
	}
	return mapper.offsets[input] + local
}

// SplitColumnSetByInput splits a set of global columns into one set of local
// columns per input.
func (mapper JoinInputMapper) SplitColumnSetByInput(columns ColumnSet) []ColumnSet {
	out := make([]ColumnSet, len(mapper.arities))
	for i := range out {
		out[i] = NewColumnSet()
	}
	for column := range columns {
		local, input := mapper.MapColumnToLocal(column)
		out[input].Add(local)
	}
	return out
}
