package optimizer

import (
	"github.com/freshet/freshet/physical"
)

// NonNullRequirements pushes non-null requirements toward sources.
//
// The analysis derives non-null requirements on the columns feeding
// predicates and strict functions: most functions with null arguments are
// themselves null, and a predicate evaluating to null does not pass. The
// requirements are not introduced as constraints; they flow to sources of
// data and restrict constant collections to records satisfying them. The
// main payoff is when null values added in support of outer joins and
// subqueries are later subjected to predicates, letting whole branches
// collapse to the empty collection.
type NonNullRequirements struct{}

func (t NonNullRequirements) Name() string {
	return "nonnull_requirements"
}

func (t NonNullRequirements) Transform(relation *physical.Node, _ TransformArgs) error {
	t.propagate(relation, physical.NewColumnSet(), make(map[physical.BindingID][]physical.ColumnSet))
	return nil
}

// propagate pushes the requirement that columns be non-null at relation's
// output down toward its sources. Ownership of columns passes to the callee;
// branches that fan out clone it. bindings accumulates the requirement set
// observed at each Get, one entry per reference, resolved by the enclosing
// Let.
func (t NonNullRequirements) propagate(relation *physical.Node, columns physical.ColumnSet, bindings map[physical.BindingID][]physical.ColumnSet) {
	switch relation.NodeType {
	case physical.NodeTypeConstant:
		records := relation.Constant.Records[:0]
		for _, record := range relation.Constant.Records {
			keep := true
			for column := range columns {
				if record.Values[column].IsNull() {
					keep = false
					break
				}
			}
			if keep {
				records = append(records, record)
			}
		}
		relation.Constant.Records = records

	case physical.NodeTypeGet:
		bindings[relation.Get.ID] = append(bindings[relation.Get.ID], columns)

	case physical.NodeTypeLet:
		// Let harvests the requirements from its body and acts on the
		// intersection of the requirements of all corresponding Gets,
		// pushing it at its value.
		id := physical.BindingID{Scope: physical.BindingScopeLocal, Index: relation.Let.LocalIndex}
		prior, shadowed := bindings[id]
		bindings[id] = nil
		t.propagate(&relation.Let.Body, columns, bindings)
		needs := bindings[id]
		if shadowed {
			bindings[id] = prior
		} else {
			delete(bindings, id)
		}
		if len(needs) > 0 {
			need := needs[len(needs)-1]
			for _, other := range needs[:len(needs)-1] {
				need.Retain(other)
			}
			t.propagate(&relation.Let.Value, need, bindings)
		}

	case physical.NodeTypeProject:
		newColumns := physical.NewColumnSet()
		for column := range columns {
			newColumns.Add(relation.Project.Outputs[column])
		}
		t.propagate(&relation.Project.Source, newColumns, bindings)

	case physical.NodeTypeMap:
		arity := relation.Map.Source.Arity()
		for column := range columns {
			if column >= arity && relation.Map.Expressions[column-arity].IsLiteralNull() {
				// A null literal defines a required column; no record can
				// satisfy the requirement, so the whole node is empty.
				relation.TakeSafely()
				return
			}
		}
		// Walk the appended columns highest first, so that a required
		// column's requirements reach earlier appended columns it
		// references before those are processed.
		for column := arity + len(relation.Map.Expressions) - 1; column >= arity; column-- {
			if columns.Contains(column) {
				relation.Map.Expressions[column-arity].NonNullRequirements(columns)
			}
			columns.Remove(column)
		}
		t.propagate(&relation.Map.Source, columns, bindings)

	case physical.NodeTypeFlatMap:
		if relation.FlatMap.Descriptor.EmptyOnNullInput {
			for i := range relation.FlatMap.Arguments {
				relation.FlatMap.Arguments[i].NonNullRequirements(columns)
			}
		}
		t.propagate(&relation.FlatMap.Source, columns, bindings)

	case physical.NodeTypeFilter:
		for i := range relation.Filter.Predicates {
			relation.Filter.Predicates[i].NonNullRequirements(columns)
			// TODO: A not(is_null(#c)) predicate could establish a positive
			// non-null fact for #c here instead of only being consulted for
			// its own requirements.
		}
		t.propagate(&relation.Filter.Source, columns, bindings)

	case physical.NodeTypeJoin:
		inputTypes := make([]physical.Schema, len(relation.Join.Inputs))
		for i := range relation.Join.Inputs {
			inputTypes[i] = relation.Join.Inputs[i].Typ()
		}
		inputMapper := physical.NewJoinInputMapper(inputTypes)

		newColumns := inputMapper.SplitColumnSetByInput(columns)

		// Equivalences smear requirements around: a column equated with a
		// required or non-nullable column is itself non-null for matched
		// records.
		for _, equivalence := range relation.Join.Equivalences {
			existsConstraint := false
			for i := range equivalence {
				if equivalence[i].ExpressionType == physical.ExpressionTypeColumn {
					local, input := inputMapper.MapColumnToLocal(equivalence[i].Column.Index)
					if newColumns[input].Contains(local) || !inputTypes[input].Fields[local].Type.Nullable() {
						existsConstraint = true
						break
					}
				}
			}

			if existsConstraint {
				for i := range equivalence {
					if equivalence[i].ExpressionType == physical.ExpressionTypeColumn {
						local, input := inputMapper.MapColumnToLocal(equivalence[i].Column.Index)
						newColumns[input].Add(local)
					}
				}
			}
		}

		for i := range relation.Join.Inputs {
			t.propagate(&relation.Join.Inputs[i], newColumns[i], bindings)
		}

	case physical.NodeTypeReduce:
		// Reduce output columns do not correspond positionally to input
		// columns, so requirements are rebuilt from scratch.
		newColumns := physical.NewColumnSet()
		for column := range columns {
			// No obvious requirements on aggregate columns beyond the sole
			// aggregate case below.
			if column < len(relation.Reduce.Key) {
				relation.Reduce.Key[column].NonNullRequirements(newColumns)
			}
			if column == len(relation.Reduce.Key) && len(relation.Reduce.Aggregates) == 1 {
				relation.Reduce.AggregateExpressions[0].NonNullRequirements(newColumns)
			}
		}
		t.propagate(&relation.Reduce.Source, newColumns, bindings)

	case physical.NodeTypeTopK:
		t.propagate(&relation.TopK.Source, columns, bindings)

	case physical.NodeTypeNegate:
		t.propagate(&relation.Negate.Source, columns, bindings)

	case physical.NodeTypeThreshold:
		t.propagate(&relation.Threshold.Source, columns, bindings)

	case physical.NodeTypeUnion:
		t.propagate(&relation.Union.Base, columns.Clone(), bindings)
		for i := range relation.Union.Inputs {
			t.propagate(&relation.Union.Inputs[i], columns.Clone(), bindings)
		}

	case physical.NodeTypeArrangeBy:
		t.propagate(&relation.ArrangeBy.Source, columns, bindings)

	default:
		panic("unexhaustive node type match")
	}
}
