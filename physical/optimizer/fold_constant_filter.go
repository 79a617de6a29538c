package optimizer

import (
	"github.com/freshet/freshet/physical"
)

// FoldConstantFilter evaluates filters over constant collections, deleting
// records whose predicates evaluate to false or null and dropping the filter.
// Predicates that fail to evaluate leave the node untouched.
type FoldConstantFilter struct{}

func (t FoldConstantFilter) Name() string {
	return "fold_constant_filter"
}

func (t FoldConstantFilter) Transform(relation *physical.Node, _ TransformArgs) error {
	transformers := &physical.Transformers{
		NodeTransformer: func(node physical.Node) physical.Node {
			if node.NodeType != physical.NodeTypeFilter {
				return node
			}
			if node.Filter.Source.NodeType != physical.NodeTypeConstant {
				return node
			}

			var records []physical.Record
			for _, record := range node.Filter.Source.Constant.Records {
				keep := true
				for i := range node.Filter.Predicates {
					value, err := node.Filter.Predicates[i].Evaluate(record.Values)
					if err != nil {
						return node
					}
					if value.IsNull() || !value.Boolean {
						keep = false
						break
					}
				}
				if keep {
					records = append(records, record)
				}
			}

			return physical.Node{
				Schema:   node.Schema,
				NodeType: physical.NodeTypeConstant,
				Constant: &physical.Constant{
					Records: records,
				},
			}
		},
	}
	*relation = transformers.TransformNode(*relation)
	return nil
}
