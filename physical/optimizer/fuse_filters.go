package optimizer

import (
	"github.com/freshet/freshet/physical"
)

// FuseFilters merges two subsequent filters into one, concatenating their
// predicate lists.
type FuseFilters struct{}

func (t FuseFilters) Name() string {
	return "fuse_filters"
}

func (t FuseFilters) Transform(relation *physical.Node, _ TransformArgs) error {
	transformers := &physical.Transformers{
		NodeTransformer: func(node physical.Node) physical.Node {
			if node.NodeType != physical.NodeTypeFilter {
				return node
			}
			if node.Filter.Source.NodeType != physical.NodeTypeFilter {
				return node
			}
			inner := node.Filter.Source.Filter

			predicates := make([]physical.Expression, 0, len(inner.Predicates)+len(node.Filter.Predicates))
			predicates = append(predicates, inner.Predicates...)
			predicates = append(predicates, node.Filter.Predicates...)

			return physical.Node{
				Schema:   node.Schema,
				NodeType: physical.NodeTypeFilter,
				Filter: &physical.Filter{
					Source:     inner.Source,
					Predicates: predicates,
				},
			}
		},
	}
	*relation = transformers.TransformNode(*relation)
	return nil
}
