package physical

type Transformers struct {
	NodeTransformer       func(node Node) Node
	ExpressionTransformer func(expr Expression) Expression
}

// TransformNode rebuilds the plan bottom-up, applying the transformers on
// the way back up.
func (t *Transformers) TransformNode(node Node) Node {
	var out Node
	switch node.NodeType {
	case NodeTypeConstant:
		records := make([]Record, len(node.Constant.Records))
		copy(records, node.Constant.Records)
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Constant: &Constant{
				Records: records,
			},
		}

	case NodeTypeGet:
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Get: &Get{
				ID: node.Get.ID,
			},
		}

	case NodeTypeLet:
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Let: &Let{
				LocalIndex: node.Let.LocalIndex,
				Value:      t.TransformNode(node.Let.Value),
				Body:       t.TransformNode(node.Let.Body),
			},
		}

	case NodeTypeProject:
		outputs := make([]int, len(node.Project.Outputs))
		copy(outputs, node.Project.Outputs)
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Project: &Project{
				Source:  t.TransformNode(node.Project.Source),
				Outputs: outputs,
			},
		}

	case NodeTypeMap:
		expressions := make([]Expression, len(node.Map.Expressions))
		for i := range node.Map.Expressions {
			expressions[i] = t.TransformExpr(node.Map.Expressions[i])
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Map: &Map{
				Source:      t.TransformNode(node.Map.Source),
				Expressions: expressions,
			},
		}

	case NodeTypeFlatMap:
		arguments := make([]Expression, len(node.FlatMap.Arguments))
		for i := range node.FlatMap.Arguments {
			arguments[i] = t.TransformExpr(node.FlatMap.Arguments[i])
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			FlatMap: &FlatMap{
				Source:     t.TransformNode(node.FlatMap.Source),
				Name:       node.FlatMap.Name,
				Descriptor: node.FlatMap.Descriptor,
				Arguments:  arguments,
			},
		}

	case NodeTypeFilter:
		predicates := make([]Expression, len(node.Filter.Predicates))
		for i := range node.Filter.Predicates {
			predicates[i] = t.TransformExpr(node.Filter.Predicates[i])
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Filter: &Filter{
				Source:     t.TransformNode(node.Filter.Source),
				Predicates: predicates,
			},
		}

	case NodeTypeJoin:
		inputs := make([]Node, len(node.Join.Inputs))
		for i := range node.Join.Inputs {
			inputs[i] = t.TransformNode(node.Join.Inputs[i])
		}
		equivalences := make([][]Expression, len(node.Join.Equivalences))
		for i := range node.Join.Equivalences {
			equivalences[i] = make([]Expression, len(node.Join.Equivalences[i]))
			for j := range node.Join.Equivalences[i] {
				equivalences[i][j] = t.TransformExpr(node.Join.Equivalences[i][j])
			}
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Join: &Join{
				Inputs:       inputs,
				Equivalences: equivalences,
			},
		}

	case NodeTypeReduce:
		key := make([]Expression, len(node.Reduce.Key))
		for i := range node.Reduce.Key {
			key[i] = t.TransformExpr(node.Reduce.Key[i])
		}
		aggregates := make([]Aggregate, len(node.Reduce.Aggregates))
		copy(aggregates, node.Reduce.Aggregates)
		aggregateExpressions := make([]Expression, len(node.Reduce.AggregateExpressions))
		for i := range node.Reduce.AggregateExpressions {
			aggregateExpressions[i] = t.TransformExpr(node.Reduce.AggregateExpressions[i])
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Reduce: &Reduce{
				Source:               t.TransformNode(node.Reduce.Source),
				Key:                  key,
				Aggregates:           aggregates,
				AggregateExpressions: aggregateExpressions,
			},
		}

	case NodeTypeTopK:
		groupKey := make([]int, len(node.TopK.GroupKey))
		copy(groupKey, node.TopK.GroupKey)
		orderByKey := make([]Expression, len(node.TopK.OrderByKey))
		for i := range node.TopK.OrderByKey {
			orderByKey[i] = t.TransformExpr(node.TopK.OrderByKey[i])
		}
		directionMultipliers := make([]int, len(node.TopK.OrderByDirectionMultipliers))
		copy(directionMultipliers, node.TopK.OrderByDirectionMultipliers)
		var limit *Expression
		if node.TopK.Limit != nil {
			transformed := t.TransformExpr(*node.TopK.Limit)
			limit = &transformed
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			TopK: &TopK{
				Source:                      t.TransformNode(node.TopK.Source),
				GroupKey:                    groupKey,
				OrderByKey:                  orderByKey,
				OrderByDirectionMultipliers: directionMultipliers,
				Limit:                       limit,
			},
		}

	case NodeTypeNegate:
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Negate: &Negate{
				Source: t.TransformNode(node.Negate.Source),
			},
		}

	case NodeTypeThreshold:
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Threshold: &Threshold{
				Source: t.TransformNode(node.Threshold.Source),
			},
		}

	case NodeTypeUnion:
		inputs := make([]Node, len(node.Union.Inputs))
		for i := range node.Union.Inputs {
			inputs[i] = t.TransformNode(node.Union.Inputs[i])
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			Union: &Union{
				Base:   t.TransformNode(node.Union.Base),
				Inputs: inputs,
			},
		}

	case NodeTypeArrangeBy:
		keys := make([][]Expression, len(node.ArrangeBy.Keys))
		for i := range node.ArrangeBy.Keys {
			keys[i] = make([]Expression, len(node.ArrangeBy.Keys[i]))
			for j := range node.ArrangeBy.Keys[i] {
				keys[i][j] = t.TransformExpr(node.ArrangeBy.Keys[i][j])
			}
		}
		out = Node{
			Schema:   node.Schema,
			NodeType: node.NodeType,
			ArrangeBy: &ArrangeBy{
				Source: t.TransformNode(node.ArrangeBy.Source),
				Keys:   keys,
			},
		}

	default:
		panic("unexhaustive node type match")
	}

	if t.NodeTransformer != nil {
		out = t.NodeTransformer(out)
	}

	return out
}

func (t *Transformers) TransformExpr(expr Expression) Expression {
	var out Expression
	switch expr.ExpressionType {
	case ExpressionTypeColumn:
		out = Expression{
			Type:           expr.Type,
			ExpressionType: expr.ExpressionType,
			Column: &Column{
				Index: expr.Column.Index,
			},
		}

	case ExpressionTypeConstant:
		out = Expression{
			Type:           expr.Type,
			ExpressionType: expr.ExpressionType,
			Constant: &ExpressionConstant{
				Value: expr.Constant.Value,
			},
		}

	case ExpressionTypeFunctionCall:
		arguments := make([]Expression, len(expr.FunctionCall.Arguments))
		for i := range expr.FunctionCall.Arguments {
			arguments[i] = t.TransformExpr(expr.FunctionCall.Arguments[i])
		}
		out = Expression{
			Type:           expr.Type,
			ExpressionType: expr.ExpressionType,
			FunctionCall: &FunctionCall{
				Name:       expr.FunctionCall.Name,
				Arguments:  arguments,
				Descriptor: expr.FunctionCall.Descriptor,
			},
		}

	case ExpressionTypeAnd:
		arguments := make([]Expression, len(expr.And.Arguments))
		for i := range expr.And.Arguments {
			arguments[i] = t.TransformExpr(expr.And.Arguments[i])
		}
		out = Expression{
			Type:           expr.Type,
			ExpressionType: expr.ExpressionType,
			And: &And{
				Arguments: arguments,
			},
		}

	case ExpressionTypeOr:
		arguments := make([]Expression, len(expr.Or.Arguments))
		for i := range expr.Or.Arguments {
			arguments[i] = t.TransformExpr(expr.Or.Arguments[i])
		}
		out = Expression{
			Type:           expr.Type,
			ExpressionType: expr.ExpressionType,
			Or: &Or{
				Arguments: arguments,
			},
		}

	case ExpressionTypeIf:
		cond := t.TransformExpr(*expr.If.Cond)
		then := t.TransformExpr(*expr.If.Then)
		els := t.TransformExpr(*expr.If.Else)
		out = Expression{
			Type:           expr.Type,
			ExpressionType: expr.ExpressionType,
			If: &If{
				Cond: &cond,
				Then: &then,
				Else: &els,
			},
		}

	default:
		panic("unexhaustive expression type match")
	}

	if t.ExpressionTransformer != nil {
		out = t.ExpressionTransformer(out)
	}

	return out
}
