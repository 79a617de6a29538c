package physical

import (
	"fmt"
	"strings"

	"github.com/freshet/freshet/graph"
)

// Describe renders the plan as indented text. Two plans with equal
// renderings are structurally equal, constant records included, which the
// optimizer driver uses to detect a fixpoint.
func (node *Node) Describe() string {
	return DescribeNode(*node, false).String()
}

func DescribeNode(node Node, withTypeInfo bool) *graph.Node {
	var out *graph.Node
	switch node.NodeType {
	case NodeTypeConstant:
		out = graph.NewNode("constant")
		for i, record := range node.Constant.Records {
			out.AddField(fmt.Sprintf("record_%d", i), record.String())
		}

	case NodeTypeGet:
		out = graph.NewNode("get")
		out.AddField("id", node.Get.ID.String())

	case NodeTypeLet:
		out = graph.NewNode("let")
		out.AddField("binding", BindingID{Scope: BindingScopeLocal, Index: node.Let.LocalIndex}.String())
		out.AddChild("value", DescribeNode(node.Let.Value, withTypeInfo))
		out.AddChild("body", DescribeNode(node.Let.Body, withTypeInfo))

	case NodeTypeProject:
		out = graph.NewNode("project")
		outputStrings := make([]string, len(node.Project.Outputs))
		for i, output := range node.Project.Outputs {
			outputStrings[i] = fmt.Sprint(output)
		}
		out.AddField("outputs", fmt.Sprintf("[%s]", strings.Join(outputStrings, ", ")))
		out.AddChild("source", DescribeNode(node.Project.Source, withTypeInfo))

	case NodeTypeMap:
		out = graph.NewNode("map")
		arity := node.Map.Source.Arity()
		for i := range node.Map.Expressions {
			out.AddChild(node.Schema.Fields[arity+i].Name, DescribeExpr(node.Map.Expressions[i], withTypeInfo))
		}
		out.AddChild("source", DescribeNode(node.Map.Source, withTypeInfo))

	case NodeTypeFlatMap:
		out = graph.NewNode("flat_map")
		out.AddField("function", node.FlatMap.Name)
		for i := range node.FlatMap.Arguments {
			out.AddChild(fmt.Sprintf("arg_%d", i), DescribeExpr(node.FlatMap.Arguments[i], withTypeInfo))
		}
		out.AddChild("source", DescribeNode(node.FlatMap.Source, withTypeInfo))

	case NodeTypeFilter:
		out = graph.NewNode("filter")
		for i := range node.Filter.Predicates {
			out.AddChild(fmt.Sprintf("predicate_%d", i), DescribeExpr(node.Filter.Predicates[i], withTypeInfo))
		}
		out.AddChild("source", DescribeNode(node.Filter.Source, withTypeInfo))

	case NodeTypeJoin:
		out = graph.NewNode("join")
		for i, equivalence := range node.Join.Equivalences {
			exprStrings := make([]string, len(equivalence))
			for j := range equivalence {
				exprStrings[j] = DescribeExpr(equivalence[j], withTypeInfo).Name
			}
			out.AddField(fmt.Sprintf("equivalence_%d", i), fmt.Sprintf("{%s}", strings.Join(exprStrings, " = ")))
		}
		for i := range node.Join.Inputs {
			out.AddChild(fmt.Sprintf("input_%d", i), DescribeNode(node.Join.Inputs[i], withTypeInfo))
		}

	case NodeTypeReduce:
		out = graph.NewNode("reduce")
		for i := range node.Reduce.Key {
			out.AddChild(fmt.Sprintf("key_%d", i), DescribeExpr(node.Reduce.Key[i], withTypeInfo))
		}
		for i := range node.Reduce.Aggregates {
			out.AddChild(node.Reduce.Aggregates[i].Name, DescribeExpr(node.Reduce.AggregateExpressions[i], withTypeInfo))
		}
		out.AddChild("source", DescribeNode(node.Reduce.Source, withTypeInfo))

	case NodeTypeTopK:
		out = graph.NewNode("top_k")
		for i := range node.TopK.OrderByKey {
			out.AddChild(fmt.Sprintf("order_by_%d", i), DescribeExpr(node.TopK.OrderByKey[i], withTypeInfo))
		}
		if node.TopK.Limit != nil {
			out.AddChild("limit", DescribeExpr(*node.TopK.Limit, withTypeInfo))
		}
		out.AddChild("source", DescribeNode(node.TopK.Source, withTypeInfo))

	case NodeTypeNegate:
		out = graph.NewNode("negate")
		out.AddChild("source", DescribeNode(node.Negate.Source, withTypeInfo))

	case NodeTypeThreshold:
		out = graph.NewNode("threshold")
		out.AddChild("source", DescribeNode(node.Threshold.Source, withTypeInfo))

	case NodeTypeUnion:
		out = graph.NewNode("union")
		out.AddChild("base", DescribeNode(node.Union.Base, withTypeInfo))
		for i := range node.Union.Inputs {
			out.AddChild(fmt.Sprintf("input_%d", i), DescribeNode(node.Union.Inputs[i], withTypeInfo))
		}

	case NodeTypeArrangeBy:
		out = graph.NewNode("arrange_by")
		for i, key := range node.ArrangeBy.Keys {
			exprStrings := make([]string, len(key))
			for j := range key {
				exprStrings[j] = DescribeExpr(key[j], withTypeInfo).Name
			}
			out.AddField(fmt.Sprintf("key_%d", i), fmt.Sprintf("[%s]", strings.Join(exprStrings, ", ")))
		}
		out.AddChild("source", DescribeNode(node.ArrangeBy.Source, withTypeInfo))

	default:
		panic("unexhaustive node type match")
	}

	if withTypeInfo {
		fieldStrings := make([]string, len(node.Schema.Fields))
		for i, field := range node.Schema.Fields {
			fieldStrings[i] = fmt.Sprintf("%s: %s", field.Name, field.Type)
		}
		out.AddField("schema", strings.Join(fieldStrings, ", "))
	}

	return out
}

func DescribeExpr(expr Expression, withTypeInfo bool) *graph.Node {
	var out *graph.Node
	switch expr.ExpressionType {
	case ExpressionTypeColumn:
		out = graph.NewNode(fmt.Sprintf("#%d", expr.Column.Index))

	case ExpressionTypeConstant:
		out = graph.NewNode(expr.Constant.Value.String())

	case ExpressionTypeFunctionCall:
		out = graph.NewNode(expr.FunctionCall.Name)
		for i := range expr.FunctionCall.Arguments {
			out.AddChild(fmt.Sprintf("arg_%d", i), DescribeExpr(expr.FunctionCall.Arguments[i], withTypeInfo))
		}

	case ExpressionTypeAnd:
		out = graph.NewNode("and")
		for i := range expr.And.Arguments {
			out.AddChild(fmt.Sprintf("arg_%d", i), DescribeExpr(expr.And.Arguments[i], withTypeInfo))
		}

	case ExpressionTypeOr:
		out = graph.NewNode("or")
		for i := range expr.Or.Arguments {
			out.AddChild(fmt.Sprintf("arg_%d", i), DescribeExpr(expr.Or.Arguments[i], withTypeInfo))
		}

	case ExpressionTypeIf:
		out = graph.NewNode("if")
		out.AddChild("cond", DescribeExpr(*expr.If.Cond, withTypeInfo))
		out.AddChild("then", DescribeExpr(*expr.If.Then, withTypeInfo))
		out.AddChild("else", DescribeExpr(*expr.If.Else, withTypeInfo))

	default:
		panic("unexhaustive expression type match")
	}

	if withTypeInfo {
		out.AddField("type", expr.Type.String())
	}

	return out
}
