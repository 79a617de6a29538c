package optimizer

import (
	"github.com/freshet/freshet/freshet"
	"github.com/freshet/freshet/functions"
	"github.com/freshet/freshet/physical"
)

func intField(name string) physical.SchemaField {
	return physical.SchemaField{Name: name, Type: freshet.Int}
}

func nullableIntField(name string) physical.SchemaField {
	return physical.SchemaField{Name: name, Type: freshet.TypeSum(freshet.Int, freshet.Null)}
}

func record(values ...freshet.Value) physical.Record {
	return physical.NewRecord(values, 1)
}

func constant(schema physical.Schema, records ...physical.Record) physical.Node {
	return physical.Node{
		Schema:   schema,
		NodeType: physical.NodeTypeConstant,
		Constant: &physical.Constant{
			Records: records,
		},
	}
}

func filter(source physical.Node, predicates ...physical.Expression) physical.Node {
	return physical.Node{
		Schema:   source.Schema,
		NodeType: physical.NodeTypeFilter,
		Filter: &physical.Filter{
			Source:     source,
			Predicates: predicates,
		},
	}
}

func mapNode(source physical.Node, appended []physical.SchemaField, expressions ...physical.Expression) physical.Node {
	fields := make([]physical.SchemaField, 0, len(source.Schema.Fields)+len(appended))
	fields = append(fields, source.Schema.Fields...)
	fields = append(fields, appended...)
	return physical.Node{
		Schema:   physical.NewSchema(fields),
		NodeType: physical.NodeTypeMap,
		Map: &physical.Map{
			Source:      source,
			Expressions: expressions,
		},
	}
}

func get(id physical.BindingID, schema physical.Schema) physical.Node {
	return physical.Node{
		Schema:   schema,
		NodeType: physical.NodeTypeGet,
		Get: &physical.Get{
			ID: id,
		},
	}
}

func let(localIndex int, value, body physical.Node) physical.Node {
	return physical.Node{
		Schema:   body.Schema,
		NodeType: physical.NodeTypeLet,
		Let: &physical.Let{
			LocalIndex: localIndex,
			Value:      value,
			Body:       body,
		},
	}
}

func union(base physical.Node, inputs ...physical.Node) physical.Node {
	return physical.Node{
		Schema:   base.Schema,
		NodeType: physical.NodeTypeUnion,
		Union: &physical.Union{
			Base:   base,
			Inputs: inputs,
		},
	}
}

func col(index int) physical.Expression {
	return physical.NewColumn(index, freshet.Any)
}

func lit(value freshet.Value) physical.Expression {
	return physical.NewConstant(value)
}

func call(name string, arguments ...physical.Expression) physical.Expression {
	descriptor, err := functions.Get(name)
	if err != nil {
		panic(err)
	}
	return physical.NewFunctionCall(name, descriptor, arguments)
}

func greaterThanZero(index int) physical.Expression {
	return call(">", col(index), lit(freshet.NewInt(0)))
}
