package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/freshet/freshet/freshet"
	"github.com/freshet/freshet/functions"
	"github.com/freshet/freshet/physical"
	"github.com/freshet/freshet/table_valued_functions"
)

// ParsePlan decodes a JSON plan document into a physical plan. Every node
// carries its output schema explicitly; expressions reference columns by
// index.
func ParsePlan(data []byte) (physical.Node, error) {
	value, err := fastjson.ParseBytes(data)
	if err != nil {
		return physical.Node{}, errors.Wrap(err, "couldn't parse plan json")
	}
	return parseNode(value)
}

func parseNode(value *fastjson.Value) (physical.Node, error) {
	nodeType := string(value.GetStringBytes("node"))
	if nodeType == "" {
		return physical.Node{}, errors.Errorf("plan node is missing the 'node' discriminator")
	}

	schema, err := parseSchema(value.Get("schema"))
	if err != nil {
		return physical.Node{}, errors.Wrapf(err, "couldn't parse schema of %s node", nodeType)
	}

	out := physical.Node{Schema: schema}

	switch nodeType {
	case "constant":
		var records []physical.Record
		for i, recordValue := range value.GetArray("records") {
			record, err := parseRecord(recordValue, len(schema.Fields))
			if err != nil {
				return physical.Node{}, errors.Wrapf(err, "couldn't parse record with index %d", i)
			}
			records = append(records, record)
		}
		out.NodeType = physical.NodeTypeConstant
		out.Constant = &physical.Constant{Records: records}

	case "get":
		id, err := parseBindingID(string(value.GetStringBytes("id")))
		if err != nil {
			return physical.Node{}, err
		}
		out.NodeType = physical.NodeTypeGet
		out.Get = &physical.Get{ID: id}

	case "let":
		letValue, err := parseNode(value.Get("value"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse let value")
		}
		body, err := parseNode(value.Get("body"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse let body")
		}
		out.NodeType = physical.NodeTypeLet
		out.Let = &physical.Let{
			LocalIndex: value.GetInt("binding"),
			Value:      letValue,
			Body:       body,
		}

	case "project":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse project source")
		}
		var outputs []int
		for _, outputValue := range value.GetArray("outputs") {
			output, err := outputValue.Int()
			if err != nil {
				return physical.Node{}, errors.Wrap(err, "couldn't parse project output index")
			}
			outputs = append(outputs, output)
		}
		out.NodeType = physical.NodeTypeProject
		out.Project = &physical.Project{Source: source, Outputs: outputs}

	case "map":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse map source")
		}
		expressions, err := parseExpressions(value.GetArray("expressions"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse map expressions")
		}
		out.NodeType = physical.NodeTypeMap
		out.Map = &physical.Map{Source: source, Expressions: expressions}

	case "flat_map":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse flat_map source")
		}
		name := string(value.GetStringBytes("function"))
		descriptor, err := table_valued_functions.Get(name)
		if err != nil {
			return physical.Node{}, err
		}
		arguments, err := parseExpressions(value.GetArray("arguments"))
		if err != nil {
			return physical.Node{}, errors.Wrapf(err, "couldn't parse arguments of '%s'", name)
		}
		out.NodeType = physical.NodeTypeFlatMap
		out.FlatMap = &physical.FlatMap{
			Source:     source,
			Name:       name,
			Descriptor: descriptor,
			Arguments:  arguments,
		}

	case "filter":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse filter source")
		}
		predicates, err := parseExpressions(value.GetArray("predicates"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse filter predicates")
		}
		out.NodeType = physical.NodeTypeFilter
		out.Filter = &physical.Filter{Source: source, Predicates: predicates}

	case "join":
		var inputs []physical.Node
		for i, inputValue := range value.GetArray("inputs") {
			input, err := parseNode(inputValue)
			if err != nil {
				return physical.Node{}, errors.Wrapf(err, "couldn't parse join input with index %d", i)
			}
			inputs = append(inputs, input)
		}
		var equivalences [][]physical.Expression
		for i, classValue := range value.GetArray("equivalences") {
			class, err := parseExpressions(classValue.GetArray())
			if err != nil {
				return physical.Node{}, errors.Wrapf(err, "couldn't parse equivalence class with index %d", i)
			}
			equivalences = append(equivalences, class)
		}
		out.NodeType = physical.NodeTypeJoin
		out.Join = &physical.Join{Inputs: inputs, Equivalences: equivalences}

	case "reduce":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse reduce source")
		}
		key, err := parseExpressions(value.GetArray("key"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse reduce key")
		}
		var aggregates []physical.Aggregate
		var aggregateExpressions []physical.Expression
		for i, aggregateValue := range value.GetArray("aggregates") {
			expression, err := parseExpression(aggregateValue.Get("expression"))
			if err != nil {
				return physical.Node{}, errors.Wrapf(err, "couldn't parse aggregate expression with index %d", i)
			}
			aggregates = append(aggregates, physical.Aggregate{
				Name:       string(aggregateValue.GetStringBytes("name")),
				OutputType: expression.Type,
			})
			aggregateExpressions = append(aggregateExpressions, expression)
		}
		out.NodeType = physical.NodeTypeReduce
		out.Reduce = &physical.Reduce{
			Source:               source,
			Key:                  key,
			Aggregates:           aggregates,
			AggregateExpressions: aggregateExpressions,
		}

	case "top_k":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse top_k source")
		}
		orderByKey, err := parseExpressions(value.GetArray("order_by"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse top_k order_by")
		}
		directionMultipliers := make([]int, len(orderByKey))
		for i := range directionMultipliers {
			directionMultipliers[i] = 1
		}
		var limit *physical.Expression
		if value.Exists("limit") {
			limitExpression, err := parseExpression(value.Get("limit"))
			if err != nil {
				return physical.Node{}, errors.Wrap(err, "couldn't parse top_k limit")
			}
			limit = &limitExpression
		}
		out.NodeType = physical.NodeTypeTopK
		out.TopK = &physical.TopK{
			Source:                      source,
			OrderByKey:                  orderByKey,
			OrderByDirectionMultipliers: directionMultipliers,
			Limit:                       limit,
		}

	case "negate":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse negate source")
		}
		out.NodeType = physical.NodeTypeNegate
		out.Negate = &physical.Negate{Source: source}

	case "threshold":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse threshold source")
		}
		out.NodeType = physical.NodeTypeThreshold
		out.Threshold = &physical.Threshold{Source: source}

	case "union":
		base, err := parseNode(value.Get("base"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse union base")
		}
		var inputs []physical.Node
		for i, inputValue := range value.GetArray("inputs") {
			input, err := parseNode(inputValue)
			if err != nil {
				return physical.Node{}, errors.Wrapf(err, "couldn't parse union input with index %d", i)
			}
			inputs = append(inputs, input)
		}
		out.NodeType = physical.NodeTypeUnion
		out.Union = &physical.Union{Base: base, Inputs: inputs}

	case "arrange_by":
		source, err := parseNode(value.Get("source"))
		if err != nil {
			return physical.Node{}, errors.Wrap(err, "couldn't parse arrange_by source")
		}
		var keys [][]physical.Expression
		for i, keyValue := range value.GetArray("keys") {
			key, err := parseExpressions(keyValue.GetArray())
			if err != nil {
				return physical.Node{}, errors.Wrapf(err, "couldn't parse arrange_by key with index %d", i)
			}
			keys = append(keys, key)
		}
		out.NodeType = physical.NodeTypeArrangeBy
		out.ArrangeBy = &physical.ArrangeBy{Source: source, Keys: keys}

	default:
		return physical.Node{}, errors.Errorf("unknown plan node type '%s'", nodeType)
	}

	return out, nil
}

func parseSchema(value *fastjson.Value) (physical.Schema, error) {
	if value == nil {
		return physical.Schema{}, errors.Errorf("missing schema")
	}
	var fields []physical.SchemaField
	for i, fieldValue := range value.GetArray() {
		t, err := parseType(string(fieldValue.GetStringBytes("type")))
		if err != nil {
			return physical.Schema{}, errors.Wrapf(err, "couldn't parse type of field with index %d", i)
		}
		fields = append(fields, physical.SchemaField{
			Name: string(fieldValue.GetStringBytes("name")),
			Type: t,
		})
	}
	return physical.NewSchema(fields), nil
}

func parseType(name string) (freshet.Type, error) {
	nullable := strings.HasSuffix(name, "?")
	base := strings.TrimSuffix(name, "?")

	var t freshet.Type
	switch base {
	case "NULL":
		t = freshet.Null
	case "Int":
		t = freshet.Int
	case "Float":
		t = freshet.Float
	case "Boolean":
		t = freshet.Boolean
	case "String":
		t = freshet.String
	case "Time":
		t = freshet.Time
	case "Duration":
		t = freshet.Duration
	case "Any":
		t = freshet.Any
	default:
		return freshet.Type{}, errors.Errorf("unknown type '%s'", name)
	}

	if nullable {
		t = freshet.TypeSum(t, freshet.Null)
	}
	return t, nil
}

func parseBindingID(id string) (physical.BindingID, error) {
	var scope physical.BindingScope
	switch {
	case strings.HasPrefix(id, "l"):
		scope = physical.BindingScopeLocal
	case strings.HasPrefix(id, "g"):
		scope = physical.BindingScopeGlobal
	default:
		return physical.BindingID{}, errors.Errorf("invalid binding id '%s'", id)
	}
	var index int
	for _, digit := range id[1:] {
		if digit < '0' || digit > '9' {
			return physical.BindingID{}, errors.Errorf("invalid binding id '%s'", id)
		}
		index = index*10 + int(digit-'0')
	}
	return physical.BindingID{Scope: scope, Index: index}, nil
}

func parseRecord(value *fastjson.Value, arity int) (physical.Record, error) {
	valuesArray := value.GetArray("values")
	if len(valuesArray) != arity {
		return physical.Record{}, errors.Errorf("record has %d values, schema has %d fields", len(valuesArray), arity)
	}
	values := make([]freshet.Value, len(valuesArray))
	for i := range valuesArray {
		parsed, err := parseValue(valuesArray[i])
		if err != nil {
			return physical.Record{}, errors.Wrapf(err, "couldn't parse value with index %d", i)
		}
		values[i] = parsed
	}
	multiplicity := 1
	if value.Exists("multiplicity") {
		multiplicity = value.GetInt("multiplicity")
	}
	return physical.NewRecord(values, multiplicity), nil
}

func parseValue(value *fastjson.Value) (freshet.Value, error) {
	switch value.Type() {
	case fastjson.TypeNull:
		return freshet.NewNull(), nil
	case fastjson.TypeTrue:
		return freshet.NewBoolean(true), nil
	case fastjson.TypeFalse:
		return freshet.NewBoolean(false), nil
	case fastjson.TypeNumber:
		f := value.GetFloat64()
		if f == float64(int(f)) {
			return freshet.NewInt(int(f)), nil
		}
		return freshet.NewFloat(f), nil
	case fastjson.TypeString:
		return freshet.NewString(string(value.GetStringBytes())), nil
	case fastjson.TypeArray:
		array := value.GetArray()
		elements := make([]freshet.Value, len(array))
		for i := range array {
			element, err := parseValue(array[i])
			if err != nil {
				return freshet.ZeroValue, errors.Wrapf(err, "couldn't parse list element with index %d", i)
			}
			elements[i] = element
		}
		return freshet.NewList(elements), nil
	}
	return freshet.ZeroValue, errors.Errorf("unsupported value: %s", value.String())
}

func parseExpressions(values []*fastjson.Value) ([]physical.Expression, error) {
	var out []physical.Expression
	for i := range values {
		expression, err := parseExpression(values[i])
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse expression with index %d", i)
		}
		out = append(out, expression)
	}
	return out, nil
}

func parseExpression(value *fastjson.Value) (physical.Expression, error) {
	if value == nil {
		return physical.Expression{}, errors.Errorf("missing expression")
	}

	switch {
	case value.Exists("column"):
		t := freshet.Any
		if value.Exists("type") {
			parsed, err := parseType(string(value.GetStringBytes("type")))
			if err != nil {
				return physical.Expression{}, err
			}
			t = parsed
		}
		return physical.NewColumn(value.GetInt("column"), t), nil

	case value.Exists("constant"):
		constant, err := parseValue(value.Get("constant"))
		if err != nil {
			return physical.Expression{}, errors.Wrap(err, "couldn't parse constant")
		}
		return physical.NewConstant(constant), nil

	case value.Exists("call"):
		name := string(value.GetStringBytes("call"))
		descriptor, err := functions.Get(name)
		if err != nil {
			return physical.Expression{}, err
		}
		arguments, err := parseExpressions(value.GetArray("args"))
		if err != nil {
			return physical.Expression{}, errors.Wrapf(err, "couldn't parse arguments of '%s'", name)
		}
		return physical.NewFunctionCall(name, descriptor, arguments), nil

	case value.Exists("and"):
		arguments, err := parseExpressions(value.GetArray("and"))
		if err != nil {
			return physical.Expression{}, errors.Wrap(err, "couldn't parse 'and' arguments")
		}
		return physical.Expression{
			Type:           freshet.Boolean,
			ExpressionType: physical.ExpressionTypeAnd,
			And:            &physical.And{Arguments: arguments},
		}, nil

	case value.Exists("or"):
		arguments, err := parseExpressions(value.GetArray("or"))
		if err != nil {
			return physical.Expression{}, errors.Wrap(err, "couldn't parse 'or' arguments")
		}
		return physical.Expression{
			Type:           freshet.Boolean,
			ExpressionType: physical.ExpressionTypeOr,
			Or:             &physical.Or{Arguments: arguments},
		}, nil

	case value.Exists("if"):
		ifValue := value.Get("if")
		cond, err := parseExpression(ifValue.Get("cond"))
		if err != nil {
			return physical.Expression{}, errors.Wrap(err, "couldn't parse 'if' condition")
		}
		then, err := parseExpression(ifValue.Get("then"))
		if err != nil {
			return physical.Expression{}, errors.Wrap(err, "couldn't parse 'then' branch")
		}
		els, err := parseExpression(ifValue.Get("else"))
		if err != nil {
			return physical.Expression{}, errors.Wrap(err, "couldn't parse 'else' branch")
		}
		return physical.Expression{
			Type:           freshet.TypeSum(then.Type, els.Type),
			ExpressionType: physical.ExpressionTypeIf,
			If:             &physical.If{Cond: &cond, Then: &then, Else: &els},
		}, nil
	}

	return physical.Expression{}, errors.Errorf("unrecognized expression: %s", value.String())
}
