package physical

import (
	"fmt"

	"github.com/freshet/freshet/freshet"
)

type Expression struct {
	Type freshet.Type

	ExpressionType ExpressionType
	// Only one of the below may be non-null.
	Column       *Column
	Constant     *ExpressionConstant
	FunctionCall *FunctionCall
	And          *And
	Or           *Or
	If           *If
}

type ExpressionType int

const (
	ExpressionTypeColumn ExpressionType = iota
	ExpressionTypeConstant
	ExpressionTypeFunctionCall
	ExpressionTypeAnd
	ExpressionTypeOr
	ExpressionTypeIf
)

type Column struct {
	Index int
}

type ExpressionConstant struct {
	Value freshet.Value
}

type FunctionCall struct {
	Name       string
	Arguments  []Expression
	Descriptor FunctionDescriptor
}

type And struct {
	Arguments []Expression
}

type Or struct {
	Arguments []Expression
}

type If struct {
	Cond *Expression
	Then *Expression
	Else *Expression
}

func NewColumn(index int, t freshet.Type) Expression {
	return Expression{
		Type:           t,
		ExpressionType: ExpressionTypeColumn,
		Column: &Column{
			Index: index,
		},
	}
}

func NewConstant(value freshet.Value) Expression {
	return Expression{
		Type:           value.Type,
		ExpressionType: ExpressionTypeConstant,
		Constant: &ExpressionConstant{
			Value: value,
		},
	}
}

func NewFunctionCall(name string, descriptor FunctionDescriptor, arguments []Expression) Expression {
	return Expression{
		Type:           descriptor.OutputType,
		ExpressionType: ExpressionTypeFunctionCall,
		FunctionCall: &FunctionCall{
			Name:       name,
			Arguments:  arguments,
			Descriptor: descriptor,
		},
	}
}

// NonNullRequirements adds to columns the indices of all input columns which
// must be non-null for this expression's result to be non-null. Functions
// with Strict descriptors return null whenever any argument is null, so their
// arguments' requirements are included; and/or/if may produce non-null
// results from null inputs and contribute nothing.
func (expr *Expression) NonNullRequirements(columns ColumnSet) {
	switch expr.ExpressionType {
	case ExpressionTypeColumn:
		columns.Add(expr.Column.Index)
	case ExpressionTypeConstant:
	case ExpressionTypeFunctionCall:
		if expr.FunctionCall.Descriptor.Strict {
			for i := range expr.FunctionCall.Arguments {
				expr.FunctionCall.Arguments[i].NonNullRequirements(columns)
			}
		}
	case ExpressionTypeAnd:
	case ExpressionTypeOr:
	case ExpressionTypeIf:
	default:
		panic("unexhaustive expression type match")
	}
}

// IsLiteralNull tells whether this expression is a constant null.
func (expr *Expression) IsLiteralNull() bool {
	return expr.ExpressionType == ExpressionTypeConstant && expr.Constant.Value.IsNull()
}

// Evaluate computes the expression over a single record. Column indices
// reference the record's values directly.
func (expr *Expression) Evaluate(values []freshet.Value) (freshet.Value, error) {
	switch expr.ExpressionType {
	case ExpressionTypeColumn:
		if expr.Column.Index >= len(values) {
			panic(fmt.Sprintf("column index %d out of range for record of width %d", expr.Column.Index, len(values)))
		}
		return values[expr.Column.Index], nil

	case ExpressionTypeConstant:
		return expr.Constant.Value, nil

	case ExpressionTypeFunctionCall:
		arguments := make([]freshet.Value, len(expr.FunctionCall.Arguments))
		for i := range expr.FunctionCall.Arguments {
			argument, err := expr.FunctionCall.Arguments[i].Evaluate(values)
			if err != nil {
				return freshet.ZeroValue, fmt.Errorf("couldn't evaluate argument with index %d of '%s': %w", i, expr.FunctionCall.Name, err)
			}
			arguments[i] = argument
		}
		if expr.FunctionCall.Descriptor.Strict {
			for i := range arguments {
				if arguments[i].IsNull() {
					return freshet.NewNull(), nil
				}
			}
		}
		return expr.FunctionCall.Descriptor.Function(arguments)

	case ExpressionTypeAnd:
		// Three-valued logic: false dominates null.
		sawNull := false
		for i := range expr.And.Arguments {
			value, err := expr.And.Arguments[i].Evaluate(values)
			if err != nil {
				return freshet.ZeroValue, fmt.Errorf("couldn't evaluate 'and' argument with index %d: %w", i, err)
			}
			if value.IsNull() {
				sawNull = true
			} else if !value.Boolean {
				return freshet.NewBoolean(false), nil
			}
		}
		if sawNull {
			return freshet.NewNull(), nil
		}
		return freshet.NewBoolean(true), nil

	case ExpressionTypeOr:
		// Three-valued logic: true dominates null.
		sawNull := false
		for i := range expr.Or.Arguments {
			value, err := expr.Or.Arguments[i].Evaluate(values)
			if err != nil {
				return freshet.ZeroValue, fmt.Errorf("couldn't evaluate 'or' argument with index %d: %w", i, err)
			}
			if value.IsNull() {
				sawNull = true
			} else if value.Boolean {
				return freshet.NewBoolean(true), nil
			}
		}
		if sawNull {
			return freshet.NewNull(), nil
		}
		return freshet.NewBoolean(false), nil

	case ExpressionTypeIf:
		cond, err := expr.If.Cond.Evaluate(values)
		if err != nil {
			return freshet.ZeroValue, fmt.Errorf("couldn't evaluate 'if' condition: %w", err)
		}
		if !cond.IsNull() && cond.Boolean {
			return expr.If.Then.Evaluate(values)
		}
		return expr.If.Else.Evaluate(values)
	}

	panic("unexhaustive expression type match")
}
