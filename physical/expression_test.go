package physical

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshet/freshet/freshet"
)

var testAdd = FunctionDescriptor{
	ArgumentTypes: []freshet.Type{freshet.Int, freshet.Int},
	OutputType:    freshet.Int,
	Strict:        true,
	Function: func(values []freshet.Value) (freshet.Value, error) {
		return freshet.NewInt(values[0].Int + values[1].Int), nil
	},
}

var testIsNull = FunctionDescriptor{
	ArgumentTypes: []freshet.Type{freshet.Any},
	OutputType:    freshet.Boolean,
	Strict:        false,
	Function: func(values []freshet.Value) (freshet.Value, error) {
		return freshet.NewBoolean(values[0].IsNull()), nil
	},
}

var testFail = FunctionDescriptor{
	ArgumentTypes: []freshet.Type{freshet.Int},
	OutputType:    freshet.Int,
	Strict:        true,
	Function: func(values []freshet.Value) (freshet.Value, error) {
		return freshet.ZeroValue, errors.Errorf("boom")
	},
}

func TestExpressionNonNullRequirements(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want []int
	}{
		{
			name: "column",
			expr: NewColumn(3, freshet.Int),
			want: []int{3},
		},
		{
			name: "constant",
			expr: NewConstant(freshet.NewInt(42)),
			want: []int{},
		},
		{
			name: "strict function call",
			expr: NewFunctionCall("+", testAdd, []Expression{
				NewColumn(0, freshet.Int),
				NewColumn(2, freshet.Int),
			}),
			want: []int{0, 2},
		},
		{
			name: "non-strict function call",
			expr: NewFunctionCall("is_null", testIsNull, []Expression{
				NewColumn(0, freshet.Int),
			}),
			want: []int{},
		},
		{
			name: "nested strict calls",
			expr: NewFunctionCall("+", testAdd, []Expression{
				NewFunctionCall("+", testAdd, []Expression{
					NewColumn(1, freshet.Int),
					NewColumn(4, freshet.Int),
				}),
				NewColumn(0, freshet.Int),
			}),
			want: []int{0, 1, 4},
		},
		{
			name: "non-strict call shields nested columns",
			expr: NewFunctionCall("is_null", testIsNull, []Expression{
				NewFunctionCall("+", testAdd, []Expression{
					NewColumn(0, freshet.Int),
					NewColumn(1, freshet.Int),
				}),
			}),
			want: []int{},
		},
		{
			name: "and contributes nothing",
			expr: Expression{
				Type:           freshet.Boolean,
				ExpressionType: ExpressionTypeAnd,
				And: &And{Arguments: []Expression{
					NewColumn(0, freshet.Boolean),
					NewColumn(1, freshet.Boolean),
				}},
			},
			want: []int{},
		},
		{
			name: "or contributes nothing",
			expr: Expression{
				Type:           freshet.Boolean,
				ExpressionType: ExpressionTypeOr,
				Or: &Or{Arguments: []Expression{
					NewColumn(0, freshet.Boolean),
				}},
			},
			want: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := NewColumnSet()
			tt.expr.NonNullRequirements(columns)
			assert.Equal(t, tt.want, columns.Slice())
		})
	}
}

func TestExpressionNonNullRequirements_Accumulates(t *testing.T) {
	columns := NewColumnSet(7)
	expr := NewColumn(1, freshet.Int)
	expr.NonNullRequirements(columns)
	assert.Equal(t, []int{1, 7}, columns.Slice())
}

func TestIsLiteralNull(t *testing.T) {
	assert.True(t, func() bool { e := NewConstant(freshet.NewNull()); return e.IsLiteralNull() }())
	assert.False(t, func() bool { e := NewConstant(freshet.NewInt(0)); return e.IsLiteralNull() }())
	assert.False(t, func() bool { e := NewColumn(0, freshet.Null); return e.IsLiteralNull() }())
}

func TestExpressionEvaluate(t *testing.T) {
	values := []freshet.Value{freshet.NewInt(2), freshet.NewInt(3), freshet.NewNull()}

	tests := []struct {
		name    string
		expr    Expression
		want    freshet.Value
		wantErr bool
	}{
		{
			name: "column",
			expr: NewColumn(1, freshet.Int),
			want: freshet.NewInt(3),
		},
		{
			name: "constant",
			expr: NewConstant(freshet.NewInt(42)),
			want: freshet.NewInt(42),
		},
		{
			name: "strict function",
			expr: NewFunctionCall("+", testAdd, []Expression{
				NewColumn(0, freshet.Int),
				NewColumn(1, freshet.Int),
			}),
			want: freshet.NewInt(5),
		},
		{
			name: "strict function short-circuits on null",
			expr: NewFunctionCall("+", testAdd, []Expression{
				NewColumn(0, freshet.Int),
				NewColumn(2, freshet.Int),
			}),
			want: freshet.NewNull(),
		},
		{
			name: "non-strict function receives null",
			expr: NewFunctionCall("is_null", testIsNull, []Expression{
				NewColumn(2, freshet.Any),
			}),
			want: freshet.NewBoolean(true),
		},
		{
			name: "function error",
			expr: NewFunctionCall("fail", testFail, []Expression{
				NewColumn(0, freshet.Int),
			}),
			wantErr: true,
		},
		{
			name: "and with false dominates null",
			expr: Expression{
				Type:           freshet.Boolean,
				ExpressionType: ExpressionTypeAnd,
				And: &And{Arguments: []Expression{
					NewConstant(freshet.NewNull()),
					NewConstant(freshet.NewBoolean(false)),
				}},
			},
			want: freshet.NewBoolean(false),
		},
		{
			name: "and with null and true is null",
			expr: Expression{
				Type:           freshet.Boolean,
				ExpressionType: ExpressionTypeAnd,
				And: &And{Arguments: []Expression{
					NewConstant(freshet.NewNull()),
					NewConstant(freshet.NewBoolean(true)),
				}},
			},
			want: freshet.NewNull(),
		},
		{
			name: "or with true dominates null",
			expr: Expression{
				Type:           freshet.Boolean,
				ExpressionType: ExpressionTypeOr,
				Or: &Or{Arguments: []Expression{
					NewConstant(freshet.NewNull()),
					NewConstant(freshet.NewBoolean(true)),
				}},
			},
			want: freshet.NewBoolean(true),
		},
		{
			name: "or with null and false is null",
			expr: Expression{
				Type:           freshet.Boolean,
				ExpressionType: ExpressionTypeOr,
				Or: &Or{Arguments: []Expression{
					NewConstant(freshet.NewNull()),
					NewConstant(freshet.NewBoolean(false)),
				}},
			},
			want: freshet.NewNull(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.expr.Evaluate(values)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpressionEvaluate_If(t *testing.T) {
	ifExpr := func(cond Expression) Expression {
		return Expression{
			Type:           freshet.Int,
			ExpressionType: ExpressionTypeIf,
			If: &If{
				Cond: &cond,
				Then: &Expression{Type: freshet.Int, ExpressionType: ExpressionTypeConstant, Constant: &ExpressionConstant{Value: freshet.NewInt(1)}},
				Else: &Expression{Type: freshet.Int, ExpressionType: ExpressionTypeConstant, Constant: &ExpressionConstant{Value: freshet.NewInt(2)}},
			},
		}
	}

	exprTrue := ifExpr(NewConstant(freshet.NewBoolean(true)))
	got, err := exprTrue.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, freshet.NewInt(1), got)

	exprFalse := ifExpr(NewConstant(freshet.NewBoolean(false)))
	got, err = exprFalse.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, freshet.NewInt(2), got)

	// A null condition selects the else branch.
	exprNull := ifExpr(NewConstant(freshet.NewNull()))
	got, err = exprNull.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, freshet.NewInt(2), got)
}
