package functions

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/freshet/freshet/freshet"
	"github.com/freshet/freshet/physical"
)

// Repository maps function names to their descriptors. Strict functions are
// never invoked with null arguments; the evaluator short-circuits them to
// null first.
var Repository = map[string]physical.FunctionDescriptor{
	"+": {
		ArgumentTypes: []freshet.Type{freshet.Int, freshet.Int},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewInt(values[0].Int + values[1].Int), nil
		},
	},
	"-": {
		ArgumentTypes: []freshet.Type{freshet.Int, freshet.Int},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewInt(values[0].Int - values[1].Int), nil
		},
	},
	"*": {
		ArgumentTypes: []freshet.Type{freshet.Int, freshet.Int},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewInt(values[0].Int * values[1].Int), nil
		},
	},
	"/": {
		ArgumentTypes: []freshet.Type{freshet.Int, freshet.Int},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			if values[1].Int == 0 {
				return freshet.ZeroValue, errors.Errorf("division by zero")
			}
			return freshet.NewInt(values[0].Int / values[1].Int), nil
		},
	},
	"neg": {
		ArgumentTypes: []freshet.Type{freshet.Int},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewInt(-values[0].Int), nil
		},
	},
	"abs": {
		ArgumentTypes: []freshet.Type{freshet.Int},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			if values[0].Int < 0 {
				return freshet.NewInt(-values[0].Int), nil
			}
			return values[0], nil
		},
	},
	"=": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].Compare(values[1]) == 0), nil
		},
	},
	"!=": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].Compare(values[1]) != 0), nil
		},
	},
	"<": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].Compare(values[1]) < 0), nil
		},
	},
	"<=": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].Compare(values[1]) <= 0), nil
		},
	},
	">": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].Compare(values[1]) > 0), nil
		},
	},
	">=": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].Compare(values[1]) >= 0), nil
		},
	},
	"upper": {
		ArgumentTypes: []freshet.Type{freshet.String},
		OutputType:    freshet.String,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewString(strings.ToUpper(values[0].Str)), nil
		},
	},
	"lower": {
		ArgumentTypes: []freshet.Type{freshet.String},
		OutputType:    freshet.String,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewString(strings.ToLower(values[0].Str)), nil
		},
	},
	"length": {
		ArgumentTypes: []freshet.Type{freshet.String},
		OutputType:    freshet.Int,
		Strict:        true,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewInt(len(values[0].Str)), nil
		},
	},
	// is_null is deliberately not strict; it turns nulls into booleans.
	"is_null": {
		ArgumentTypes: []freshet.Type{freshet.Any},
		OutputType:    freshet.Boolean,
		Strict:        false,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			return freshet.NewBoolean(values[0].IsNull()), nil
		},
	},
	"coalesce": {
		ArgumentTypes: []freshet.Type{freshet.Any, freshet.Any},
		OutputType:    freshet.Any,
		Strict:        false,
		Function: func(values []freshet.Value) (freshet.Value, error) {
			for i := range values {
				if !values[i].IsNull() {
					return values[i], nil
				}
			}
			return freshet.NewNull(), nil
		},
	},
}

func Get(name string) (physical.FunctionDescriptor, error) {
	descriptor, ok := Repository[name]
	if !ok {
		return physical.FunctionDescriptor{}, errors.Errorf("no function '%s' found", name)
	}
	return descriptor, nil
}
