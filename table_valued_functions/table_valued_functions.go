package table_valued_functions

import (
	"github.com/pkg/errors"

	"github.com/freshet/freshet/freshet"
	"github.com/freshet/freshet/physical"
)

// Repository maps table valued function names to their descriptors.
var Repository = map[string]physical.TableValuedFunctionDescriptor{
	"generate_series": {
		OutputSchema: []physical.SchemaField{
			{Name: "value", Type: freshet.Int},
		},
		EmptyOnNullInput: true,
	},
	"split": {
		OutputSchema: []physical.SchemaField{
			{Name: "part", Type: freshet.String},
		},
		EmptyOnNullInput: true,
	},
	// unnest_outer produces a single all-null record for a null list, so a
	// null input does not empty its output.
	"unnest_outer": {
		OutputSchema: []physical.SchemaField{
			{Name: "element", Type: freshet.TypeSum(freshet.Any, freshet.Null)},
		},
		EmptyOnNullInput: false,
	},
}

func Get(name string) (physical.TableValuedFunctionDescriptor, error) {
	descriptor, ok := Repository[name]
	if !ok {
		return physical.TableValuedFunctionDescriptor{}, errors.Errorf("no table valued function '%s' found", name)
	}
	return descriptor, nil
}
