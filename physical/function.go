package physical

import (
	"github.com/freshet/freshet/freshet"
)

// FunctionDescriptor describes a single scalar function overload.
// A Strict function returns null whenever any of its arguments is null;
// the function body is only invoked with non-null arguments.
type FunctionDescriptor struct {
	ArgumentTypes []freshet.Type
	OutputType    freshet.Type
	Strict        bool
	Function      func([]freshet.Value) (freshet.Value, error)
}

// TableValuedFunctionDescriptor describes a table valued function used by
// FlatMap. EmptyOnNullInput marks functions which are guaranteed to produce
// zero records whenever any of their arguments is null.
type TableValuedFunctionDescriptor struct {
	OutputSchema     []SchemaField
	EmptyOnNullInput bool
}
