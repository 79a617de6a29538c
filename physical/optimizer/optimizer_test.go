package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshet/freshet/freshet"
	"github.com/freshet/freshet/physical"
)

func TestFuseFilters(t *testing.T) {
	source := constant(
		physical.NewSchema([]physical.SchemaField{intField("a"), intField("b")}),
		record(freshet.NewInt(1), freshet.NewInt(2)),
	)
	plan := filter(filter(source, greaterThanZero(0)), greaterThanZero(1))

	require.NoError(t, FuseFilters{}.Transform(&plan, TransformArgs{}))

	require.Equal(t, physical.NodeTypeFilter, plan.NodeType)
	require.Equal(t, physical.NodeTypeConstant, plan.Filter.Source.NodeType)
	// Inner predicates come first.
	require.Len(t, plan.Filter.Predicates, 2)
	assert.Equal(t, 0, plan.Filter.Predicates[0].FunctionCall.Arguments[0].Column.Index)
	assert.Equal(t, 1, plan.Filter.Predicates[1].FunctionCall.Arguments[0].Column.Index)
}

func TestFuseFilters_Chain(t *testing.T) {
	source := constant(
		physical.NewSchema([]physical.SchemaField{intField("a")}),
		record(freshet.NewInt(1)),
	)
	plan := filter(filter(filter(source, greaterThanZero(0)), greaterThanZero(0)), greaterThanZero(0))

	require.NoError(t, FuseFilters{}.Transform(&plan, TransformArgs{}))

	// The bottom-up walk collapses the whole chain in one pass.
	require.Equal(t, physical.NodeTypeFilter, plan.NodeType)
	require.Equal(t, physical.NodeTypeConstant, plan.Filter.Source.NodeType)
	assert.Len(t, plan.Filter.Predicates, 3)
}

func TestFoldConstantFilter(t *testing.T) {
	schema := physical.NewSchema([]physical.SchemaField{nullableIntField("a")})

	tests := []struct {
		name      string
		predicate physical.Expression
		records   []physical.Record
		want      []physical.Record
	}{
		{
			name:      "false predicates drop records",
			predicate: greaterThanZero(0),
			records: []physical.Record{
				record(freshet.NewInt(-1)),
				record(freshet.NewInt(1)),
			},
			want: []physical.Record{
				record(freshet.NewInt(1)),
			},
		},
		{
			name:      "null predicates drop records",
			predicate: greaterThanZero(0),
			records: []physical.Record{
				record(freshet.NewNull()),
				record(freshet.NewInt(1)),
			},
			want: []physical.Record{
				record(freshet.NewInt(1)),
			},
		},
		{
			name:      "non-strict predicate sees nulls",
			predicate: call("is_null", col(0)),
			records: []physical.Record{
				record(freshet.NewNull()),
				record(freshet.NewInt(1)),
			},
			want: []physical.Record{
				record(freshet.NewNull()),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := filter(constant(schema, tt.records...), tt.predicate)

			require.NoError(t, FoldConstantFilter{}.Transform(&plan, TransformArgs{}))

			require.Equal(t, physical.NodeTypeConstant, plan.NodeType)
			assert.Equal(t, tt.want, plan.Constant.Records)
			assert.Equal(t, schema, plan.Schema)
		})
	}
}

func TestFoldConstantFilter_EvaluationErrorLeavesNodeUntouched(t *testing.T) {
	schema := physical.NewSchema([]physical.SchemaField{intField("a")})
	plan := filter(
		constant(schema, record(freshet.NewInt(1))),
		call("=", call("/", col(0), lit(freshet.NewInt(0))), lit(freshet.NewInt(1))),
	)

	require.NoError(t, FoldConstantFilter{}.Transform(&plan, TransformArgs{}))

	require.Equal(t, physical.NodeTypeFilter, plan.NodeType)
	assert.Len(t, plan.Filter.Source.Constant.Records, 1)
}

func TestOptimize_FixedPoint(t *testing.T) {
	// The null-requiring filter lets the nonnull pass prune the constant,
	// then constant folding removes the filter entirely.
	source := constant(
		physical.NewSchema([]physical.SchemaField{nullableIntField("a"), nullableIntField("b")}),
		record(freshet.NewInt(1), freshet.NewInt(2)),
		record(freshet.NewNull(), freshet.NewInt(2)),
		record(freshet.NewInt(-1), freshet.NewNull()),
	)
	plan := filter(
		filter(source, greaterThanZero(0)),
		greaterThanZero(1),
	)

	require.NoError(t, Optimize(&plan, TransformArgs{}))

	require.Equal(t, physical.NodeTypeConstant, plan.NodeType)
	assert.Equal(t, []physical.Record{
		record(freshet.NewInt(1), freshet.NewInt(2)),
	}, plan.Constant.Records)
}

func TestOptimize_DisabledTransform(t *testing.T) {
	source := constant(
		physical.NewSchema([]physical.SchemaField{intField("a")}),
		record(freshet.NewInt(1)),
	)
	plan := filter(filter(source, greaterThanZero(0)), greaterThanZero(0))

	require.NoError(t, Optimize(&plan, TransformArgs{
		DisabledTransforms: []string{"fuse_filters", "fold_constant_filter"},
	}))

	// With fusion and folding disabled the filter chain survives.
	require.Equal(t, physical.NodeTypeFilter, plan.NodeType)
	assert.Equal(t, physical.NodeTypeFilter, plan.Filter.Source.NodeType)
}

func TestOptimize_IterationLimit(t *testing.T) {
	source := constant(
		physical.NewSchema([]physical.SchemaField{intField("a")}),
		record(freshet.NewInt(1)),
	)
	plan := filter(source, greaterThanZero(0))

	// A limit of one still runs every transform once.
	require.NoError(t, Optimize(&plan, TransformArgs{MaxIterations: 1}))

	require.Equal(t, physical.NodeTypeConstant, plan.NodeType)
}
