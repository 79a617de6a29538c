package optimizer

import (
	"github.com/pkg/errors"

	"github.com/freshet/freshet/physical"
)

const defaultMaxIterations = 128

// TransformArgs carries driver-level settings into transforms. Individual
// transforms are free to ignore it.
type TransformArgs struct {
	MaxIterations      int
	DisabledTransforms []string
}

func (args TransformArgs) disabled(name string) bool {
	for _, disabled := range args.DisabledTransforms {
		if disabled == name {
			return true
		}
	}
	return false
}

// Transform is a single optimization pass over a plan. It mutates the plan
// in place and must be sound: the transformed plan produces the same records
// as the original.
type Transform interface {
	Name() string
	Transform(node *physical.Node, args TransformArgs) error
}

var DefaultTransforms = []Transform{
	NonNullRequirements{},
	FuseFilters{},
	FoldConstantFilter{},
}

// Optimize applies the default transforms repeatedly until the plan stops
// changing or the iteration limit is reached. Plans contain function-valued
// descriptor fields, so change detection compares textual renderings rather
// than the trees themselves.
func Optimize(node *physical.Node, args TransformArgs) error {
	maxIterations := args.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	previous := node.Describe()
	for i := 0; i < maxIterations; i++ {
		for _, transform := range DefaultTransforms {
			if args.disabled(transform.Name()) {
				continue
			}
			if err := transform.Transform(node, args); err != nil {
				return errors.Wrapf(err, "couldn't apply transform %s", transform.Name())
			}
		}
		current := node.Describe()
		if current == previous {
			return nil
		}
		previous = current
	}
	return nil
}
