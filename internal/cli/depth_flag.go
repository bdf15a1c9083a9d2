package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/temirov/tree/internal/tree"
)

const depthFlagTypeName = "depth"

// depthFlagValue accepts a non-negative integer or an unlimited literal such as "inf".
type depthFlagValue struct {
	target *int
}

func (value *depthFlagValue) Set(input string) error {
	parsedDepth, parseError := tree.ParseDepth(input)
	if parseError != nil {
		return parseError
	}
	*value.target = parsedDepth
	return nil
}

func (value *depthFlagValue) String() string {
	if value == nil || value.target == nil {
		return tree.FormatDepth(tree.UnlimitedDepth)
	}
	return tree.FormatDepth(*value.target)
}

func (value *depthFlagValue) Type() string {
	return depthFlagTypeName
}

func registerDepthFlag(flagSet *pflag.FlagSet, target *int, name string, shorthand string, usage string) {
	*target = tree.UnlimitedDepth
	flagSet.VarP(&depthFlagValue{target: target}, name, shorthand, fmt.Sprintf("%s (integer, or inf)", usage))
}
