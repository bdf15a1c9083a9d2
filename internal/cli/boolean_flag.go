package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
	argumentTerminator                = "--"
	longFlagPrefix                    = "--"
	shortFlagPrefix                   = "-"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue is a boolean flag that also accepts its value as the next
// argument, as in "--folders-first no".
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%s %q", booleanFlagInvalidValueErrorLabel, input)
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.VarP(&booleanFlagValue{target: target, flagKey: name}, name, shorthand, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins a boolean flag with a literal that
// follows it ("-F no" becomes "--folders-first=no") so pflag does not treat
// the literal as a positional argument. A literal naming an existing
// directory stays positional, so "tree -F on" renders the directory on.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := collectBooleanFlagNames(command)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == argumentTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if flagName, isBoolean := lookupBooleanFlag(booleanFlags, currentArgument); isBoolean && index+1 < len(arguments) {
			nextArgument := arguments[index+1]
			literal := strings.ToLower(strings.TrimSpace(nextArgument))
			if _, valid := booleanFlagLiterals[literal]; valid && !strings.HasPrefix(nextArgument, shortFlagPrefix) && !isExistingDirectory(nextArgument) {
				normalized = append(normalized, fmt.Sprintf("%s%s=%s", longFlagPrefix, flagName, nextArgument))
				index += 2
				continue
			}
		}
		normalized = append(normalized, currentArgument)
		index++
	}
	return normalized
}

// lookupBooleanFlag resolves "--name" or "-x" to the long name of a boolean flag.
func lookupBooleanFlag(booleanFlags map[string]string, argument string) (string, bool) {
	if strings.Contains(argument, "=") {
		return "", false
	}
	var key string
	switch {
	case strings.HasPrefix(argument, longFlagPrefix):
		key = argument
	case strings.HasPrefix(argument, shortFlagPrefix) && len(argument) == 2:
		key = argument
	default:
		return "", false
	}
	flagName, exists := booleanFlags[key]
	return flagName, exists
}

// collectBooleanFlagNames maps "--name" and "-x" spellings of every boolean flag to its long name.
func collectBooleanFlagNames(command *cobra.Command) map[string]string {
	booleanFlags := map[string]string{}
	visit := func(flag *pflag.Flag) {
		if flag == nil || flag.Value == nil || flag.Value.Type() != booleanFlagTypeName {
			return
		}
		booleanFlags[longFlagPrefix+flag.Name] = flag.Name
		if flag.Shorthand != "" {
			booleanFlags[shortFlagPrefix+flag.Shorthand] = flag.Name
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	return booleanFlags
}

func isExistingDirectory(path string) bool {
	info, statError := os.Stat(path)
	return statError == nil && info.IsDir()
}
