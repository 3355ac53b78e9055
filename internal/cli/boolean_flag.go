package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	switchTypeName           = "bool"
	switchImplicitValue      = "true"
	switchAcceptedLiterals   = "true, false, yes, no, on, off, 1, 0"
	switchLiteralErrorFormat = "accepted values are %s"
	longFlagPrefix           = "--"
	shortFlagPrefix          = "-"
	endOfFlagsMarker         = "--"
)

var switchLiterals = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "n": false, "off": false,
}

// parseSwitch reads a yes/no style literal. A blank literal means true, as
// for a bare "-d".
func parseSwitch(literal string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(literal))
	if normalized == "" {
		return true, true
	}
	value, known := switchLiterals[normalized]
	return value, known
}

// switchValue is a pflag.Value for on/off options such as --only-valid.
type switchValue struct {
	target *bool
}

func (value switchValue) Set(input string) error {
	parsed, known := parseSwitch(input)
	if !known {
		return fmt.Errorf(switchLiteralErrorFormat, switchAcceptedLiterals)
	}
	*value.target = parsed
	return nil
}

func (value switchValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value switchValue) Type() string {
	return switchTypeName
}

// registerBooleanFlag adds an on/off flag that may be given bare or with a
// literal, as in "-d", "--only-valid=no" or "-d off".
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	*target = defaultValue
	flag := flagSet.VarPF(switchValue{target: target}, name, shorthand, usage)
	flag.DefValue = strconv.FormatBool(defaultValue)
	flag.NoOptDefVal = switchImplicitValue
}

// normalizeBooleanFlagArguments rewrites "-d no" as "--only-valid=no".
// pflag would otherwise take the literal for a stray positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	spellings := switchSpellings(command)
	if len(spellings) == 0 {
		return arguments
	}
	rewritten := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == endOfFlagsMarker {
			return append(rewritten, arguments[index:]...)
		}
		name, isSwitch := spellings[argument]
		if isSwitch && index+1 < len(arguments) && !strings.HasPrefix(arguments[index+1], shortFlagPrefix) {
			if _, known := parseSwitch(arguments[index+1]); known && strings.TrimSpace(arguments[index+1]) != "" {
				rewritten = append(rewritten, longFlagPrefix+name+"="+arguments[index+1])
				index++
				continue
			}
		}
		rewritten = append(rewritten, argument)
	}
	return rewritten
}

// switchSpellings maps "--name" and "-x" of every on/off flag in the
// command tree to the flag's long name.
func switchSpellings(command *cobra.Command) map[string]string {
	spellings := map[string]string{}
	var collect func(*cobra.Command)
	collect = func(current *cobra.Command) {
		record := func(flag *pflag.Flag) {
			if flag.Value.Type() != switchTypeName {
				return
			}
			spellings[longFlagPrefix+flag.Name] = flag.Name
			if flag.Shorthand != "" {
				spellings[shortFlagPrefix+flag.Shorthand] = flag.Name
			}
		}
		current.PersistentFlags().VisitAll(record)
		current.Flags().VisitAll(record)
		for _, child := range current.Commands() {
			collect(child)
		}
	}
	if command != nil {
		collect(command)
	}
	return spellings
}
