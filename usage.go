package scriptutil

import (
	"fmt"
	"strings"
)

// UsageSummary synthesizes a one-screen usage message from the declared
// argument set. It is embedded in every UsageError so parse failures are
// self-describing without the script author writing any help text.
func (s *ArgSpec) UsageSummary() string {
	var sb strings.Builder
	var flags, options, positionals []*ArgDef

	for _, def := range s.defs {
		switch def.Kind {
		case FlagArg:
			flags = append(flags, def)
		case OptionArg:
			options = append(options, def)
		case PositionalArg:
			positionals = append(positionals, def)
		case UnknownArgKind:
			// Skip; register never stores these
		}
	}

	sb.WriteString("Usage: ")
	sb.WriteString(s.scriptName)
	if len(flags) > 0 {
		sb.WriteString(" [flags]")
	}
	if len(options) > 0 {
		sb.WriteString(" [options]")
	}
	for _, def := range positionals {
		sb.WriteString(" ")
		sb.WriteString(positionalHint(def))
	}
	sb.WriteString("\n")

	if len(flags) > 0 {
		sb.WriteString("\nFlags:\n")
		for _, def := range flags {
			sb.WriteString(fmt.Sprintf("  %s\n", def.Name))
		}
	}
	if len(options) > 0 {
		sb.WriteString("\nOptions:\n")
		for _, def := range options {
			sb.WriteString(fmt.Sprintf("  %s <%s>  (default: %s)\n",
				def.Name, def.Type, quoteIfNeeded(fmt.Sprintf("%v", def.Default))))
		}
	}
	return sb.String()
}

func positionalHint(def *ArgDef) (hint string) {
	switch def.Arity {
	case OneArity:
		hint = "<" + def.Name + ">"
	case OptionalArity:
		hint = "[" + def.Name + "]"
	case ZeroOrMoreArity:
		hint = "[" + def.Name + "...]"
	case OneOrMoreArity:
		hint = "<" + def.Name + "...>"
	}
	return hint
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		s = fmt.Sprintf("%q", s)
	}
	return s
}
