package scriptutil

import (
	"errors"
	"strings"
)

// ParsedArgs is the immutable result of a successful parse: every declared
// flag, option and positional bound to a typed value by its lookup key.
type ParsedArgs struct {
	values map[string]any
}

// Get returns the raw value for key and whether key was declared
func (a *ParsedArgs) Get(key string) (value any, ok bool) {
	value, ok = a.values[key]
	return value, ok
}

// String returns the string bound to key; it panics if key was never
// declared, which is a programming error rather than a usage error.
func (a *ParsedArgs) String(key string) string {
	return argValue[string](a, key)
}

// Int returns the int bound to key
func (a *ParsedArgs) Int(key string) int {
	return argValue[int](a, key)
}

// Float returns the float64 bound to key
func (a *ParsedArgs) Float(key string) float64 {
	return argValue[float64](a, key)
}

// Bool returns the bool bound to key
func (a *ParsedArgs) Bool(key string) bool {
	return argValue[bool](a, key)
}

// Strings returns the token sequence bound to a variadic positional
func (a *ParsedArgs) Strings(key string) []string {
	return argValue[[]string](a, key)
}

func argValue[T any](a *ParsedArgs, key string) T {
	raw, ok := a.values[key]
	if !ok {
		panic("scriptutil: argument '" + key + "' was never declared")
	}
	value, ok := raw.(T)
	if !ok {
		panic("scriptutil: argument '" + key + "' does not have the requested type")
	}
	return value
}

// Parse validates tokens against the spec and returns the typed results.
// Any failure is a UsageError carrying a usage summary; it occurs before
// any user logic runs. The spec is consumed: a second Parse is a
// configuration error.
func (s *ArgSpec) Parse(tokens []string) (parsed *ParsedArgs, err error) {
	var positionals []string
	values := make(map[string]any)

	if s.consumed {
		err = WithErr(NewErr(ErrSpecConsumed), ErrConfiguration)
		goto end
	}
	s.consumed = true

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		// A bare "--" ends flag processing; the rest are positionals.
		if token == "--" {
			positionals = append(positionals, tokens[i+1:]...)
			break
		}
		if !strings.HasPrefix(token, "-") || token == "-" {
			positionals = append(positionals, token)
			continue
		}

		name, inline, hasInline := strings.Cut(token, "=")
		def, ok := s.named[name]
		if !ok {
			err = NewErr(ErrUnknownToken, "token", token)
			goto end
		}

		switch def.Kind {
		case FlagArg:
			if hasInline {
				err = NewErr(ErrInvalidValue,
					"flag", def.Name,
					"rule", "flags do not take a value",
				)
				goto end
			}
			values[def.Key] = true
		case OptionArg:
			var raw string
			switch {
			case hasInline:
				raw = inline
			case i+1 < len(tokens):
				i++
				raw = tokens[i]
			default:
				err = NewErr(ErrInvalidValue,
					"option", def.Name,
					"rule", "option requires a value",
				)
				goto end
			}
			values[def.Key], err = def.CoerceValue(raw)
			if err != nil {
				goto end
			}
		case PositionalArg, UnknownArgKind:
			// Positionals never land in s.named
		}
	}

	// Fill in defaults for absent flags and options
	for _, def := range s.defs {
		if def.Kind == PositionalArg {
			continue
		}
		if _, ok := values[def.Key]; !ok {
			values[def.Key] = def.Default
		}
	}

	err = s.bindPositionals(values, positionals)
	if err != nil {
		goto end
	}
	parsed = &ParsedArgs{values: values}

end:
	if err != nil {
		err = s.usageErr(err)
	}
	return parsed, err
}

// bindPositionals assigns positional tokens to their declared names in
// order, honoring the trailing arity rules.
func (s *ArgSpec) bindPositionals(values map[string]any, tokens []string) (err error) {
	defs := s.positionalDefs()

	for _, def := range defs {
		switch def.Arity {
		case OneArity:
			if len(tokens) == 0 {
				err = NewErr(ErrMissingPositional, "positional", def.Name)
				goto end
			}
			values[def.Key] = tokens[0]
			tokens = tokens[1:]
		case OptionalArity:
			if len(tokens) == 0 {
				values[def.Key] = ""
				continue
			}
			values[def.Key] = tokens[0]
			tokens = tokens[1:]
		case OneOrMoreArity:
			if len(tokens) == 0 {
				err = NewErr(ErrMissingPositional,
					"positional", def.Name,
					"rule", "requires at least one value",
				)
				goto end
			}
			values[def.Key] = tokens
			tokens = nil
		case ZeroOrMoreArity:
			values[def.Key] = tokens
			tokens = nil
		}
	}
	if len(tokens) != 0 {
		err = NewErr(ErrUnknownToken,
			"unexpected_arguments", strings.Join(tokens, " "),
		)
	}
end:
	return err
}

// usageErr wraps parse failures with the usage summary; configuration
// errors pass through untouched so the taxonomy stays intact.
func (s *ArgSpec) usageErr(err error) error {
	if errors.Is(err, ErrConfiguration) {
		return err
	}
	if _, ok := err.(*UsageError); ok {
		return err
	}
	return NewUsageErr(err, s.UsageSummary())
}
