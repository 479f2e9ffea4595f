package scriptutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mikeschinkel/go-dt"
)

var argNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Option declares a named value argument with a default. The default's
// runtime type fixes the declared type used to coerce any override.
type Option struct {
	Name    string
	Default any
}

// ArgSpec accumulates argument declarations in order. Build it with
// Positionals, Rest, Flags and Options, then hand it to Parse exactly once.
// Construction is single-threaded; after Parse the spec is read-only.
type ArgSpec struct {
	defs       []*ArgDef
	named      map[string]*ArgDef // flags and options by normalized name
	scriptName string
	locked     bool
	consumed   bool
}

func NewArgSpec() *ArgSpec {
	return &ArgSpec{
		named:      make(map[string]*ArgDef),
		scriptName: filepath.Base(os.Args[0]),
	}
}

// SetScriptName overrides the program name shown in usage summaries
func (s *ArgSpec) SetScriptName(name string) {
	s.scriptName = name
}

// Defs returns the declarations in registration order
func (s *ArgSpec) Defs() []*ArgDef {
	return s.defs
}

// Positionals registers one or more single-value positional arguments in
// declaration order. Fails once a variadic positional has locked the spec.
func (s *ArgSpec) Positionals(names ...string) (err error) {
	var errs []error

	if s.locked {
		err = NewErr(ErrSpecLocked, "positionals", strings.Join(names, ","))
		goto end
	}
	for _, name := range names {
		if !argNameRegex.MatchString(name) {
			errs = append(errs, NewErr(dt.ErrInvalidFlagName,
				"positional", name,
				"rule", "must start with a letter or underscore",
			))
			continue
		}
		errs = AppendErr(errs, s.register(&ArgDef{
			Kind:  PositionalArg,
			Name:  name,
			Key:   argKey(name),
			Arity: OneArity,
			Type:  StringType,
		}))
	}
	err = CombineErrs(errs)
end:
	if err != nil {
		err = WithErr(err, ErrConfiguration)
	}
	return err
}

// Rest registers the single trailing positional that soaks up the remaining
// tokens. Arity must be OptionalArity, ZeroOrMoreArity or OneOrMoreArity.
// Registering it locks the spec against further positional declarations.
func (s *ArgSpec) Rest(name string, arity Arity) (err error) {
	switch {
	case s.locked:
		err = NewErr(ErrSpecLocked, "positional", name)
	case arity == OneArity:
		err = NewErr(ErrInvalidArity,
			"positional", name,
			"rule", "use OptionalArity, ZeroOrMoreArity or OneOrMoreArity",
		)
	case !argNameRegex.MatchString(name):
		err = NewErr(dt.ErrInvalidFlagName,
			"positional", name,
			"rule", "must start with a letter or underscore",
		)
	}
	if err != nil {
		goto end
	}
	err = s.register(&ArgDef{
		Kind:  PositionalArg,
		Name:  name,
		Key:   argKey(name),
		Arity: arity,
		Type:  StringType,
	})
	if err != nil {
		goto end
	}
	s.locked = true
end:
	if err != nil {
		err = WithErr(err, ErrConfiguration)
	}
	return err
}

// Flags registers boolean switches: absent means false, present means true.
// Names are normalized per NormalizeArgName.
func (s *ArgSpec) Flags(names ...string) (err error) {
	var errs []error

	for _, name := range names {
		if name == "" {
			errs = append(errs, NewErr(dt.ErrEmpty, "empty_property", "Name"))
			continue
		}
		normalized := NormalizeArgName(name)
		errs = AppendErr(errs, s.register(&ArgDef{
			Kind:    FlagArg,
			Name:    normalized,
			Key:     argKey(normalized),
			Arity:   OneArity,
			Type:    BoolType,
			Default: false,
		}))
	}
	err = CombineErrs(errs)
	if err != nil {
		err = WithErr(err, ErrConfiguration)
	}
	return err
}

// Options registers named value arguments with defaults. The same name
// normalization as Flags applies.
func (s *ArgSpec) Options(opts ...Option) (err error) {
	var errs []error

	for _, opt := range opts {
		if opt.Name == "" {
			errs = append(errs, NewErr(dt.ErrEmpty, "empty_property", "Name"))
			continue
		}
		vt, err := ValueTypeOf(opt.Default)
		if err != nil {
			errs = append(errs, WithErr(err, "option", opt.Name))
			continue
		}
		normalized := NormalizeArgName(opt.Name)
		errs = AppendErr(errs, s.register(&ArgDef{
			Kind:    OptionArg,
			Name:    normalized,
			Key:     argKey(normalized),
			Arity:   OneArity,
			Type:    vt,
			Default: opt.Default,
		}))
	}
	err = CombineErrs(errs)
	if err != nil {
		err = WithErr(err, ErrConfiguration)
	}
	return err
}

func (s *ArgSpec) register(def *ArgDef) (err error) {
	for _, existing := range s.defs {
		if existing.Key != def.Key {
			continue
		}
		err = NewErr(dt.ErrInvalidDuplicateFlag,
			"name", def.Name,
			"kind", def.Kind,
		)
		goto end
	}
	s.defs = append(s.defs, def)
	if def.Kind != PositionalArg {
		s.named[def.Name] = def
	}
end:
	return err
}

func (s *ArgSpec) positionalDefs() (defs []*ArgDef) {
	for _, def := range s.defs {
		if def.Kind == PositionalArg {
			defs = append(defs, def)
		}
	}
	return defs
}
