package scriptutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeschinkel/go-dt"
)

// ArgKind represents how an argument is bound from the command line
type ArgKind int

const (
	UnknownArgKind ArgKind = iota
	PositionalArg
	FlagArg
	OptionArg
)

func (k ArgKind) String() (s string) {
	switch k {
	case PositionalArg:
		s = "positional"
	case FlagArg:
		s = "flag"
	case OptionArg:
		s = "option"
	case UnknownArgKind:
		s = "unknown"
	}
	return s
}

// Arity represents how many values an argument consumes
type Arity int

const (
	OneArity Arity = iota
	OptionalArity
	ZeroOrMoreArity
	OneOrMoreArity
)

func (a Arity) Variadic() bool {
	return a == ZeroOrMoreArity || a == OneOrMoreArity
}

// ValueType is the declared type an option value is coerced to. It is fixed
// at registration time from the option default's runtime type; coercion
// switches on this enum, never on a runtime value.
type ValueType int

const (
	UnknownValueType ValueType = iota
	StringType
	IntType
	FloatType
	BoolType
)

func (vt ValueType) String() (s string) {
	switch vt {
	case StringType:
		s = "string"
	case IntType:
		s = "int"
	case FloatType:
		s = "float"
	case BoolType:
		s = "bool"
	case UnknownValueType:
		s = "unknown"
	}
	return s
}

// ArgDef defines one argument declaratively. Defs are owned by the ArgSpec
// that registered them and are read-only once parsing begins.
type ArgDef struct {
	Kind    ArgKind
	Name    string // normalized command-line form, e.g. "--venv-name" or "target"
	Key     string // lookup key in ParsedArgs, e.g. "venv-name" or "target"
	Arity   Arity
	Type    ValueType
	Default any
}

// ValueTypeOf maps an option default's runtime type to its declared ValueType
func ValueTypeOf(value any) (vt ValueType, err error) {
	switch value.(type) {
	case string:
		vt = StringType
	case int:
		vt = IntType
	case float64:
		vt = FloatType
	case bool:
		vt = BoolType
	default:
		err = NewErr(
			dt.ErrFlagValidationFailed,
			"rule", "option defaults must be string, int, float64 or bool",
			"default", fmt.Sprintf("%T", value),
		)
	}
	return vt, err
}

// CoerceValue converts a command-line token to the declared type
func (d *ArgDef) CoerceValue(token string) (value any, err error) {
	switch d.Type {
	case StringType:
		value = token
	case IntType:
		value, err = strconv.Atoi(token)
	case FloatType:
		value, err = strconv.ParseFloat(token, 64)
	case BoolType:
		value, err = strconv.ParseBool(token)
	case UnknownValueType:
		err = fmt.Errorf("value type not set for '%s'", d.Name)
	}
	if err != nil {
		err = NewErr(ErrInvalidValue,
			"option", d.Name,
			"value", token,
			"want_type", d.Type,
		)
	}
	return value, err
}

// NormalizeArgName converts a declared flag or option name to its
// command-line form: underscores become dashes, a bare word gains a "--"
// prefix, and any existing leading dash is left alone. Normalizing an
// already-normalized name is a no-op.
func NormalizeArgName(name string) string {
	name = strings.ReplaceAll(name, "_", "-")
	if strings.HasPrefix(name, "-") {
		return name
	}
	return "--" + name
}

// argKey derives the ParsedArgs lookup key from a normalized name
func argKey(name string) string {
	return strings.TrimLeft(name, "-")
}
