package types

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Type identifies the concrete kind of a column. Two join columns can only be
// paired when their Types are identical.
type Type int

const (
	InvalidType Type = iota
	ShortType
	IntType
	LongType
	FloatType
	DoubleType
	BooleanType
	StringType
	TextType
	LocalDateType
	LocalTimeType
	LocalDateTimeType
	InstantType
)

var typeNames = map[Type]string{
	ShortType:         "SHORT",
	IntType:           "INTEGER",
	LongType:          "LONG",
	FloatType:         "FLOAT",
	DoubleType:        "DOUBLE",
	BooleanType:       "BOOLEAN",
	StringType:        "STRING",
	TextType:          "TEXT",
	LocalDateType:     "LOCAL_DATE",
	LocalTimeType:     "LOCAL_TIME",
	LocalDateTimeType: "LOCAL_DATE_TIME",
	InstantType:       "INSTANT",
}

// aliases accepted by ParseType in addition to the canonical names.
var typeAliases = map[string]Type{
	"int16":     ShortType,
	"int":       IntType,
	"int32":     IntType,
	"int64":     LongType,
	"float32":   FloatType,
	"float64":   DoubleType,
	"bool":      BooleanType,
	"date":      LocalDateType,
	"time":      LocalTimeType,
	"datetime":  LocalDateTimeType,
	"timestamp": InstantType,
}

// String returns a string representation of the type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN_TYPE"
}

// IsValid reports whether t is one of the supported column kinds.
func (t Type) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

// AllTypes returns every supported column kind in declaration order.
func AllTypes() []Type {
	all := make([]Type, 0, len(typeNames))
	for t := ShortType; t <= InstantType; t++ {
		all = append(all, t)
	}
	return all
}

// ParseType resolves a kind name such as "integer", "LOCAL_DATE" or "date".
// Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	norm := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == norm {
			return t, nil
		}
	}
	if t, ok := typeAliases[strings.ToLower(norm)]; ok {
		return t, nil
	}
	return InvalidType, errors.Newf("unknown column type %q", name)
}
