package records

import (
	"fmt"
	"strings"
)

// Filter is a composable query predicate rendered into the store's formula
// syntax. Building filters through these constructors instead of string
// interpolation keeps value escaping in one place.
type Filter interface {
	Formula() string
}

type eqFilter struct {
	field string
	value string
}

// Eq matches records whose field equals value exactly.
func Eq(field, value string) Filter {
	return eqFilter{field: field, value: value}
}

func (f eqFilter) Formula() string {
	return fmt.Sprintf("{%s} = %s", f.field, quote(f.value))
}

type containsFilter struct {
	field string
	value string
}

// Contains matches records whose (possibly multi-valued) field contains
// value. Multi-valued fields are joined before the substring test.
func Contains(field, value string) Filter {
	return containsFilter{field: field, value: value}
}

func (f containsFilter) Formula() string {
	return fmt.Sprintf("FIND(%s, ARRAYJOIN({%s}))", quote(f.value), f.field)
}

type compositeFilter struct {
	op      string
	clauses []Filter
}

func And(clauses ...Filter) Filter { return compositeFilter{op: "AND", clauses: clauses} }
func Or(clauses ...Filter) Filter  { return compositeFilter{op: "OR", clauses: clauses} }

func (f compositeFilter) Formula() string {
	if len(f.clauses) == 1 {
		return f.clauses[0].Formula()
	}
	parts := make([]string, 0, len(f.clauses))
	for _, c := range f.clauses {
		parts = append(parts, c.Formula())
	}
	return fmt.Sprintf("%s(%s)", f.op, strings.Join(parts, ","))
}

// quote renders a value as a double-quoted formula literal, escaping
// backslashes and embedded quotes so caller-supplied values cannot break out
// of the literal.
func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
