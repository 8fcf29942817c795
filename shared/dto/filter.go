package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLess      = "less"
	FilterOperatorGreater   = "greater"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorGreaterEq: ">=",
	FilterOperatorLess:      "<",
	FilterOperatorGreater:   ">",
}

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq in not_eq greater_eq less greater"`
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	if f.Operator == FilterOperatorIn {
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
			return "", args
		}

		// an empty IN list matches nothing
		if val.Len() == 0 {
			return "FALSE", args
		}

		named := make([]string, val.Len())

		for idx := range val.Len() {
			name := fmt.Sprintf("%s_%d", argName, idx)
			args[name] = val.Index(idx).Interface()
			named[idx] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	}

	comparison, ok := comparisons[f.Operator]
	if !ok {
		return "", args
	}

	args[argName] = f.Value

	return fmt.Sprintf("%s %s :%s", column, comparison, argName), args
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.Operator+" ")), args
}

// Overlapping matches rows whose half-open [startField, endField) range intersects [start, end).
func Overlapping(table, startField, endField string, start, end any) FilterGroup {
	return FilterGroup{
		Operator: FilterGroupOperatorAnd,
		Filters: []any{
			Filter{Field: startField, Value: end, Operator: FilterOperatorLess, Table: table, ArgName: "window_end"},
			Filter{Field: endField, Value: start, Operator: FilterOperatorGreater, Table: table, ArgName: "window_start"},
		},
	}
}

// Within matches rows whose field falls in the half-open window [start, end).
func Within(table, field string, start, end any) FilterGroup {
	return FilterGroup{
		Operator: FilterGroupOperatorAnd,
		Filters: []any{
			Filter{Field: field, Value: start, Operator: FilterOperatorGreaterEq, Table: table, ArgName: "window_start"},
			Filter{Field: field, Value: end, Operator: FilterOperatorLess, Table: table, ArgName: "window_end"},
		},
	}
}
