package types

import (
	"fmt"

	"gorm.io/gorm/clause"
)

type CommonFilterOperator string

const (
	CommonFilterOperatorEq        CommonFilterOperator = "eq"
	CommonFilterOperatorNotEq     CommonFilterOperator = "not_eq"
	CommonFilterOperatorLt        CommonFilterOperator = "lt"
	CommonFilterOperatorLte       CommonFilterOperator = "lte"
	CommonFilterOperatorGt        CommonFilterOperator = "gt"
	CommonFilterOperatorGte       CommonFilterOperator = "gte"
	CommonFilterOperatorDateRange CommonFilterOperator = "date_range"
	CommonFilterOperatorRange     CommonFilterOperator = "range"
	CommonFilterOperatorIn        CommonFilterOperator = "in"
)

type CommonFilter struct {
	Field    string               `json:"field"`
	Operator CommonFilterOperator `json:"operator"`
	Values   []any                `json:"values"`
	Filters  []CommonFilter       `json:"filters"`
}

// Build writes the filter as a SQL condition. A filter without values or
// with an unknown operator matches everything so that AND-joined lists stay
// well formed. Field must already be checked with ValidateFilterFields.
func (f *CommonFilter) Build(builder clause.Builder) {
	expr := f.expression()
	if expr == nil {
		builder.WriteString("1=1")
		return
	}
	expr.Build(builder)
}

func (f *CommonFilter) expression() clause.Expression {
	if len(f.Values) == 0 {
		return nil
	}
	col, value := clause.Column{Name: f.Field}, f.Values[0]
	switch f.Operator {
	case CommonFilterOperatorEq:
		return clause.Eq{Column: col, Value: value}
	case CommonFilterOperatorNotEq:
		return clause.Neq{Column: col, Value: value}
	case CommonFilterOperatorLt:
		return clause.Lt{Column: col, Value: value}
	case CommonFilterOperatorLte:
		return clause.Lte{Column: col, Value: value}
	case CommonFilterOperatorGt:
		return clause.Gt{Column: col, Value: value}
	case CommonFilterOperatorGte:
		return clause.Gte{Column: col, Value: value}
	case CommonFilterOperatorRange, CommonFilterOperatorDateRange:
		if len(f.Values) < 2 {
			return nil
		}
		// date_range upper bound is exclusive so a day's end needs no time part
		upper := clause.Expression(clause.Lte{Column: col, Value: f.Values[1]})
		if f.Operator == CommonFilterOperatorDateRange {
			upper = clause.Lt{Column: col, Value: f.Values[1]}
		}
		return clause.And(clause.Gte{Column: col, Value: f.Values[0]}, upper)
	case CommonFilterOperatorIn:
		return clause.IN{Column: col, Values: f.Values}
	default:
		return nil
	}
}

// FieldAllowed reports whether field is one of allowed.
func FieldAllowed(field string, allowed []string) bool {
	for _, a := range allowed {
		if a == field {
			return true
		}
	}
	return false
}

// ValidateFilterFields rejects filters, nested ones included, that reference
// a column outside allowed. Filter fields end up in SQL unquoted.
func ValidateFilterFields(filters []*CommonFilter, allowed []string) error {
	for _, f := range filters {
		if f == nil {
			continue
		}
		if !FieldAllowed(f.Field, allowed) {
			return fmt.Errorf("unsupported filter field: %s", f.Field)
		}
		for i := range f.Filters {
			if err := ValidateFilterFields([]*CommonFilter{&f.Filters[i]}, allowed); err != nil {
				return err
			}
		}
	}
	return nil
}
