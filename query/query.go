//Package query filters in-memory collections by field parameters
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

//OperationType is a comparison operation type
type OperationType int

//OperationTypes
const (
	OperationEquals OperationType = iota
	OperationNotEquals
	OperationContains
	OperationLessThan
	OperationGreaterThan
	OperationLessThanOrEqualTo
	OperationGreaterThanOrEqualTo
)

//suffixes maps URL parameter suffixes to operations
var suffixes = map[string]OperationType{
	"":         OperationEquals,
	"ne":       OperationNotEquals,
	"contains": OperationContains,
	"lt":       OperationLessThan,
	"gt":       OperationGreaterThan,
	"lte":      OperationLessThanOrEqualTo,
	"gte":      OperationGreaterThanOrEqualTo,
}

//Parameter is a single field comparison. All Parameters passed to Filter must match (AND).
type Parameter struct {
	Field     string        `json:"field"`
	Operation OperationType `json:"operation"`
	Value     string        `json:"value"`
}

//Fielder is implemented by records that can be filtered
type Fielder interface {
	//Field returns the value of the named field and whether the field exists.
	//Values are string or float64.
	Field(name string) (interface{}, bool)
}

//Error is returned for parameters that cannot be applied
type Error struct {
	Parameter *Parameter
	Reason    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid filter %s: %s", e.Parameter.Field, e.Reason)
}

//ParseValues returns Parameters for the given URL values.
//A key is either a field name (equals) or field__op where op is one of ne, contains, lt, gt, lte, gte.
//Keys in ignore are skipped. Parameters are returned sorted by field for stable evaluation.
func ParseValues(values url.Values, ignore ...string) ([]*Parameter, error) {
	skip := make(map[string]struct{}, len(ignore))
	for _, k := range ignore {
		skip[k] = struct{}{}
	}

	var params []*Parameter
	for key, vals := range values {
		if _, ok := skip[key]; ok {
			continue
		}
		field, suffix := key, ""
		if idx := strings.LastIndex(key, "__"); idx >= 0 {
			field, suffix = key[:idx], key[idx+2:]
		}
		op, ok := suffixes[suffix]
		if !ok || field == "" {
			return nil, &Error{Parameter: &Parameter{Field: key}, Reason: "unknown operation"}
		}
		for _, v := range vals {
			params = append(params, &Parameter{Field: field, Operation: op, Value: v})
		}
	}

	sort.SliceStable(params, func(i, j int) bool { return params[i].Field < params[j].Field })
	return params, nil
}

//Match returns whether record satisfies p
func (p *Parameter) Match(record Fielder) (bool, error) {
	v, ok := record.Field(p.Field)
	if !ok {
		return false, &Error{Parameter: p, Reason: "unknown field"}
	}

	switch val := v.(type) {
	case string:
		switch p.Operation {
		case OperationEquals:
			return strings.EqualFold(val, p.Value), nil
		case OperationNotEquals:
			return !strings.EqualFold(val, p.Value), nil
		case OperationContains:
			return strings.Contains(strings.ToLower(val), strings.ToLower(p.Value)), nil
		default:
			return false, &Error{Parameter: p, Reason: "comparison not supported on text field"}
		}
	case float64:
		f, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return false, &Error{Parameter: p, Reason: fmt.Sprintf("value %q is not a number", p.Value)}
		}
		switch p.Operation {
		case OperationEquals:
			return val == f, nil
		case OperationNotEquals:
			return val != f, nil
		case OperationLessThan:
			return val < f, nil
		case OperationGreaterThan:
			return val > f, nil
		case OperationLessThanOrEqualTo:
			return val <= f, nil
		case OperationGreaterThanOrEqualTo:
			return val >= f, nil
		default:
			return false, &Error{Parameter: p, Reason: "contains not supported on numeric field"}
		}
	}

	return false, &Error{Parameter: p, Reason: fmt.Sprintf("unsupported field type %T", v)}
}

//Filter returns the records matching every parameter, preserving order.
//With no parameters, records is returned unchanged.
func Filter[T Fielder](records []T, params []*Parameter) ([]T, error) {
	if len(params) == 0 {
		return records, nil
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		keep := true
		for _, p := range params {
			ok, err := p.Match(r)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out, nil
}
