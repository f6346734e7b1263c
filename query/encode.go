package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by json-server style backends.
const (
	ParamStart = "_start"
	ParamEnd   = "_end"
	ParamSort  = "_sort"
	ParamOrder = "_order"
)

// EncodePagination encodes a page window as a half-open [_start, _end)
// range. Defaults are applied first, so _end-_start always equals the
// effective page size and _start is never negative.
func EncodePagination(p Pagination) url.Values {
	p.ApplyDefaults()
	start := (p.Current - 1) * p.PageSize
	end := p.Current * p.PageSize
	return url.Values{
		ParamStart: {strconv.Itoa(start)},
		ParamEnd:   {strconv.Itoa(end)},
	}
}

// EncodeSort encodes a sort sequence as comma-joined, positionally aligned
// _sort and _order parameters. A nil sort emits the default (id desc); an
// empty non-nil sort emits nothing.
func EncodeSort(s Sort) url.Values {
	if s == nil {
		s = DefaultSort()
	}
	if len(s) == 0 {
		return url.Values{}
	}
	fields := make([]string, len(s))
	orders := make([]string, len(s))
	for i, sf := range s {
		order := sf.Order
		if order == "" {
			order = Asc
		}
		fields[i] = sf.Field
		orders[i] = string(order)
	}
	return url.Values{
		ParamSort:  {strings.Join(fields, ",")},
		ParamOrder: {strings.Join(orders, ",")},
	}
}

// EncodeFilters encodes filters as <field><suffix>=<value> parameters.
// Nil or empty input yields an empty set. Filters sharing field and
// operator overwrite earlier ones (last write wins).
func EncodeFilters(filters []Filter) (url.Values, error) {
	values := url.Values{}
	for _, f := range filters {
		suffix, err := f.Operator.Suffix()
		if err != nil {
			return nil, err
		}
		values.Set(f.Field+suffix, formatValue(f.Value))
	}
	return values, nil
}

// Values merges the pagination, sort, and filter encodings of the query.
func (q ListQuery) Values() (url.Values, error) {
	values, err := EncodeFilters(q.Filters)
	if err != nil {
		return nil, err
	}
	p := Pagination{}
	if q.Pagination != nil {
		p = *q.Pagination
	}
	merge(values, EncodePagination(p))
	merge(values, EncodeSort(q.Sort))
	return values, nil
}

// merge copies src entries into dst, replacing existing keys.
func merge(dst, src url.Values) {
	for k, vs := range src {
		dst[k] = vs
	}
}

// formatValue renders a filter value for the query string.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
