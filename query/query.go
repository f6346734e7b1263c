package query

// Default pagination values applied when a field is zero.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// DefaultSortField is the sort applied when no sort is given.
const DefaultSortField = "id"

// Pagination selects a page window. Zero values are replaced by defaults
// (page 1, size 10) in ApplyDefaults.
type Pagination struct {
	// Current is the 1-based page number.
	Current int `yaml:"current" mapstructure:"current"`
	// PageSize is the number of records per page.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

// ApplyDefaults fills in zero or negative fields with defaults.
// After this call both fields are >= 1.
func (p *Pagination) ApplyDefaults() {
	if p.Current < 1 {
		p.Current = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortField sorts by a single field. Position in a Sort sequence is
// significant: the first entry is the primary sort key.
type SortField struct {
	Field string `yaml:"field" mapstructure:"field"`
	Order Order  `yaml:"order" mapstructure:"order"`
}

// Sort is an ordered sequence of sort fields.
type Sort []SortField

// DefaultSort returns the sort used when none is given: id descending.
func DefaultSort() Sort {
	return Sort{{Field: DefaultSortField, Order: Desc}}
}

// Operator compares a record field against a filter value.
type Operator string

const (
	// Eq is the default operator; the zero value is treated as Eq.
	Eq       Operator = "eq"
	Ne       Operator = "ne"
	Gte      Operator = "gte"
	Lte      Operator = "lte"
	Contains Operator = "contains"
)

// Suffix returns the query-parameter suffix appended to the field name.
// Eq has no suffix. Unknown operators return UnsupportedOperatorError.
func (op Operator) Suffix() (string, error) {
	switch op {
	case Eq, "":
		return "", nil
	case Ne:
		return "_ne", nil
	case Gte:
		return "_gte", nil
	case Lte:
		return "_lte", nil
	case Contains:
		return "_like", nil
	default:
		return "", &UnsupportedOperatorError{Operator: op}
	}
}

// Filter constrains a single field. Filters in a list combine with AND.
// Two filters sharing field and operator collide on the same query key;
// the later one wins. That is documented behavior, not an accident.
type Filter struct {
	Field    string   `yaml:"field" mapstructure:"field"`
	Operator Operator `yaml:"operator" mapstructure:"operator"`
	Value    any      `yaml:"value" mapstructure:"value"`
}

// ListQuery is a complete list request. Nil Pagination and nil Sort select
// the documented defaults; an empty (non-nil) Sort is encoded literally.
type ListQuery struct {
	Pagination *Pagination
	Sort       Sort
	Filters    []Filter
}
