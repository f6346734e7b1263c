// Package query models list queries (pagination, sort, filters) and encodes
// them into json-server style query parameters.
//
// Encoding is pure: no I/O, deterministic output, defaults resolved in one
// place. A nil Sort or nil Pagination means "use the documented default"; a
// present-but-empty value is taken literally.
//
//	q := query.ListQuery{
//	    Pagination: &query.Pagination{Current: 2, PageSize: 10},
//	    Sort:       query.Sort{{Field: "title", Order: query.Asc}},
//	    Filters:    []query.Filter{{Field: "status", Value: "published"}},
//	}
//	values, err := q.Values()
//	// _start=10&_end=20&_sort=title&_order=asc&status=published
package query
