// Package rest implements provider.DataProvider against a json-server
// style REST backend.
//
// Resource paths are {base}/{resource} and {base}/{resource}/{id}. List
// queries encode as _start/_end/_sort/_order plus suffixed filter
// parameters (see the query package); the total count is read from the
// X-Total-Count response header. Batched operations fan out concurrently
// and report partial failure explicitly through BatchError: items that
// completed before a failure stay completed, nothing is rolled back.
//
//	p, err := rest.New(rest.Config{
//	    HTTP: httpclient.Config{BaseURL: "https://api.example.com"},
//	})
//	result, err := p.GetList(ctx, "posts", query.ListQuery{
//	    Pagination: &query.Pagination{Current: 2, PageSize: 10},
//	})
package rest
