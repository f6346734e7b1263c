// Package testutil provides an in-memory json-server style REST backend
// for exercising the rest provider in tests. It honors the same query
// conventions the provider emits: _start/_end windows, comma-joined
// _sort/_order, suffixed filter parameters (_ne, _gte, _lte, _like),
// repeated-key id membership, and an X-Total-Count response header.
package testutil
