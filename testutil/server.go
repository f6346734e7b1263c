package testutil

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restdata/provider"
)

// Reserved query parameters that never act as filters.
var reservedParams = map[string]bool{
	"_start": true,
	"_end":   true,
	"_sort":  true,
	"_order": true,
	"id":     true,
}

// Server is an in-memory REST backend with json-server query semantics.
type Server struct {
	mu     sync.RWMutex
	data   map[string][]provider.Record
	nextID map[string]int
	engine *gin.Engine

	// OmitTotalCount suppresses the X-Total-Count header on list
	// responses, for exercising data-integrity failure paths.
	OmitTotalCount bool
}

// NewServer creates an empty backend.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		data:   make(map[string][]provider.Record),
		nextID: make(map[string]int),
	}

	r := gin.New()
	r.GET("/:resource", s.list)
	r.POST("/:resource", s.create)
	r.GET("/:resource/:id", s.getOne)
	r.PATCH("/:resource/:id", s.update)
	r.PUT("/:resource/:id", s.update)
	r.DELETE("/:resource/:id", s.delete)
	s.engine = r

	return s
}

// Handler returns the HTTP handler, for use with httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Seed inserts records into a resource, assigning ids where absent.
func (s *Server) Seed(resource string, records ...provider.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if rec["id"] == nil {
			rec["id"] = s.allocID(resource)
		}
		s.data[resource] = append(s.data[resource], rec)
	}
}

// Count returns the number of records in a resource.
func (s *Server) Count(resource string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[resource])
}

// allocID hands out the next integer id. Callers must hold s.mu.
func (s *Server) allocID(resource string) int {
	s.nextID[resource]++
	return s.nextID[resource]
}

func (s *Server) list(c *gin.Context) {
	resource := c.Param("resource")
	q := c.Request.URL.Query()

	s.mu.RLock()
	records := make([]provider.Record, len(s.data[resource]))
	copy(records, s.data[resource])
	s.mu.RUnlock()

	// Membership filter: repeated id keys.
	if ids := q["id"]; len(ids) > 0 {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		records = filterRecords(records, func(rec provider.Record) bool {
			return wanted[provider.FormatID(rec["id"])]
		})
	}

	// Field filters, AND-combined.
	for key, vals := range q {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		field, op := splitFilterKey(key)
		want := vals[len(vals)-1]
		records = filterRecords(records, func(rec provider.Record) bool {
			return matchFilter(rec[field], op, want)
		})
	}

	sortRecords(records, q.Get("_sort"), q.Get("_order"))

	if !s.OmitTotalCount {
		c.Header("X-Total-Count", strconv.Itoa(len(records)))
	}

	records = window(records, q.Get("_start"), q.Get("_end"))
	c.JSON(http.StatusOK, records)
}

func (s *Server) create(c *gin.Context) {
	resource := c.Param("resource")

	var rec provider.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	if rec["id"] == nil {
		rec["id"] = s.allocID(resource)
	}
	s.data[resource] = append(s.data[resource], rec)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, rec)
}

func (s *Server) getOne(c *gin.Context) {
	resource, id := c.Param("resource"), c.Param("id")

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.data[resource] {
		if provider.FormatID(rec["id"]) == id {
			c.JSON(http.StatusOK, rec)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
}

func (s *Server) update(c *gin.Context) {
	resource, id := c.Param("resource"), c.Param("id")

	var patch provider.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.data[resource] {
		if provider.FormatID(rec["id"]) != id {
			continue
		}
		if c.Request.Method == http.MethodPut {
			keep := rec["id"]
			for k := range rec {
				delete(rec, k)
			}
			rec["id"] = keep
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			rec[k] = v
		}
		c.JSON(http.StatusOK, rec)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
}

func (s *Server) delete(c *gin.Context) {
	resource, id := c.Param("resource"), c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.data[resource]
	for i, rec := range records {
		if provider.FormatID(rec["id"]) == id {
			s.data[resource] = append(records[:i:i], records[i+1:]...)
			c.JSON(http.StatusOK, rec)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
}

// filterRecords keeps the records matching keep.
func filterRecords(records []provider.Record, keep func(provider.Record) bool) []provider.Record {
	out := records[:0:0]
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// splitFilterKey separates a filter parameter into field and operator.
func splitFilterKey(key string) (field, op string) {
	for _, suffix := range []string{"_ne", "_gte", "_lte", "_like"} {
		if strings.HasSuffix(key, suffix) {
			return strings.TrimSuffix(key, suffix), suffix
		}
	}
	return key, ""
}

// matchFilter evaluates one filter against a record value.
func matchFilter(value any, op, want string) bool {
	got := provider.FormatID(value)
	switch op {
	case "":
		return got == want
	case "_ne":
		return got != want
	case "_gte":
		return compareValues(got, want) >= 0
	case "_lte":
		return compareValues(got, want) <= 0
	case "_like":
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	default:
		return false
	}
}

// compareValues compares numerically when both sides parse as numbers,
// lexically otherwise.
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// sortRecords applies comma-joined _sort/_order parameters, primary key
// first.
func sortRecords(records []provider.Record, sortParam, orderParam string) {
	if sortParam == "" {
		return
	}
	fields := strings.Split(sortParam, ",")
	orders := strings.Split(orderParam, ",")

	sort.SliceStable(records, func(i, j int) bool {
		for k, field := range fields {
			a := provider.FormatID(records[i][field])
			b := provider.FormatID(records[j][field])
			cmp := compareValues(a, b)
			if cmp == 0 {
				continue
			}
			desc := k < len(orders) && strings.EqualFold(orders[k], "desc")
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// window slices records to the half-open [_start, _end) range.
func window(records []provider.Record, startParam, endParam string) []provider.Record {
	if startParam == "" && endParam == "" {
		return records
	}
	start, end := 0, len(records)
	if n, err := strconv.Atoi(startParam); err == nil {
		start = n
	}
	if n, err := strconv.Atoi(endParam); err == nil {
		end = n
	}
	if start < 0 {
		start = 0
	}
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	if end < start {
		end = start
	}
	return records[start:end]
}
