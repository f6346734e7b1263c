// Package resilience provides fault-tolerance building blocks for outbound
// calls: retry with exponential backoff, a circuit breaker, and a token
// bucket rate limiter. The httpclient adapter wires these in through its
// Config; all of them are opt-in and disabled by default.
package resilience
