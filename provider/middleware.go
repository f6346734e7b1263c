package provider

// Middleware transforms a DataProvider by wrapping it. The returned
// provider delegates to the original while adding cross-cutting behavior
// (logging, tracing, etc.).
type Middleware func(DataProvider) DataProvider

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(provider) is equivalent to a(b(c(provider))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner DataProvider) DataProvider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}
