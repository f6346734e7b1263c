// Package provider defines the data-provider capability contract: ten
// CRUD-style operations over named resources, expressed as an interface so
// backends stay swappable. The rest package ships the REST implementation;
// alternate backends implement the same interface and compose with the
// middleware in this package (logging, tracing).
//
//	var dp provider.DataProvider = restProvider
//	dp = provider.Chain(
//	    provider.WithLogging(log),
//	    provider.WithTracing(),
//	)(dp)
package provider
