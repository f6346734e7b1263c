// Package logger wraps zerolog with a small structured-logging surface:
// a Config with level/format/output, component-tagged child loggers, and
// a Fields helper for ad-hoc key-value pairs.
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "restdata")
//	log.WithComponent("rest").Info("list fetched", logger.Fields("resource", "posts"))
package logger
