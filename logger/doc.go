// Package logger provides structured logging for hydrokit services,
// backed by zerolog.
//
// A Logger is cheap to copy and safe for concurrent use. Packages take a
// *Logger and tag it with their component name:
//
//	log := logger.NewDefault("hydrated").WithComponent("catalog")
//	log.Info("tree loaded", logger.Fields("tree", def.Name, "nodes", len(def.Nodes)))
//
// A process-wide global logger is available through the package-level
// Debug/Info/Warn/Error functions after Init.
package logger
