// Package logging provides structured logging capabilities for the
// stabilization engine.
//
// # Overview
//
// The logging package implements a structured logging system with support for
// multiple output formats, log levels, and contextual information chained
// through an engine's lifetime: engine ID, epoch, and node index/name.
//
// # Log Levels
//
//   - DEBUG: not emitted by the engine or the ingestion bridge
//   - INFO: health reset
//   - WARN: a node whose stabilize failed in a pass, rate-limited
//     operator failures, a shutdown drain that hit its deadline
//   - ERROR: a pass that transitions the engine to unhealthy
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	})
//
//	logger.WithEpoch(epoch).Debug("pass started")
//
// # Chained context
//
//	logger = logger.
//	    WithEngineID(engineID).
//	    WithEpoch(epoch).
//	    WithNodeIndex(ti).
//	    WithNodeName(name)
//
//	logger.Error("operator failed")
//
// # Thread Safety
//
// All logger operations are thread-safe and can be used concurrently
// from multiple goroutines without additional synchronization.
package logging
