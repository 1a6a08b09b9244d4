// Package config centralizes the tunables shared by the ingestion
// bridge, the stabilization engine, and the snapshot substrate.
//
// # Overview
//
// A single Config struct is built with Default (or Testing, for unit
// tests) and passed explicitly into the ingest constructor (engine.New
// takes no Config).
// Nothing in this module reads from global or package-level mutable
// state, so multiple engines with different configurations can coexist
// in a single process.
//
// # Basic usage
//
//	cfg := config.Default()
//	cfg.RingCapacity = 8192
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
