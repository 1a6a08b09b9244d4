// Package ingest bridges external producers to the stabilization
// engine through a bounded single-producer/single-consumer ring
// buffer of update events. The consumer goroutine applies source
// writes, coalesces a burst of events into a single stabilization
// pass, and drives the post-stabilization callback — typically a
// snapshot refresh.
package ingest
