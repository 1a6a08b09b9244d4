// Package persistence implements the optional snapshot/restore
// extension: serializing every Persistable node's state alongside a
// topology fingerprint, and rejecting restore into a structurally
// different topology. There is no durable persistence by default —
// callers choose where the serialized bytes live.
package persistence
