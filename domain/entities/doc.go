// Package entities provides the core value types for capability requests:
// descriptors, permission states and the host-side grant table.
// Descriptors carry no grant state of their own; the host decides.
package entities
