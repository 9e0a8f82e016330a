// Package ports defines the interfaces this module consumes.
// The orchestrator depends on PermissionHost only; the remaining ports are
// the collaborators of the reference host in infrastructure/host.
package ports
