// Package permissions requests capabilities from a permission host and
// renders them as --allow-* command-line flags.
//
//	err := permissions.GrantOrThrow(ctx, host, []entities.Descriptor{
//		entities.Env(""),
//		entities.Net("example.com"),
//	})
//	if permissions.IsPermissionDenied(err) {
//		// err.Error() lists the missing flags, one per line
//	}
package permissions

import (
	"context"

	"github.com/reglet-dev/reglet-permissions/application/grant"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	permerrors "github.com/reglet-dev/reglet-permissions/domain/errors"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

// Descriptor is re-exported for callers that only need the facade.
type Descriptor = entities.Descriptor

// Host is the permission subsystem the facade requests from.
type Host = ports.PermissionHost

// PermissionDeniedError is returned by GrantOrThrow.
type PermissionDeniedError = permerrors.PermissionDeniedError

// Render returns the --allow-* flag for d.
func Render(d Descriptor) string {
	return flags.Render(d)
}

// RenderAll renders descriptors in order.
func RenderAll(descriptors []Descriptor) []string {
	return flags.RenderAll(descriptors)
}

// Grant requests descriptors one at a time and returns the granted ones.
func Grant(ctx context.Context, host Host, descriptors []Descriptor) ([]Descriptor, error) {
	return grant.Grant(ctx, host, descriptors)
}

// GrantOrThrow requests descriptors one at a time and fails with a
// *PermissionDeniedError unless all are granted.
func GrantOrThrow(ctx context.Context, host Host, descriptors []Descriptor) error {
	return grant.GrantOrThrow(ctx, host, descriptors)
}

// IsPermissionDenied reports whether err is, or wraps, a PermissionDeniedError.
func IsPermissionDenied(err error) bool {
	return permerrors.IsPermissionDenied(err)
}
