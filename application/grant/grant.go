// Package grant requests sets of capabilities from a permission host.
//
// Descriptors are requested one at a time, in order. A request may open an
// interactive prompt on the host; at most one request is in flight.
package grant

import (
	"context"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	permerrors "github.com/reglet-dev/reglet-permissions/domain/errors"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

// Grant requests each descriptor and returns those the host granted, in
// input order. Denied or unanswered descriptors are left out; that is not an
// error. Host errors are returned unchanged and stop the loop.
func Grant(ctx context.Context, host ports.PermissionHost, descriptors []entities.Descriptor) ([]entities.Descriptor, error) {
	granted := make([]entities.Descriptor, 0, len(descriptors))
	err := each(ctx, host, descriptors, func(d entities.Descriptor, state entities.PermissionState) {
		if state.IsGranted() {
			granted = append(granted, d)
		}
	})
	if err != nil {
		return nil, err
	}
	return granted, nil
}

// GrantOrThrow requests each descriptor and returns nil only if all of them
// were granted. Otherwise it returns a *errors.PermissionDeniedError listing
// the rest in input order. Host errors are returned unchanged.
func GrantOrThrow(ctx context.Context, host ports.PermissionHost, descriptors []entities.Descriptor) error {
	var denied []entities.Descriptor
	err := each(ctx, host, descriptors, func(d entities.Descriptor, state entities.PermissionState) {
		if !state.IsGranted() {
			denied = append(denied, d)
		}
	})
	if err != nil {
		return err
	}

	if len(denied) > 0 {
		return &permerrors.PermissionDeniedError{Denied: denied}
	}
	return nil
}

// each performs one host request per descriptor, strictly sequentially.
func each(
	ctx context.Context,
	host ports.PermissionHost,
	descriptors []entities.Descriptor,
	visit func(entities.Descriptor, entities.PermissionState),
) error {
	for _, d := range descriptors {
		status, err := host.Request(ctx, d)
		if err != nil {
			return err
		}
		visit(d, status.State)
	}
	return nil
}
