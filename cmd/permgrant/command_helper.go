package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/reglet-dev/reglet-permissions/application/config"
	"github.com/reglet-dev/reglet-permissions/application/grant"
	"github.com/reglet-dev/reglet-permissions/application/validation"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/reglet-dev/reglet-permissions/domain/policy"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
	"github.com/reglet-dev/reglet-permissions/infrastructure/grantstore"
	"github.com/reglet-dev/reglet-permissions/infrastructure/host"
	"github.com/reglet-dev/reglet-permissions/infrastructure/prompter"
)

// parseDescriptors accepts "<kind>[=<value>]" arguments, with or without the
// --allow- prefix.
func parseDescriptors(args []string) ([]entities.Descriptor, error) {
	descriptors := make([]entities.Descriptor, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, flags.Prefix) {
			arg = flags.Prefix + arg
		}
		d, err := flags.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid descriptor %q: %w", arg, err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// loadGrants merges the grants file with the configured allow flags.
func loadGrants(cfg *config.Config) (*entities.GrantSet, error) {
	v, err := validation.NewGrantsValidator()
	if err != nil {
		return nil, err
	}

	opts := []grantstore.FileStoreOption{grantstore.WithValidator(v)}
	if cfg.GrantsFile != "" {
		opts = append(opts, grantstore.WithPath(cfg.GrantsFile))
	}
	store := grantstore.NewFileStore(opts...)

	grants, err := store.Load()
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded grants file", "path", store.ConfigPath())

	allowed, err := cfg.Grants()
	if err != nil {
		return nil, err
	}
	grants.Merge(allowed)
	return grants, nil
}

// newPrompter prefers the TTY form and falls back to line prompts on stderr.
func newPrompter() ports.Prompter {
	if p := prompter.NewHuhPrompter(os.Getenv("ACCESSIBLE") != ""); p.IsInteractive() {
		return p
	}
	return prompter.NewCliPrompter(os.Stdin, os.Stderr)
}

func buildHost(cfg *config.Config) (*host.PolicyHost, error) {
	grants, err := loadGrants(cfg)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return host.New(
		host.WithGrants(grants),
		host.WithPolicy(policy.NewPolicy(policy.WithWorkingDirectory(cwd))),
		host.WithPrompter(newPrompter()),
		host.WithPromptMode(host.PromptMode(cfg.Prompt)),
		host.WithLogger(slog.Default()),
	), nil
}

// runRequest requests descriptors from h and writes the granted flags to out.
// In strict mode nothing is printed and a denial is returned as the error.
func runRequest(ctx context.Context, h ports.PermissionHost, descriptors []entities.Descriptor, strict bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if strict {
		return grant.GrantOrThrow(ctx, h, descriptors)
	}

	granted, err := grant.Grant(ctx, h, descriptors)
	if err != nil {
		return err
	}
	for _, flag := range flags.RenderAll(granted) {
		fmt.Fprintln(out, flag)
	}
	return nil
}
