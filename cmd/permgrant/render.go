package main

import (
	"fmt"

	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/spf13/cobra"
)

// renderCmd prints the flag for each descriptor argument.
var renderCmd = &cobra.Command{
	Use:   "render <kind>[=<value>]...",
	Short: "Render descriptors as --allow flags",
	Example: `  permgrant render net=example.com:443 env
  permgrant render read=/etc/hosts`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptors, err := parseDescriptors(args)
		if err != nil {
			return err
		}
		for _, flag := range flags.RenderAll(descriptors) {
			fmt.Fprintln(cmd.OutOrStdout(), flag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
