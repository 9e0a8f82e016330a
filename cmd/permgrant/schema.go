package main

import (
	"fmt"

	"github.com/reglet-dev/reglet-permissions/application/schema"
	"github.com/spf13/cobra"
)

// schemaCmd prints the JSON schema of the grants file.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the grants file JSON schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := schema.GrantsSchema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
