package main

import (
	"github.com/spf13/cobra"
)

var strict bool

// requestCmd asks the permission host for each descriptor argument.
var requestCmd = &cobra.Command{
	Use:   "request [--strict] <kind>[=<value>]...",
	Short: "Request permissions and report which were granted",
	Long: `Request each permission in order. Granted permissions are printed one
flag per line. With --strict, any permission not granted fails the command
with a report listing every missing flag.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		descriptors, err := parseDescriptors(args)
		if err != nil {
			return err
		}
		h, err := buildHost(cfg)
		if err != nil {
			return err
		}
		return runRequest(cmd.Context(), h, descriptors, strict, cmd.OutOrStdout())
	},
}

func init() {
	requestCmd.Flags().BoolVar(&strict, "strict", false, "fail unless every permission is granted")
	rootCmd.AddCommand(requestCmd)
}
