package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssaudit",
	Short: "Find unused CSS selectors and missing CSS classes",
	Long: `Reconcile the classes defined in your stylesheets with the classes
referenced by your templates and components.

Reports selectors that are defined but unused and classes that are used
but never defined, without flagging media-scoped, utility-framework or
responsive classes as false positives.`,
	// Default behavior: run audit when no subcommand is given.
	// We must call loadConfig here because PreRunE of auditCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runAudit(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".cssaudit.yaml", "Config file path")

	// The audit flags are also accepted without the subcommand
	addAuditFlags(rootCmd)

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
