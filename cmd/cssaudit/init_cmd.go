package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssaudit.yaml config file",
	Long:  `Create a .cssaudit.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssaudit.yaml"); err == nil && !force {
			return fmt.Errorf(".cssaudit.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssaudit.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .cssaudit.yaml")
		return nil
	},
}

const defaultConfig = `# cssaudit configuration
# Docs: https://github.com/yacobolo/cssaudit

root: .
verbose: false

# Inputs (glob patterns relative to root; ** matches across directories)
css:
  - "**/*.css"
sources:
  - "**/*.html"
  - "**/*.htm"
  - "**/*.templ"
  - "**/*.go"
  - "**/*.{js,jsx,ts,tsx}"
  - "**/*.{vue,svelte,astro}"
  - "**/*.{erb,php,hbs,njk,liquid}"
workers: 0                 # 0 = number of CPUs

# Unused selector detection. Leave command empty for the built-in purger.
purge:
  command: ""              # e.g. npx
  args: []                 # e.g. ["purgecss"]
  timeout: 60s

# Classification rules (first match wins: allow, patterns, framework, responsive)
rules:
  builtin: true            # keep the built-in tables and add the lists below
  allow: []
  allow-patterns: []
  framework-patterns: []
  responsive-patterns: []

# Output
output-format: text        # text | issues | summary | json | markdown
report-dir: ""             # also write unused-selectors.txt, missing-classes.txt, summary.txt
strict: false              # exit 1 on unused selectors too
print-linter-name: true
max-issues: 0              # issues format: 0 = unlimited
max-same-issues: 0         # issues format: 0 = unlimited
color: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
