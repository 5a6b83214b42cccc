package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-moles/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rules",
	Long: `Print the rules a game would use, as YAML.

Rules are read from --config, then ~/.moles/configs/moles.yaml, then
./configs/moles.yaml, falling back to the built-in defaults. A file only
needs the keys it changes.

Examples:
  moles rules
  moles rules --config ./my-rules.yaml > ~/.moles/configs/moles.yaml`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func runRules(_ *cobra.Command, _ []string) {
	rules, err := config.LoadRules(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.MarshalRules(rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding rules: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
