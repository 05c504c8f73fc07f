package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

var parseCmd = &cobra.Command{
	Use:   "parse <class>...",
	Short: "Parse cost classes; the first class in cost syntax wins",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cost, ok := domain.ParseCostString(args...)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "null")
		return nil
	}
	out, err := json.Marshal(cost)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out, cost)
	return nil
}
