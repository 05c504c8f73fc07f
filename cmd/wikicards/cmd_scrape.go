package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/export"
)

var (
	scrapeRefresh bool
	scrapeJSON    string
	scrapeXLSX    string
)

var costClassesCmd = &cobra.Command{
	Use:   "cost-classes",
	Short: "Collect every cost class used in the expansion galleries",
	Args:  cobra.NoArgs,
	RunE:  runCostClasses,
}

var galleryCmd = &cobra.Command{
	Use:   "gallery <set>",
	Short: "Print the cards gallery of one expansion",
	Args:  cobra.ExactArgs(1),
	RunE:  runGallery,
}

func init() {
	costClassesCmd.Flags().BoolVar(&scrapeRefresh, "refresh", false, "bypass the page cache")
	costClassesCmd.Flags().StringVar(&scrapeJSON, "json", "", "also write the classes as JSON here")
	costClassesCmd.Flags().StringVar(&scrapeXLSX, "xlsx", "", "also write a spreadsheet here")
	galleryCmd.Flags().BoolVar(&scrapeRefresh, "refresh", false, "bypass the page cache")
}

func runCostClasses(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := newPageService()
	if err != nil {
		return err
	}
	defer closeFn()

	classes, err := svc.CostClasses(cmd.Context(), scrapeRefresh)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(classes, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if scrapeJSON != "" {
		if err := os.WriteFile(scrapeJSON, out, 0o644); err != nil {
			return err
		}
	}
	if scrapeXLSX != "" {
		if err := export.WriteCostClassesXLSX(scrapeXLSX, classes); err != nil {
			return err
		}
	}
	logger.Info("collected cost classes", "count", len(classes))
	return nil
}

func runGallery(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := newPageService()
	if err != nil {
		return err
	}
	defer closeFn()

	page, err := svc.Page(cmd.Context(), args[0], scrapeRefresh)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), page.Content)
	return nil
}
