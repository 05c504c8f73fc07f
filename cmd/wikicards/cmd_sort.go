package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/export"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/htmldom"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/prefs"
	"github.com/mplewis/dominion-strategy-wiki/internal/app"
	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

var (
	sortBy      string
	sortGroup   bool
	sortOutHTML string
	sortOutXLSX string
)

var sortCmd = &cobra.Command{
	Use:   "sort <gallery.html>",
	Short: "Sort the card galleries of a saved page",
	Args:  cobra.ExactArgs(1),
	RunE:  runSort,
}

func init() {
	sortCmd.Flags().StringVar(&sortBy, "by", "name", "name or cost")
	sortCmd.Flags().BoolVar(&sortGroup, "group-sets", false, "group cards by set first")
	sortCmd.Flags().StringVar(&sortOutHTML, "html", "", "write the sorted page here")
	sortCmd.Flags().StringVar(&sortOutXLSX, "xlsx", "", "write the sorted cards here")
}

func runSort(cmd *cobra.Command, args []string) error {
	order, err := domain.ParseSortBy(sortBy)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc, err := htmldom.Parse(string(raw))
	if err != nil {
		return err
	}

	p := prefs.NewMemory()
	if err := p.SetBool(cmd.Context(), domain.OptionCardSortByCost, order == domain.SortByCost); err != nil {
		return err
	}
	sorter := app.NewSorter[*html.Node](doc, p, logger)
	if err := sorter.Init(cmd.Context()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	var all []domain.Card[*html.Node]
	for _, id := range sorter.Registry().IDs() {
		if sortGroup {
			if _, err := sorter.Apply(id, domain.ControlSet); err != nil {
				return err
			}
		}
		scan, err := sorter.SortGallery(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "# %s\t\t\t\n", id)
		for _, c := range scan.Cards {
			cost := "-"
			if c.Cost != nil {
				cost = c.Cost.String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Kind, c.Set, cost)
		}
		all = append(all, scan.Cards...)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if sortOutHTML != "" {
		out, err := doc.Render()
		if err != nil {
			return err
		}
		if err := os.WriteFile(sortOutHTML, []byte(out), 0o644); err != nil {
			return err
		}
	}
	if sortOutXLSX != "" {
		if err := export.WriteCardsXLSX(sortOutXLSX, all); err != nil {
			return err
		}
	}
	return nil
}
