// Package export writes cost reports as spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

const (
	sheetCostClasses = "Cost classes"
	sheetGallery     = "Gallery"
)

// WriteCostClassesXLSX writes one row per cost class with its parsed fields.
func WriteCostClassesXLSX(path string, classes []string) error {
	rows := make([][]any, 0, len(classes))
	for _, cl := range classes {
		cost, ok := domain.ParseCostString(cl)
		if !ok {
			continue
		}
		rows = append(rows, []any{cl, coinCell(cost), cost.DebtCost, cost.HasPotion, string(cost.Modifier), cost.String()})
	}
	return writeSheet(path, sheetCostClasses,
		[]any{"Class", "Coin", "Debt", "Potion", "Modifier", "Printed"}, rows)
}

// WriteCardsXLSX writes cards in the order given.
func WriteCardsXLSX[E any](path string, cards []domain.Card[E]) error {
	rows := make([][]any, 0, len(cards))
	for i, c := range cards {
		cost := domain.ZeroCost
		token := ""
		if c.Cost != nil {
			cost = *c.Cost
			token = c.Cost.Token()
		}
		kind := "Card"
		if c.Kind == domain.KindLandscape {
			kind = "Landscape"
		}
		rows = append(rows, []any{i + 1, c.Name, kind, c.Set, token, cost.String()})
	}
	return writeSheet(path, sheetGallery,
		[]any{"#", "Name", "Kind", "Set", "Class", "Cost"}, rows)
}

func coinCell(c domain.CardCost) any {
	if c.CoinCost == nil {
		return ""
	}
	return *c.CoinCost
}

func writeSheet(path, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
