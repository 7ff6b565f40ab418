package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the run result to an xlsx workbook: one sheet per
// table plus census sheets with bar charts.
func ExportXLSX(path string, result *RunResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeInvoiceSheet(f, result.Invoices); err != nil {
		return err
	}
	if err := writeSubscriptionSheet(f, result.Subscriptions); err != nil {
		return err
	}
	if err := writeTimeSheet(f, result.TimeTracking); err != nil {
		return err
	}
	if err := writeCensusSheet(f, "Aantal abonnementen", result.FullSeries); err != nil {
		return err
	}
	if err := writeCensusSheet(f, "Korte termijn", result.ShortSeries); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, invoices []Invoice) error {
	const sheet = "Facturen"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	header := []string{"id", "klant", "factuurdatum", "betaaldatum", "totaal", "status", "uit abonnement"}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}
	for i, inv := range invoices {
		total, _ := inv.Total.Float64()
		values := []any{
			inv.ID,
			inv.Customer,
			formatDate(inv.InvoiceDate),
			formatDate(inv.PaidDate),
			total,
			inv.Status,
			inv.FromSubscription,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeSubscriptionSheet(f *excelize.File, subs []Subscription) error {
	const sheet = "Abonnementen"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	header := []string{"actief", "titel", "herhaling", "klant", "afdeling", "start", "einde", "einde of verlenging", "prijs excl. btw"}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}
	for i, sub := range subs {
		price, _ := sub.PriceExclVAT.Float64()
		values := []any{
			sub.Active,
			sub.Title,
			sub.Repeat,
			sub.Client,
			sub.Department,
			formatDate(sub.Start),
			formatDate(sub.End),
			formatDate(sub.EffectiveEnd),
			price,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeTimeSheet(f *excelize.File, entries []TimeEntry) error {
	const sheet = "Projecturen"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	header := []string{"gestart", "minuten", "omschrijving", "medewerker", "jaar", "maand", "week"}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}
	for i, e := range entries {
		values := []any{
			formatDate(e.StartedOn),
			e.Minutes,
			e.Description,
			e.User,
			e.Year,
			e.Month,
			e.Week,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeCensusSheet(f *excelize.File, sheet string, points []CensusPoint) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if err := writeHeader(f, sheet, []string{"datum", "aantal"}); err != nil {
		return err
	}
	for i, p := range points {
		if err := writeRow(f, sheet, i+2, []any{p.Date.Format(dateLayout), p.Count}); err != nil {
			return err
		}
	}
	if len(points) == 0 {
		return nil
	}
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, len(points)+1),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, len(points)+1),
		}},
		Title: []excelize.RichTextRun{{Text: sheet}},
	}
	if err := f.AddChart(sheet, "D2", chart); err != nil {
		return fmt.Errorf("adding chart to %s: %w", sheet, err)
	}
	return nil
}
