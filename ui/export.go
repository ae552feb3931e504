package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"lastmile/domain/delivery"
	"lastmile/internal/session"
)

// buildWorkbook exports the current filtered view as an XLSX workbook: one
// sheet of records plus one summary sheet per groupable field.
func buildWorkbook(sess *session.Session) (*excelize.File, error) {
	f := excelize.NewFile()
	records := sess.Filtered()

	const recordsSheet = "Deliveries"
	f.SetSheetName("Sheet1", recordsSheet)

	header := []interface{}{
		"DeliveryTime", "AgentAge", "AgentRating",
		"Weather", "Traffic", "Vehicle", "Area", "Category",
		"AgeGroup", "Late",
	}
	if err := f.SetSheetRow(recordsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.DeliveryTime,
			optional(r.AgentAge),
			optional(r.AgentRating),
			r.Weather, r.Traffic, r.Vehicle, r.Area, r.Category,
			string(r.AgeGroup), r.Late,
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(recordsSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write record row %d: %w", i, err)
		}
	}

	for _, field := range delivery.GroupableFields {
		rows, err := sess.Summarize(field)
		if err != nil {
			return nil, err
		}
		if err := writeSummarySheet(f, string(field), rows); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeSummarySheet(f *excelize.File, name string, rows []delivery.SummaryRow) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := []interface{}{name, "MeanDeliveryTime", "Count"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		values := []interface{}{row.GroupKey, row.MeanDeliveryTime, row.Count}
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}

// optional turns a missing numeric into an empty cell.
func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	f, err := buildWorkbook(sess)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="delivery-analytics.xlsx"`)
	if err := f.Write(w); err != nil {
		a.log.Error("failed to stream workbook: %v", err)
	}
}
