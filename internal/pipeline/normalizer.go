package pipeline

import (
	"strings"

	"lastmile/adapters/tabular"
	"lastmile/domain/core"
	"lastmile/domain/delivery"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LoadReport is the diagnostic record of one normalization pass.
type LoadReport struct {
	RowsRead          int            `json:"rows_read"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	RowsBeforeDrop    int            `json:"rows_before_drop"`
	RowsAfterDrop     int            `json:"rows_after_drop"`
	DroppedRows       int            `json:"dropped_rows"`
	UnresolvedFields  []string       `json:"unresolved_fields,omitempty"`
	ParseFailures     map[string]int `json:"parse_failures,omitempty"`
}

// Normalizer turns a raw table into clean delivery records. Normalization is
// deterministic: running it twice on the same table yields identical output.
type Normalizer struct {
	coercer tabular.NumericCoercer
}

// NewNormalizer creates a normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{coercer: tabular.NewNumericCoercer()}
}

// Normalize reconciles headers, removes duplicate rows, coerces the numeric
// fields and normalizes the categoricals. Rows whose DeliveryTime does not
// coerce are dropped; that is the only row-dropping rule. It fails only when
// no delivery-time column can be resolved, since nothing downstream is
// meaningful without one.
func (n *Normalizer) Normalize(table *tabular.Table) ([]delivery.CleanRecord, delivery.FieldMap, LoadReport, error) {
	report := LoadReport{
		RowsRead:      len(table.Rows),
		ParseFailures: make(map[string]int),
	}

	rows := dedupeRows(table.Headers, table.Rows)
	report.DuplicatesRemoved = len(table.Rows) - len(rows)
	report.RowsBeforeDrop = len(rows)

	fields := delivery.ResolveFields(table.Headers)
	report.UnresolvedFields = fields.UnresolvedFields()

	if !fields.Resolved(delivery.FieldDeliveryTime) {
		return nil, fields, report, core.NewUnresolvedFieldError("delivery-time")
	}

	titler := cases.Title(language.Und)
	records := make([]delivery.CleanRecord, 0, len(rows))
	for _, row := range rows {
		deliveryTime := n.coerceCell(row, fields, delivery.FieldDeliveryTime, &report)
		if deliveryTime == nil {
			continue
		}

		rating := n.coerceCell(row, fields, delivery.FieldAgentRating, &report)
		age := n.coerceCell(row, fields, delivery.FieldAgentAge, &report)

		records = append(records, delivery.CleanRecord{
			DeliveryTime: *deliveryTime,
			AgentRating:  rating,
			AgentAge:     age,
			Weather:      normalizeCategory(cell(row, fields, delivery.FieldWeather), titler),
			Traffic:      normalizeCategory(cell(row, fields, delivery.FieldTraffic), titler),
			Vehicle:      normalizeCategory(cell(row, fields, delivery.FieldVehicle), titler),
			Area:         normalizeCategory(cell(row, fields, delivery.FieldArea), titler),
			Category:     normalizeCategory(cell(row, fields, delivery.FieldCategory), titler),
		})
	}

	report.RowsAfterDrop = len(records)
	report.DroppedRows = report.RowsBeforeDrop - report.RowsAfterDrop

	return records, fields, report, nil
}

// coerceCell coerces one numeric cell, counting non-missing values that fail
// to parse in the report.
func (n *Normalizer) coerceCell(row tabular.RawRow, fields delivery.FieldMap, field delivery.Field, report *LoadReport) *float64 {
	raw := strings.TrimSpace(cell(row, fields, field))
	value := n.coercer.Coerce(raw)
	if value == nil && raw != "" && !tabular.IsNoneLike(raw) {
		report.ParseFailures[string(field)]++
	}
	return value
}

// cell looks up the raw value for a canonical field; unresolved fields read
// as missing for every row.
func cell(row tabular.RawRow, fields delivery.FieldMap, field delivery.Field) string {
	if !fields.Resolved(field) {
		return ""
	}
	return row[fields.Header(field)]
}

// normalizeCategory trims, replaces missing and none-like tokens with
// "Unknown", and title-cases the remaining text.
func normalizeCategory(raw string, titler cases.Caser) string {
	value := strings.TrimSpace(raw)
	if value == "" || tabular.IsNoneLike(value) {
		return delivery.UnknownCategory
	}
	return titler.String(value)
}

// dedupeRows removes exact-duplicate rows, keeping first occurrences. Rows
// are compared cell-wise across all columns in header order.
func dedupeRows(headers []string, rows []tabular.RawRow) []tabular.RawRow {
	seen := make(map[string]struct{}, len(rows))
	deduped := make([]tabular.RawRow, 0, len(rows))
	for _, row := range rows {
		key := rowKey(headers, row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, row)
	}
	return deduped
}

func rowKey(headers []string, row tabular.RawRow) string {
	cells := make([]string, len(headers))
	for i, header := range headers {
		cells[i] = row[header]
	}
	return strings.Join(cells, "\x1f")
}
