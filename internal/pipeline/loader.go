package pipeline

import (
	"time"

	"lastmile/adapters/tabular"
	"lastmile/domain/delivery"
	"lastmile/internal"
)

// Dataset is the immutable result of one load: derived records, the field
// resolution, the lateness threshold and the diagnostics. Nothing in it
// changes when the user filters; every view is computed from Records.
type Dataset struct {
	Records    []delivery.DerivedRecord
	Fields     delivery.FieldMap
	Threshold  delivery.Threshold
	Report     LoadReport
	SourcePath string
	LoadedAt   time.Time
}

// Empty reports whether cleaning left no usable rows.
func (d *Dataset) Empty() bool {
	return len(d.Records) == 0
}

// Loader runs the full ingest-normalize-derive pass for one source file.
type Loader struct {
	normalizer *Normalizer
	deriver    *Deriver
	log        *internal.Logger
}

// NewLoader creates a loader.
func NewLoader() *Loader {
	return &Loader{
		normalizer: NewNormalizer(),
		deriver:    NewDeriver(),
		log:        internal.DefaultLogger.WithComponent("Loader"),
	}
}

// Load reads, cleans and derives the dataset at path. Fatal conditions
// (missing file, unparseable file, unresolvable delivery-time column) return
// an error; a dataset that cleans down to zero rows is returned as a valid
// empty Dataset with its diagnostics intact.
func (l *Loader) Load(path string) (*Dataset, error) {
	table, err := tabular.NewDataReader(path).ReadTable()
	if err != nil {
		return nil, err
	}

	records, fields, report, err := l.normalizer.Normalize(table)
	if err != nil {
		return nil, err
	}

	derived, threshold := l.deriver.Derive(records)

	if len(derived) == 0 {
		l.log.Warn("dataset %s is empty after cleaning (%d rows read, %d dropped)",
			path, report.RowsRead, report.DroppedRows)
	} else {
		l.log.Info("loaded %s: %d records, threshold %.2f (mean %.2f + std %.2f)",
			path, len(derived), threshold.Cutoff, threshold.Mean, threshold.StdDev)
	}
	if len(report.UnresolvedFields) > 0 {
		l.log.Warn("unresolved fields for %s: %v", path, report.UnresolvedFields)
	}

	return &Dataset{
		Records:    derived,
		Fields:     fields,
		Threshold:  threshold,
		Report:     report,
		SourcePath: path,
		LoadedAt:   time.Now(),
	}, nil
}
