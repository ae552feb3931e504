package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"

	"lastmile/internal/session"
)

// buildReportMarkdown writes the load diagnostics and current KPIs as a
// markdown document.
func buildReportMarkdown(sess *session.Session) string {
	ds := sess.Dataset()
	report := ds.Report
	kpis := sess.KPIs()

	var b strings.Builder
	fmt.Fprintf(&b, "# Delivery Dataset Diagnostics\n\n")
	fmt.Fprintf(&b, "Source: `%s` (loaded %s)\n\n", ds.SourcePath, ds.LoadedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## Cleaning\n\n")
	fmt.Fprintf(&b, "| Stage | Rows |\n|---|---|\n")
	fmt.Fprintf(&b, "| Read from source | %d |\n", report.RowsRead)
	fmt.Fprintf(&b, "| Duplicates removed | %d |\n", report.DuplicatesRemoved)
	fmt.Fprintf(&b, "| Entering drop step | %d |\n", report.RowsBeforeDrop)
	fmt.Fprintf(&b, "| Dropped (unusable delivery time) | %d |\n", report.DroppedRows)
	fmt.Fprintf(&b, "| Clean records | %d |\n\n", report.RowsAfterDrop)

	if len(report.UnresolvedFields) > 0 {
		fmt.Fprintf(&b, "**Unresolved columns** (filled with missing values): %s\n\n",
			strings.Join(report.UnresolvedFields, ", "))
	}
	if len(report.ParseFailures) > 0 {
		fmt.Fprintf(&b, "## Parse failures\n\n")
		for field, count := range report.ParseFailures {
			fmt.Fprintf(&b, "- %s: %d unparseable values treated as missing\n", field, count)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Lateness threshold\n\n")
	if ds.Threshold.Valid {
		fmt.Fprintf(&b, "Late = delivery time > %.2f (mean %.2f + std %.2f), fixed at load time.\n\n",
			ds.Threshold.Cutoff, ds.Threshold.Mean, ds.Threshold.StdDev)
	} else {
		fmt.Fprintf(&b, "Undefined: the clean set is empty, so no record is marked late.\n\n")
	}

	fmt.Fprintf(&b, "## Current view\n\n")
	fmt.Fprintf(&b, "- Deliveries: %d\n", kpis.TotalCount)
	if kpis.AvgDeliveryTime != nil {
		fmt.Fprintf(&b, "- Average delivery time: %.2f min\n", *kpis.AvgDeliveryTime)
	} else {
		fmt.Fprintf(&b, "- Average delivery time: n/a (empty view)\n")
	}
	fmt.Fprintf(&b, "- Late deliveries: %.2f%%\n", kpis.LatePercentage)

	return b.String()
}

// renderMarkdown converts a markdown document to HTML.
func renderMarkdown(doc string) []byte {
	parser := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML([]byte(doc), parser, renderer)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	doc := buildReportMarkdown(sess)
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(doc))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(renderMarkdown(doc))
}
