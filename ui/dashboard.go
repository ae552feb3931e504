package ui

import (
	"net/http"

	"lastmile/domain/delivery"
	"lastmile/internal/pipeline"
	"lastmile/internal/session"
)

type summaryTable struct {
	Title string
	Rows  []delivery.SummaryRow
}

type dashboardData struct {
	SessionID string
	Source    string
	Threshold delivery.Threshold
	Report    pipeline.LoadReport
	KPIs      delivery.KPISummary
	Summaries []summaryTable
	Warning   string
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := a.dashboardSession()
	if err != nil {
		a.log.Error("dashboard session failed: %v", err)
		http.Error(w, "Dataset could not be loaded: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ds := sess.Dataset()
	data := dashboardData{
		SessionID: sess.ID.String(),
		Source:    ds.SourcePath,
		Threshold: ds.Threshold,
		Report:    ds.Report,
		KPIs:      sess.KPIs(),
	}
	if ds.Empty() {
		data.Warning = "All rows were dropped during cleaning; nothing to aggregate."
	}

	for _, field := range delivery.GroupableFields {
		rows, err := sess.Summarize(field)
		if err != nil {
			continue
		}
		data.Summaries = append(data.Summaries, summaryTable{Title: string(field), Rows: rows})
	}

	a.renderTemplate(w, "dashboard.html", data)
}

// dashboardSession returns the shared session backing the dashboard page,
// loading it on first visit. API clients open their own sessions and are
// unaffected by it.
func (a *App) dashboardSession() (*session.Session, error) {
	a.dashMu.Lock()
	defer a.dashMu.Unlock()

	if a.dashboardID != "" {
		if sess, err := a.sessions.Get(a.dashboardID); err == nil {
			return sess, nil
		}
		// Evicted; reload below.
	}

	sess, err := a.sessions.Create(a.cfg.Data.SourceFile)
	if err != nil {
		return nil, err
	}
	a.dashboardID = sess.ID.String()
	return sess, nil
}
