package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lastmile/domain/delivery"
	apperrors "lastmile/internal/errors"
	"lastmile/internal/pipeline"
	"lastmile/internal/session"
)

// sessionView is the JSON shape of a session's immutable load state.
type sessionView struct {
	SessionID string              `json:"session_id"`
	Source    string              `json:"source"`
	Fields    delivery.FieldMap   `json:"fields"`
	Threshold delivery.Threshold  `json:"threshold"`
	Report    pipeline.LoadReport `json:"report"`
	Values    map[string][]string `json:"values"`
	Selection map[string][]string `json:"selection"`
	KPIs      delivery.KPISummary `json:"kpis"`
	Warnings  []string            `json:"warnings,omitempty"`
}

func (a *App) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	path := a.cfg.Data.SourceFile
	if r.Body != nil && r.ContentLength > 0 {
		var body struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			a.writeError(w, apperrors.InvalidInput("request body is not valid JSON"))
			return
		}
		if body.Path != "" {
			path = body.Path
		}
	}

	sess, err := a.sessions.Create(path)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, a.buildSessionView(sess))
}

func (a *App) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, a.buildSessionView(sess))
}

func (a *App) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleValues(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	field := delivery.Field(r.URL.Query().Get("field"))
	values, err := sess.DistinctValues(field)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"field":  field,
		"values": values,
	})
}

func (a *App) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	var body map[string][]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.writeError(w, apperrors.InvalidInput("request body is not valid JSON"))
		return
	}

	selection := make(delivery.Selection, len(body))
	for field, values := range body {
		selection[delivery.Field(field)] = delivery.NewValueSet(values...)
	}

	if err := sess.SetSelection(selection); err != nil {
		a.writeError(w, err)
		return
	}

	kpis := sess.KPIs()
	response := map[string]interface{}{
		"selection": selectionJSON(sess.Selection()),
		"kpis":      kpis,
	}
	if kpis.TotalCount == 0 {
		// Recoverable: the view is empty, not broken. Offer the reset route.
		response["warning"] = "current selection matches no records; reset filters to restore the full view"
	}
	a.writeJSON(w, http.StatusOK, response)
}

func (a *App) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	sess.ResetSelection()
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"selection": selectionJSON(sess.Selection()),
		"kpis":      sess.KPIs(),
	})
}

func (a *App) handleKPIs(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, sess.KPIs())
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	field := delivery.Field(r.URL.Query().Get("group"))
	rows, err := sess.Summarize(field)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"group": field,
		"rows":  rows,
	})
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": a.profiler.Profile(sess.Filtered()),
	})
}

// buildSessionView assembles the full session state response.
func (a *App) buildSessionView(sess *session.Session) sessionView {
	ds := sess.Dataset()

	values := make(map[string][]string, len(delivery.GroupableFields))
	for _, field := range delivery.GroupableFields {
		fieldValues, err := sess.DistinctValues(field)
		if err != nil {
			continue
		}
		values[string(field)] = fieldValues
	}

	view := sessionView{
		SessionID: sess.ID.String(),
		Source:    ds.SourcePath,
		Fields:    ds.Fields,
		Threshold: ds.Threshold,
		Report:    ds.Report,
		Values:    values,
		Selection: selectionJSON(sess.Selection()),
		KPIs:      sess.KPIs(),
	}
	if ds.Empty() {
		view.Warnings = append(view.Warnings,
			"all rows were dropped during cleaning; aggregates are empty")
	}
	return view
}

func selectionJSON(selection delivery.Selection) map[string][]string {
	out := make(map[string][]string, len(selection))
	for field, set := range selection {
		out[string(field)] = set.Values()
	}
	return out
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

// writeError maps pipeline errors onto coded responses.
func (a *App) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.FromDomain(err)
	status := statusForCode(appErr.Code)
	if status >= http.StatusInternalServerError {
		a.log.Error("request failed: %v", err)
	} else {
		a.log.Warn("request rejected (%s): %v", appErr.Code, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}

func statusForCode(code string) int {
	switch code {
	case apperrors.CodeMissingSource, apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeUnparseableSource, apperrors.CodeUnresolvedField:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
