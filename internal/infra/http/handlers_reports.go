package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/chemtrack/chemtrack/internal/domain/reports"
)

type reportDTO struct {
	ReportID   int64    `json:"report_id"`
	ReportName string   `json:"report_name"`
	Parameters []string `json:"parameters"`
}

func toReportDTO(rep *reports.Report) reportDTO {
	params := rep.Parameters
	if params == nil {
		params = []string{}
	}
	return reportDTO{ReportID: rep.ID, ReportName: rep.Name, Parameters: params}
}

func (h *handlers) listReports(w http.ResponseWriter, r *http.Request) {
	reps, err := h.d.Reports.List(r.Context())
	if err != nil {
		h.d.Log.Error("report list failed", "request_id", reqID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error retrieving reports",
		})
		return
	}

	out := make([]reportDTO, 0, len(reps))
	for i := range reps {
		out = append(out, toReportDTO(&reps[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"reports": out,
		"message": fmt.Sprintf("Found %d reports", len(out)),
	})
}

// reportFromRequest resolves the {reportID} path parameter to a stored
// report, writing the error response itself when resolution fails.
func (h *handlers) reportFromRequest(w http.ResponseWriter, r *http.Request) *reports.Report {
	id, err := strconv.ParseInt(chi.URLParam(r, "reportID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid report id",
		})
		return nil
	}

	rep, err := h.d.Reports.GetByID(r.Context(), id)
	if err != nil {
		h.d.Log.Error("report lookup failed", "request_id", reqID(r.Context()), "report_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error retrieving report",
		})
		return nil
	}
	if rep == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": fmt.Sprintf("Report with ID %d not found", id),
		})
		return nil
	}
	return rep
}

func (h *handlers) getReport(w http.ResponseWriter, r *http.Request) {
	rep := h.reportFromRequest(w, r)
	if rep == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"report":  toReportDTO(rep),
	})
}

func (h *handlers) runReport(w http.ResponseWriter, r *http.Request) {
	rep := h.reportFromRequest(w, r)
	if rep == nil {
		return
	}

	res, err := h.d.Reports.Execute(r.Context(), rep)
	if err != nil {
		h.d.Log.Error("report execution failed", "request_id", reqID(r.Context()), "report_id", rep.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error executing report",
		})
		return
	}

	rows := res.Rows
	if rows == nil {
		rows = [][]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"columns":   res.Columns,
		"rows":      rows,
		"row_count": res.RowCount,
	})
}

func (h *handlers) exportReport(w http.ResponseWriter, r *http.Request) {
	rep := h.reportFromRequest(w, r)
	if rep == nil {
		return
	}

	res, err := h.d.Reports.Execute(r.Context(), rep)
	if err != nil {
		h.d.Log.Error("report execution failed", "request_id", reqID(r.Context()), "report_id", rep.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error executing report",
		})
		return
	}

	data, err := reports.ExportXLSX(rep, res)
	if err != nil {
		h.d.Log.Error("report export failed", "request_id", reqID(r.Context()), "report_id", rep.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error exporting report",
		})
		return
	}

	fileName := fmt.Sprintf("report_%d_%s.xlsx", rep.ID, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
