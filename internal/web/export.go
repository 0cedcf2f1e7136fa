package web

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// buildWorkbook writes each sheet as a header row followed by data rows.
func buildWorkbook(sheets ...sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.Name, err)
		}

		for c, h := range s.Headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(s.Name, cell, h); err != nil {
				return nil, err
			}
		}
		for r, row := range s.Rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(s.Name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}
	return f.WriteToBuffer()
}

// ExportLeaderboard downloads the rankings table.
func (h *Handler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.Managers(r.Context())
	if err != nil {
		h.exportFailed(w, r, "leaderboard", err)
		return
	}
	board := analytics.BuildLeaderboard(ds.Data)

	rows := make([][]any, len(board.Rows))
	for i, row := range board.Rows {
		rows[i] = []any{row.Rank, row.Manager, row.Team, row.Points, row.TeamValue, row.Consistency, row.AvgPPW, row.Transfers}
	}
	h.writeWorkbook(w, r, "leaderboard.xlsx", sheet{
		Name:    "Leaderboard",
		Headers: []string{"Rank", "Manager", "Team", "Points", "Value (£m)", "Consistency", "Avg PPW", "Transfers"},
		Rows:    rows,
	})
}

// ExportTransfers downloads every transfer of the selected managers (all
// managers when none are given) plus the per-manager summary.
func (h *Handler) ExportTransfers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ds, err := h.svc.Managers(ctx)
	if err != nil {
		h.exportFailed(w, r, "transfers", err)
		return
	}
	transfers, err := h.svc.Transfers(ctx)
	if err != nil {
		h.exportFailed(w, r, "transfers", err)
		return
	}
	players, err := h.svc.Players(ctx)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, h.logger), "exporting transfers without player names",
			slog.String(logging.FieldError, err.Error()))
	}

	selected := selectedManagers(r, ds.Data, analytics.ManagerNames(ds.Data))
	analysis := analytics.AnalyzeTransfers(transfers, ds.Data, players, selected)

	all := make([][]any, len(analysis.All))
	for i, t := range analysis.All {
		all[i] = []any{t.Manager, t.Gameweek, t.PlayerOut, t.PlayerIn, t.NetBenefit, t.TransferCost, t.WasSuccessful}
	}
	summary := make([][]any, len(analysis.PerManager))
	for i, s := range analysis.PerManager {
		summary[i] = []any{s.Manager, s.Successful, s.Total, s.TotalBenefit, s.TotalCost, s.SuccessRate, s.NetGain}
	}
	h.writeWorkbook(w, r, "transfers.xlsx",
		sheet{
			Name:    "Transfers",
			Headers: []string{"Manager", "GW", "Player Out", "Player In", "Net Benefit", "Cost", "Success"},
			Rows:    all,
		},
		sheet{
			Name:    "By Manager",
			Headers: []string{"Manager", "Successful", "Total", "Total Benefit", "Total Cost", "Success Rate %", "Net Gain"},
			Rows:    summary,
		},
	)
}

func (h *Handler) writeWorkbook(w http.ResponseWriter, r *http.Request, filename string, sheets ...sheet) {
	logger := logging.FromContext(r.Context(), h.logger)
	buf, err := buildWorkbook(sheets...)
	if err != nil {
		logging.Error(logger, "build workbook failed", err, slog.String("file", filename))
		http.Error(w, "failed to build export", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Warn(logger, "write export failed", slog.String(logging.FieldError, err.Error()))
	}
}

func (h *Handler) exportFailed(w http.ResponseWriter, r *http.Request, what string, err error) {
	logging.Warn(logging.FromContext(r.Context(), h.logger), "export fetch failed",
		slog.String("export", what),
		slog.String(logging.FieldError, err.Error()),
	)
	http.Error(w, "league data unavailable", http.StatusBadGateway)
}
