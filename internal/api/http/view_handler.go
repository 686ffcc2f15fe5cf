package http

import (
	"fmt"
	"net/http"

	"equipment-tracker/internal/board"
	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/export"
	"equipment-tracker/internal/timeline"
)

func (h *Handler) showBoard(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	pageSize := h.board.PageSize
	if pageSize <= 0 {
		pageSize = board.DefaultPageSize
	}
	result := board.Build(board.SortByCode(items), board.Query{
		Term: readString(qs, "q", ""),
		Criteria: board.Criteria{
			Type:   readString(qs, "type", board.All),
			Branch: readString(qs, "branch", board.All),
			Status: readString(qs, "status", board.All),
		},
		Page:     readInt(qs, "page", 1),
		PageSize: min(readInt(qs, "pageSize", pageSize), board.MaxPageSize),
	})
	if err := writeJSON(w, http.StatusOK, result); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showTimeline(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	view, err := timeline.ParseView(readString(qs, "view", h.board.DefaultView))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	anchor := domain.DateOf(h.now())
	if raw := readString(qs, "anchor", ""); raw != "" {
		anchor, err = domain.ParseDate(raw)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("invalid anchor: %w", err))
			return
		}
	}

	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	items = board.Filter(board.Search(items, readString(qs, "q", "")), board.Criteria{
		Type:   readString(qs, "type", board.All),
		Branch: readString(qs, "branch", board.All),
	})

	width := readFloat(qs, "width", float64(h.board.TimelineWidth))
	minRows := h.board.MinRows
	if minRows <= 0 {
		minRows = timeline.DefaultMinRows
	}
	tl := timeline.Build(items, view, anchor, width, minRows)
	if err := writeJSON(w, http.StatusOK, tl); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listRentals(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rentals.ListRentalEntries(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, entries); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Handler) exportEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	now := h.now()
	data, err := export.BuildFleetXLSX(board.SortByCode(items), now)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeAttachment(w, export.ContentTypeXLSX, fmt.Sprintf("fleet-%s.xlsx", now.Format("2006-01-02")), data)
}

func (h *Handler) exportRentals(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rentals.ListRentalEntries(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	now := h.now()
	data, err := export.BuildRentalReportPDF(entries, now)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeAttachment(w, export.ContentTypePDF, fmt.Sprintf("rentals-%s.pdf", now.Format("2006-01-02")), data)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
