package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"vinworld/docket"
	"vinworld/models"
	"vinworld/upstream"
	"vinworld/utils"
)

type DocketHandler struct {
	API  upstream.API
	Auth *AuthHandler
}

type docketListPage struct {
	Dockets    []models.Docket `json:"dockets"`
	Filtered   int             `json:"filtered"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Stats      docket.Stats    `json:"stats"`
}

// List serves the dashboard: fetch for the caller's location, run the
// status/date/search filters and slice out one page of 10.
func (h *DocketHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Auth.Require(w, r)
	if !ok {
		return
	}

	dockets, err := h.API.GetDockets(r.Context(), sess.User.LocationID, "")
	if err != nil {
		h.writeUpstreamError(w, err, "Failed to load dockets")
		return
	}

	q := r.URL.Query()
	pipeline := docket.NewPipeline(dockets)
	if v := q.Get("status"); v != "" {
		pipeline.SetStatus(v)
	}
	if v := q.Get("date"); v != "" {
		pipeline.SetDateRange(v)
	}
	if v := q.Get("search"); v != "" {
		pipeline.SetSearch(v)
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			pipeline.SetPage(page)
		}
	}

	filtered := pipeline.Filtered()
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Count:   len(filtered),
		Data: docketListPage{
			Dockets:    pipeline.Page(),
			Filtered:   len(filtered),
			Page:       pipeline.CurrentPage(),
			TotalPages: pipeline.TotalPages(),
			Stats:      pipeline.Stats(),
		},
	})
}

type docketView struct {
	models.Docket
	TotalWeight       float64 `json:"totalWeight"`
	InvoiceValueWords string  `json:"invoiceValueWords,omitempty"`
}

// Get serves the view screen for one docket number.
func (h *DocketHandler) Get(w http.ResponseWriter, r *http.Request, docketNo string) {
	sess, ok := h.Auth.Require(w, r)
	if !ok {
		return
	}

	dockets, err := h.API.GetDockets(r.Context(), sess.User.LocationID, docketNo)
	if err != nil {
		h.writeUpstreamError(w, err, "Failed to load docket")
		return
	}
	if len(dockets) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "No docket data found",
		})
		return
	}

	d := dockets[0]
	view := docketView{Docket: d, TotalWeight: totalWeight(d.Shipments)}
	if value, err := strconv.ParseFloat(d.InvoiceValue, 64); err == nil && value > 0 {
		view.InvoiceValueWords = utils.NumberToCurrencyWords(value)
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: view})
}

// Consignors lists the active registered consignors for reference
// selection.
func (h *DocketHandler) Consignors(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Auth.Require(w, r); !ok {
		return
	}

	consignors, err := h.API.GetConsignors(r.Context())
	if err != nil {
		h.writeUpstreamError(w, err, "Failed to load consignors")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Count:   len(consignors),
		Data:    consignors,
	})
}

func (h *DocketHandler) writeUpstreamError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, http.StatusBadGateway, ApiResponse{
			Success: false,
			Message: apiErr.Message,
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, ApiResponse{
		Success: false,
		Message: fallback,
	})
}

// totalWeight sums weight * boxes across stored shipments, same as the
// edit screen footer.
func totalWeight(shipments []models.DocketShipment) float64 {
	var sum float64
	for _, s := range shipments {
		weight, _ := strconv.ParseFloat(s.ActualWeight, 64)
		boxes := s.NoOfBox
		if boxes <= 0 {
			boxes = 1
		}
		sum += weight * float64(boxes)
	}
	return sum
}
