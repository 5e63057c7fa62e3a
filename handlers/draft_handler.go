package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"vinworld/docket"
	"vinworld/models"
	"vinworld/ocr"
	"vinworld/upstream"
	"vinworld/utils"
)

// maxImageBytes bounds document/OCR image uploads.
const maxImageBytes = 10 << 20

// DraftHandler drives the add/edit form screens. Each session owns at
// most one open draft.
type DraftHandler struct {
	API        upstream.API
	Auth       *AuthHandler
	Forms      *docket.FormStore
	Recognizer ocr.Recognizer
	Submit     *docket.Submitter
	// ArchiveImages enables keeping a copy of uploaded document images.
	ArchiveImages bool
}

type openDraftRequest struct {
	// DocketNo switches the form into the edit flow, pre-populated from
	// the fetched docket.
	DocketNo string `json:"docketNo,omitempty"`

	// Variant switches; nil keeps the default.
	RequireConsignorEntry   *bool `json:"requireConsignorEntry,omitempty"`
	AllowConsignorReference *bool `json:"allowConsignorReference,omitempty"`
	EnableOCR               *bool `json:"enableOcr,omitempty"`
}

// Open starts a fresh form for the session, discarding any previous one.
func (h *DraftHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Auth.Require(w, r)
	if !ok {
		return
	}

	var req openDraftRequest
	if r.Body != nil {
		// An empty body opens the default add form.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cfg := docket.DefaultFormConfig()
	if req.RequireConsignorEntry != nil {
		cfg.RequireConsignorEntry = *req.RequireConsignorEntry
	}
	if req.AllowConsignorReference != nil {
		cfg.AllowConsignorReference = *req.AllowConsignorReference
	}
	if req.EnableOCR != nil {
		cfg.EnableOCR = *req.EnableOCR
	}

	f := h.Forms.Open(sess.ID, cfg)

	if req.DocketNo != "" {
		dockets, err := h.API.GetDockets(r.Context(), sess.User.LocationID, req.DocketNo)
		if err != nil {
			h.writeSubmitError(w, docket.ErrNetwork)
			return
		}
		if len(dockets) == 0 {
			writeJSON(w, http.StatusNotFound, ApiResponse{
				Success: false,
				Message: "No docket data found",
			})
			return
		}
		f.LoadDocket(&dockets[0])
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// Show renders the current form state.
func (h *DraftHandler) Show(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

type setFieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SetField applies one keyed input change.
func (h *DraftHandler) SetField(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}

	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}
	if err := f.SetField(req.Name, req.Value); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// SelectConsignor fills the consignor block from the registered list.
func (h *DraftHandler) SelectConsignor(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}

	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	consignors, err := h.API.GetConsignors(r.Context())
	if err != nil {
		h.writeSubmitError(w, docket.ErrNetwork)
		return
	}
	for _, c := range consignors {
		if c.ID == req.ID {
			if err := f.SelectConsignor(c); err != nil {
				writeJSON(w, http.StatusBadRequest, ApiResponse{
					Success: false,
					Message: err.Error(),
				})
				return
			}
			writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, ApiResponse{
		Success: false,
		Message: "Consignor not found",
	})
}

// ClearConsignor reverts to manual consignor entry.
func (h *DraftHandler) ClearConsignor(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}
	f.ClearConsignor()
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// SelectBoxType applies a box template to the pending shipment line.
func (h *DraftHandler) SelectBoxType(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}

	var req struct {
		BoxType string `json:"boxType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}
	f.Editor().SelectBoxType(models.BoxType(req.BoxType))
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// SetDimension stores a manual dimension; only meaningful for "Other".
func (h *DraftHandler) SetDimension(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}

	var req struct {
		Field string  `json:"field"`
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}
	f.Editor().SetDimension(req.Field, req.Value)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// AddShipment completes the pending mini-form and attempts the append.
// A missing or zero weight/quantity leaves the list unchanged; the
// response carries the state either way.
func (h *DraftHandler) AddShipment(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}

	var req struct {
		Weight   *string `json:"weight,omitempty"`
		Quantity *string `json:"quantity,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	editor := f.Editor()
	if req.Weight != nil {
		editor.SetWeight(*req.Weight)
	}
	if req.Quantity != nil {
		editor.SetQuantity(*req.Quantity)
	}
	editor.AddLine()
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// RemoveShipment drops the line with the given ephemeral id.
func (h *DraftHandler) RemoveShipment(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "invalid shipment id",
		})
		return
	}
	f.Editor().RemoveLine(id)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

type ocrResult struct {
	Text   string            `json:"text"`
	Parsed ocr.ParsedAddress `json:"parsed"`
}

// OCR runs text recognition over an uploaded image and autofills the
// consignor block. A recognition failure only marks the OCR result area;
// the form fields stay untouched and manual entry continues.
func (h *DraftHandler) OCR(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}
	if h.Recognizer == nil || !f.Config().EnableOCR {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "OCR is not enabled",
		})
		return
	}

	image, _, readErr := readImage(r)
	if readErr != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: readErr.Error(),
		})
		return
	}

	text, err := h.Recognizer.Recognize(r.Context(), image)
	if err != nil {
		log.Printf("ocr recognition failed: %v", err)
		writeJSON(w, http.StatusOK, ApiResponse{
			Success: false,
			Message: ocr.FailureText,
		})
		return
	}

	parsed := ocr.ParseAddress(text)
	if err := f.ApplyOCR(parsed.Mobile, parsed.Pincode, parsed.Address); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    ocrResult{Text: text, Parsed: parsed},
	})
}

// Reset discards the draft back to defaults.
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.form(w, r)
	if !ok {
		return
	}
	f.Reset()
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: f.Snapshot()})
}

// SubmitCreate validates and dispatches the draft to add_docket.
func (h *DraftHandler) SubmitCreate(w http.ResponseWriter, r *http.Request) {
	sess, f, ok := h.form(w, r)
	if !ok {
		return
	}

	if err := h.Submit.Create(r.Context(), f, sess.User); err != nil {
		h.writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Docket created successfully! Redirecting...",
	})
}

// SubmitUpdate posts the edit form to update_docket as multipart form
// data, passing through an optional document image.
func (h *DraftHandler) SubmitUpdate(w http.ResponseWriter, r *http.Request) {
	sess, f, ok := h.form(w, r)
	if !ok {
		return
	}

	var image *upstream.ImageUpload
	if data, header, err := readImage(r); err == nil && len(data) > 0 {
		image = &upstream.ImageUpload{
			Filename:    header.filename,
			ContentType: header.contentType,
			Data:        data,
		}
	}

	if err := h.Submit.Update(r.Context(), f, sess.User, image); err != nil {
		h.writeSubmitError(w, err)
		return
	}

	if image != nil && h.ArchiveImages {
		if url, err := utils.ArchiveImageToR2(r.Context(), image.Data, image.Filename, image.ContentType); err != nil {
			log.Printf("image archive failed: %v", err)
		} else {
			log.Printf("archived docket image: %s", url)
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Docket updated successfully!",
	})
}

func (h *DraftHandler) form(w http.ResponseWriter, r *http.Request) (*models.Session, *docket.Form, bool) {
	sess, ok := h.Auth.Require(w, r)
	if !ok {
		return nil, nil, false
	}
	f, ok := h.Forms.Get(sess.ID)
	if !ok {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "No open draft. Start one first.",
		})
		return nil, nil, false
	}
	return sess, f, true
}

func (h *DraftHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var vErr *docket.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: vErr.Message,
		})
	case errors.Is(err, docket.ErrSubmitInProgress):
		writeJSON(w, http.StatusConflict, ApiResponse{
			Success: false,
			Message: "Submission already in progress",
		})
	default:
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
			Message: "Network error. Please try again.",
		})
	}
}

type imageHeader struct {
	filename    string
	contentType string
}

func readImage(r *http.Request) ([]byte, imageHeader, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, imageHeader{}, err
	}
	file, fh, err := r.FormFile("image")
	if err != nil {
		return nil, imageHeader{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, imageHeader{}, err
	}
	return data, imageHeader{
		filename:    fh.Filename,
		contentType: fh.Header.Get("Content-Type"),
	}, nil
}
