package docket

import (
	"context"
	"errors"
	"strconv"

	"vinworld/models"
	"vinworld/upstream"
)

// ErrSubmitInProgress hard-blocks a second submit while one is in flight.
// The disabled button on the screen was only cosmetic; this is the guard.
var ErrSubmitInProgress = errors.New("a submission is already in progress")

// ErrNetwork replaces transport-level failures. The draft is preserved and
// nothing is retried automatically; every retry is a manual user action.
var ErrNetwork = errors.New("Network error. Please try again.")

// Submitter packages a validated draft and drives the create/update call
// for one form session.
type Submitter struct {
	API upstream.API
}

// Create validates the form, assembles the add_docket payload stamped with
// the caller's identity, and issues the create call. On success the draft
// is reset to defaults; on any failure it is left untouched.
func (s *Submitter) Create(ctx context.Context, f *Form, user models.UserProfile) error {
	if err := f.beginSubmit(); err != nil {
		return err
	}
	defer f.endSubmit()

	if err := f.Validate(); err != nil {
		return err
	}

	payload := s.BuildCreatePayload(f, user)
	if err := s.API.CreateDocket(ctx, payload); err != nil {
		return classify(err)
	}

	f.Reset()
	return nil
}

// Update assembles the update_docket payload for an existing docket and
// posts it as multipart form data with an optional document image. The
// draft survives either way; the edit screen refetches after success.
func (s *Submitter) Update(ctx context.Context, f *Form, user models.UserProfile, image *upstream.ImageUpload) error {
	if err := f.beginSubmit(); err != nil {
		return err
	}
	defer f.endSubmit()

	if err := f.Validate(); err != nil {
		return err
	}

	payload := s.BuildUpdatePayload(f, user)
	if payload.DocketNo == "" {
		return &ValidationError{Field: "docketNo", Message: "Docket No is required"}
	}
	if err := s.API.UpdateDocket(ctx, payload, image); err != nil {
		return classify(err)
	}
	return nil
}

// BuildCreatePayload projects the draft onto the add_docket body. The
// shipment lines lose their ephemeral ids here.
func (s *Submitter) BuildCreatePayload(f *Form, user models.UserProfile) *models.CreatePayload {
	snap := f.Snapshot()
	d := snap.Draft
	return &models.CreatePayload{
		Consignor:       d.Consignor,
		Consignee:       d.Consignee,
		ShipDate:        d.ShipDate,
		Origin:          d.Origin,
		Destination:     d.Destination,
		ModeOfTransport: d.ModeOfTransport,
		InvoiceRequired: d.InvoiceRequired,
		InvoiceNumber:   d.InvoiceNumber,
		InvoiceValue:    d.InvoiceValue,
		ShipmentType:    d.ShipmentType,
		PickupDate:      d.PickupDate,
		PickupEmployee:  d.PickupEmployee,
		EwayBillNo:      d.EwayBillNo,
		LocationID:      user.LocationID,
		CreatedBy:       user.EmpCode,
		Shipments:       models.ProjectShipments(d.Shipments),
	}
}

// BuildUpdatePayload differs from create in the shapes the update endpoint
// expects: numeric invoice fields, and shipDate mirroring pickupDate.
func (s *Submitter) BuildUpdatePayload(f *Form, user models.UserProfile) *models.UpdatePayload {
	snap := f.Snapshot()
	d := snap.Draft

	invoiceRequired := 0
	if d.InvoiceRequired == models.InvoiceYes {
		invoiceRequired = 1
	}
	invoiceValue, _ := strconv.ParseFloat(d.InvoiceValue, 64)

	return &models.UpdatePayload{
		DocketNo:        d.DocketNo,
		Consignor:       d.Consignor,
		Consignee:       d.Consignee,
		ShipDate:        d.PickupDate,
		Origin:          d.Origin,
		Destination:     d.Destination,
		ModeOfTransport: d.ModeOfTransport,
		InvoiceRequired: invoiceRequired,
		InvoiceNumber:   d.InvoiceNumber,
		InvoiceValue:    invoiceValue,
		ShipmentType:    d.ShipmentType,
		PickupDate:      d.PickupDate,
		PickupEmployee:  d.PickupEmployee,
		EwayBillNo:      d.EwayBillNo,
		LocationID:      user.LocationID,
		Shipments:       models.ProjectShipments(d.Shipments),
	}
}

// classify keeps backend-reported messages verbatim and folds every other
// failure into the generic network error.
func classify(err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrNetwork
}

func (f *Form) beginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrSubmitInProgress
	}
	f.submitting = true
	return nil
}

func (f *Form) endSubmit() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}
