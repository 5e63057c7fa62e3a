package docket

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"vinworld/models"
)

// FormConfig collapses the historical screen variants into one
// parameterized form.
type FormConfig struct {
	// RequireConsignorEntry keeps the consignor fields on the required
	// list even when no reference is selected.
	RequireConsignorEntry bool
	// AllowConsignorReference enables picking a registered consignor
	// instead of typing one; a selected reference drops the consignor
	// fields from the required list.
	AllowConsignorReference bool
	// EnableOCR allows image-based autofill of the consignor block.
	EnableOCR bool
	Presets   map[models.BoxType]models.BoxPreset
}

func DefaultFormConfig() FormConfig {
	return FormConfig{
		RequireConsignorEntry:   true,
		AllowConsignorReference: true,
		EnableOCR:               true,
		Presets:                 models.DefaultPresets,
	}
}

// requiredFields is the canonical required list, checked in order; only
// the first missing field is reported.
var requiredFields = []string{
	"consignorName", "consignorMobile", "consignorAddress",
	"consigneeName", "consigneeMobile", "consigneeAddress",
	"shipDate", "origin", "destination", "modeOfTransport",
	"shipmentType", "pickupDate", "pickupEmployee",
}

var consignorFields = map[string]bool{
	"consignorName":    true,
	"consignorMobile":  true,
	"consignorAddress": true,
}

// ValidationError blocks submission locally; no network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Form is the single source of truth for one draft's field state. It is
// exclusively owned by one open form session; the mutex only serializes
// that session's own HTTP requests.
type Form struct {
	mu sync.Mutex

	cfg    FormConfig
	draft  *models.DocketDraft
	editor *ShipmentEditor

	showInvoiceFields bool
	submitting        bool
}

func NewForm(cfg FormConfig) *Form {
	if cfg.Presets == nil {
		cfg.Presets = models.DefaultPresets
	}
	return &Form{
		cfg:    cfg,
		draft:  models.NewDocketDraft(),
		editor: NewShipmentEditor(cfg.Presets),
	}
}

func (f *Form) Config() FormConfig { return f.cfg }

// SetField routes a keyed input change onto the draft. Flipping
// invoiceRequired toggles the invoice sub-fields' visibility.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setFieldLocked(name, value)
}

func (f *Form) setFieldLocked(name, value string) error {
	d := f.draft
	switch name {
	case "consignorName":
		d.Consignor.Name = value
	case "consignorMobile":
		d.Consignor.Mobile = value
	case "consignorAddress":
		d.Consignor.Address = value
	case "consignorDistrict":
		d.Consignor.District = value
	case "consignorState":
		d.Consignor.State = value
	case "consignorPincode":
		d.Consignor.Pincode = value
	case "consigneeName":
		d.Consignee.Name = value
	case "consigneeMobile":
		d.Consignee.Mobile = value
	case "consigneeAddress":
		d.Consignee.Address = value
	case "consigneeDistrict":
		d.Consignee.District = value
	case "consigneeState":
		d.Consignee.State = value
	case "consigneePincode":
		d.Consignee.Pincode = value
	case "shipDate":
		d.ShipDate = value
	case "origin":
		d.Origin = value
	case "destination":
		d.Destination = value
	case "modeOfTransport":
		d.ModeOfTransport = value
	case "invoiceRequired":
		d.InvoiceRequired = value
		f.showInvoiceFields = value == models.InvoiceYes
	case "invoiceNumber":
		d.InvoiceNumber = value
	case "invoiceValue":
		d.InvoiceValue = value
	case "shipmentType":
		d.ShipmentType = value
	case "pickupDate":
		d.PickupDate = value
	case "pickupEmployee":
		d.PickupEmployee = value
	case "ewayBillNo":
		d.EwayBillNo = value
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

// SelectConsignor fills the consignor block from a registered reference.
// Exactly one of reference / manual entry supplies consignor data at
// submit; selecting a reference supersedes whatever was typed.
func (f *Form) SelectConsignor(c models.Consignor) error {
	if !f.cfg.AllowConsignorReference {
		return fmt.Errorf("consignor selection is not enabled on this form")
	}
	if !c.Active() {
		return fmt.Errorf("consignor %q is not active", c.Name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.ConsignorRef = &c
	f.draft.Consignor = c.AsParty()
	return nil
}

// ClearConsignor reverts to manual consignor entry.
func (f *Form) ClearConsignor() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.ConsignorRef = nil
	f.draft.Consignor = models.Party{}
}

// ApplyOCR fills the consignor block from recognized text: the raw text
// becomes the address verbatim, plus first-match pincode and mobile.
// Empty extractions overwrite with empty, same as the screens did.
func (f *Form) ApplyOCR(mobile, pincode, address string) error {
	if !f.cfg.EnableOCR {
		return fmt.Errorf("OCR autofill is not enabled on this form")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Consignor.Address = address
	f.draft.Consignor.Pincode = pincode
	f.draft.Consignor.Mobile = mobile
	return nil
}

// Validate checks the required list in order and reports only the first
// missing field, then the shipment list gate. No digit-shape validation
// happens here; a malformed mobile or pincode does not block submission.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() error {
	byRef := f.cfg.AllowConsignorReference && f.draft.ConsignorRef != nil
	for _, field := range requiredFields {
		if consignorFields[field] && (byRef || !f.cfg.RequireConsignorEntry) {
			continue
		}
		if strings.TrimSpace(f.fieldValue(field)) == "" {
			return &ValidationError{
				Field:   field,
				Message: humanize(field) + " is required",
			}
		}
	}
	if f.editor.Len() == 0 {
		return &ValidationError{
			Field:   "shipments",
			Message: "Please add at least one shipment",
		}
	}
	return nil
}

func (f *Form) fieldValue(name string) string {
	d := f.draft
	switch name {
	case "consignorName":
		return d.Consignor.Name
	case "consignorMobile":
		return d.Consignor.Mobile
	case "consignorAddress":
		return d.Consignor.Address
	case "consigneeName":
		return d.Consignee.Name
	case "consigneeMobile":
		return d.Consignee.Mobile
	case "consigneeAddress":
		return d.Consignee.Address
	case "shipDate":
		return d.ShipDate
	case "origin":
		return d.Origin
	case "destination":
		return d.Destination
	case "modeOfTransport":
		return d.ModeOfTransport
	case "shipmentType":
		return d.ShipmentType
	case "pickupDate":
		return d.PickupDate
	case "pickupEmployee":
		return d.PickupEmployee
	}
	return ""
}

// Editor exposes the shipment collection editor bound to this draft.
func (f *Form) Editor() *ShipmentEditor { return f.editor }

// Snapshot is what the form screen renders.
type Snapshot struct {
	Draft             models.DocketDraft  `json:"draft"`
	Pending           models.ShipmentLine `json:"pendingShipment"`
	ShowInvoiceFields bool                `json:"showInvoiceFields"`
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := *f.draft
	d.Shipments = f.editor.Lines()
	return Snapshot{
		Draft:             d,
		Pending:           f.editor.Pending(),
		ShowInvoiceFields: f.showInvoiceFields,
	}
}

// Reset discards the draft back to defaults, dropping all shipment lines.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.draft = models.NewDocketDraft()
	f.editor.Reset()
	f.showInvoiceFields = false
}

// LoadDocket populates the form from a fetched docket for the edit flow.
func (f *Form) LoadDocket(d *models.Docket) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft := models.NewDocketDraft()
	draft.DocketNo = d.DocketNo
	draft.Consignor = models.Party{
		Name: d.ConsignorName, Mobile: d.ConsignorMobile, Address: d.ConsignorAddress,
		District: d.ConsignorDistrict, State: d.ConsignorState, Pincode: d.ConsignorPinCode,
	}
	draft.Consignee = models.Party{
		Name: d.ConsigneeName, Mobile: d.ConsigneeMobile, Address: d.ConsigneeAddress,
		District: d.ConsigneeDistrict, State: d.ConsigneeState, Pincode: d.ConsigneePinCode,
	}
	draft.ShipDate = d.ShipDate
	draft.Origin = d.Origin
	draft.Destination = d.Destination
	draft.ModeOfTransport = d.ModeOfTransport
	if d.InvoiceRequired == "1" || strings.EqualFold(d.InvoiceRequired, models.InvoiceYes) {
		draft.InvoiceRequired = models.InvoiceYes
	}
	draft.InvoiceNumber = d.InvoiceNumber
	draft.InvoiceValue = d.InvoiceValue
	draft.ShipmentType = d.ShipmentType
	// The stored pickup timestamp carries a time part the date input
	// cannot hold.
	draft.PickupDate = strings.SplitN(d.PickupDate, "T", 2)[0]
	draft.PickupEmployee = d.PickupEmployee
	draft.EwayBillNo = d.EwayBillNo

	f.draft = draft
	f.showInvoiceFields = draft.InvoiceRequired == models.InvoiceYes

	lines := make([]models.ShipmentLine, 0, len(d.Shipments))
	for i, s := range d.Shipments {
		boxType := models.BoxType(s.BoxType)
		if boxType == "" {
			boxType = models.BoxOther
		}
		lines = append(lines, models.ShipmentLine{
			ID:           int64(i + 1),
			BoxType:      boxType,
			Length:       parseDim(s.Length),
			Width:        parseDim(s.Width),
			Height:       parseDim(s.Height),
			ActualWeight: s.ActualWeight,
			NoOfBox:      fmt.Sprintf("%d", s.NoOfBox),
		})
	}
	f.editor.SetLines(lines)
}

func parseDim(s string) float64 {
	var v float64
	fmt.Sscanf(strings.TrimSpace(s), "%g", &v)
	return v
}

// humanize turns a camelCase field name into the label used in error
// messages: "consignorName" -> "Consignor Name".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
