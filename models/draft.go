package models

// InvoiceRequired values used on the draft. The create endpoint sends the
// string through as-is; the update endpoint maps it to 1/0.
const (
	InvoiceYes = "Yes"
	InvoiceNo  = "No"
)

// DocketDraft is the aggregate being edited by one open form session.
// It has no identity until the backend assigns a docket number; on an
// update flow DocketNo carries the existing number.
type DocketDraft struct {
	DocketNo string `json:"docketNo,omitempty"`

	Consignor Party `json:"consignor"`
	Consignee Party `json:"consignee"`

	// ConsignorRef is set when the consignor was selected by reference
	// from the registered consignor list instead of typed manually.
	ConsignorRef *Consignor `json:"consignorRef,omitempty"`

	ShipDate        string `json:"shipDate"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	ModeOfTransport string `json:"modeOfTransport"`
	InvoiceRequired string `json:"invoiceRequired"`
	InvoiceNumber   string `json:"invoiceNumber"`
	InvoiceValue    string `json:"invoiceValue"`
	ShipmentType    string `json:"shipmentType"`
	PickupDate      string `json:"pickupDate"`
	PickupEmployee  string `json:"pickupEmployee"`
	EwayBillNo      string `json:"ewayBillNo"`

	Shipments []ShipmentLine `json:"shipments"`
}

// NewDocketDraft returns a draft with the same defaults the form starts
// with: invoice not required, everything else empty.
func NewDocketDraft() *DocketDraft {
	return &DocketDraft{InvoiceRequired: InvoiceNo}
}
