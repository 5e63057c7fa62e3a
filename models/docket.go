package models

import "strings"

// Docket statuses as reported by the upstream API. Comparison is always
// case-insensitive; upstream rows are not normalized.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Docket is the read model returned by get_docket.php. Field names follow
// the upstream JSON exactly.
type Docket struct {
	ID                int64            `json:"Id"`
	DocketNo          string           `json:"DocketNo"`
	ConsignorName     string           `json:"ConsignorName"`
	ConsignorAddress  string           `json:"ConsignorAddress"`
	ConsignorDistrict string           `json:"ConsignorDistrict"`
	ConsignorState    string           `json:"ConsignorState"`
	ConsignorPinCode  string           `json:"ConsignorPinCode"`
	ConsignorMobile   string           `json:"ConsignorMobile"`
	ConsigneeName     string           `json:"ConsigneeName"`
	ConsigneeAddress  string           `json:"ConsigneeAddress"`
	ConsigneeDistrict string           `json:"ConsigneeDistrict"`
	ConsigneeState    string           `json:"ConsigneeState"`
	ConsigneePinCode  string           `json:"ConsigneePinCode"`
	ConsigneeMobile   string           `json:"ConsigneeMobile"`
	ShipDate          string           `json:"ShipDate"`
	Origin            string           `json:"Origin"`
	Destination       string           `json:"Destination"`
	ModeOfTransport   string           `json:"ModeOfTransport"`
	InvoiceRequired   string           `json:"InvoiceRequired"`
	InvoiceNumber     string           `json:"InvoiceNumber"`
	InvoiceValue      string           `json:"InvoiceValue"`
	Declaration       *string          `json:"Declaration"`
	ShipmentType      string           `json:"ShipmentType"`
	PickupDate        string           `json:"PickupDate"`
	PickupEmployee    string           `json:"PickupEmployee"`
	EwayBillNo        string           `json:"EwayBillNo"`
	LocationID        int64            `json:"LocationId"`
	CreatedAt         string           `json:"CreatedAt"`
	NoOfShipment      int              `json:"NoOfShipment"`
	ShipmentCount     int              `json:"ShipmentCount"`
	Status            string           `json:"Status"`
	Shipments         []DocketShipment `json:"shipments,omitempty"`
}

// DocketShipment is one stored shipment row on a fetched docket. Numeric
// fields arrive as strings from the PHP backend.
type DocketShipment struct {
	ID            *int64 `json:"Id,omitempty"`
	Length        string `json:"Length"`
	Width         string `json:"Width"`
	Height        string `json:"Height"`
	ActualWeight  string `json:"ActualWeight"`
	NoOfBox       int    `json:"NoOfBox"`
	BoxType       string `json:"BoxType,omitempty"`
	EntryDateTime string `json:"EntryDateTime,omitempty"`
}

// HasStatus compares docket status case-insensitively.
func (d *Docket) HasStatus(status string) bool {
	return strings.EqualFold(d.Status, status)
}
