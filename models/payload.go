package models

import "strconv"

// ShipmentPayload is one shipments[] element on the outbound create/update
// body. The ephemeral line id is deliberately absent.
type ShipmentPayload struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	ActualWeight float64 `json:"actualWeight"`
	NoOfBox      int     `json:"noOfBox"`
	BoxType      string  `json:"boxType"`
}

// CreatePayload is the JSON body for add_docket.php.
type CreatePayload struct {
	Consignor       Party             `json:"consignor"`
	Consignee       Party             `json:"consignee"`
	ShipDate        string            `json:"shipDate"`
	Origin          string            `json:"origin"`
	Destination     string            `json:"destination"`
	ModeOfTransport string            `json:"modeOfTransport"`
	InvoiceRequired string            `json:"invoiceRequired"`
	InvoiceNumber   string            `json:"invoiceNumber"`
	InvoiceValue    string            `json:"invoiceValue"`
	ShipmentType    string            `json:"shipmentType"`
	PickupDate      string            `json:"pickupDate"`
	PickupEmployee  string            `json:"pickupEmployee"`
	EwayBillNo      string            `json:"ewayBillNo"`
	LocationID      int64             `json:"locationId"`
	CreatedBy       string            `json:"createdBy"`
	Shipments       []ShipmentPayload `json:"shipments"`
}

// UpdatePayload is the JSON carried in the multipart "data" field of
// update_docket.php. It differs from the create body only in the docket
// number and the numeric invoice fields.
type UpdatePayload struct {
	DocketNo        string            `json:"docketNo"`
	Consignor       Party             `json:"consignor"`
	Consignee       Party             `json:"consignee"`
	ShipDate        string            `json:"shipDate"`
	Origin          string            `json:"origin"`
	Destination     string            `json:"destination"`
	ModeOfTransport string            `json:"modeOfTransport"`
	InvoiceRequired int               `json:"invoiceRequired"`
	InvoiceNumber   string            `json:"invoiceNumber"`
	InvoiceValue    float64           `json:"invoiceValue"`
	ShipmentType    string            `json:"shipmentType"`
	PickupDate      string            `json:"pickupDate"`
	PickupEmployee  string            `json:"pickupEmployee"`
	EwayBillNo      string            `json:"ewayBillNo"`
	LocationID      int64             `json:"locationId"`
	Shipments       []ShipmentPayload `json:"shipments"`
}

// ProjectShipments converts draft lines to wire shipments, parsing the
// form's string fields the same way the screens did (unparsable weight
// becomes 0, unparsable box count becomes 1).
func ProjectShipments(lines []ShipmentLine) []ShipmentPayload {
	out := make([]ShipmentPayload, 0, len(lines))
	for _, l := range lines {
		weight, _ := strconv.ParseFloat(l.ActualWeight, 64)
		boxes, err := strconv.Atoi(l.NoOfBox)
		if err != nil || boxes <= 0 {
			boxes = 1
		}
		out = append(out, ShipmentPayload{
			Length:       l.Length,
			Width:        l.Width,
			Height:       l.Height,
			ActualWeight: weight,
			NoOfBox:      boxes,
			BoxType:      string(l.BoxType),
		})
	}
	return out
}
