package models

// BoxType enumerates the box templates offered by the shipment editor.
type BoxType string

const (
	BoxSmall  BoxType = "Small"
	BoxMedium BoxType = "Medium"
	BoxLarge  BoxType = "Large"
	BoxOther  BoxType = "Other"
)

// BoxPreset is a fixed length x width x height template in centimeters.
type BoxPreset struct {
	Length float64
	Width  float64
	Height float64
}

// DefaultPresets maps the standard box types to their dimensions.
// BoxOther has no preset; its dimensions are user supplied.
var DefaultPresets = map[BoxType]BoxPreset{
	BoxSmall:  {Length: 10, Width: 10, Height: 10},
	BoxMedium: {Length: 20, Width: 15, Height: 10},
	BoxLarge:  {Length: 30, Width: 20, Height: 15},
}

// ShipmentLine is one box entry inside a docket draft. ID is an ephemeral
// creation timestamp used only to key removals; it never leaves the process.
type ShipmentLine struct {
	ID           int64   `json:"id"`
	BoxType      BoxType `json:"boxType"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	ActualWeight string  `json:"actualWeight"`
	NoOfBox      string  `json:"noOfBox"`
}
