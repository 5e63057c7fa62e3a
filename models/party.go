package models

import "time"

// Party is one side of a docket (consignor or consignee).
// Mobile is expected to be 10 digits and Pincode 6 digits, but neither
// shape is enforced at submit time; the upstream API accepts them as-is.
type Party struct {
	Name     string `json:"name" db:"name"`
	Mobile   string `json:"mobile" db:"mobile"`
	Address  string `json:"address" db:"address"`
	District string `json:"district" db:"district"`
	State    string `json:"state" db:"state"`
	Pincode  string `json:"pincode" db:"pincode"`
}

// Consignor is a pre-registered consignor offered for selection by
// reference instead of manual entry. Only Status==1 rows are selectable.
type Consignor struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Phone     string     `json:"phone" db:"phone"`
	Email     *string    `json:"email,omitempty" db:"email"`
	Address   string     `json:"address" db:"address"`
	Pincode   string     `json:"pincode" db:"pincode"`
	District  string     `json:"district" db:"district"`
	State     string     `json:"state" db:"state"`
	Status    int        `json:"status" db:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Active reports whether the consignor may be offered for selection.
func (c *Consignor) Active() bool { return c.Status == 1 }

// AsParty projects a selected consignor reference onto the draft's
// consignor fields.
func (c *Consignor) AsParty() Party {
	return Party{
		Name:     c.Name,
		Mobile:   c.Phone,
		Address:  c.Address,
		District: c.District,
		State:    c.State,
		Pincode:  c.Pincode,
	}
}
