package models

// PricingMode selects how a cart entry is billed.
type PricingMode string

const (
	PricingHourly PricingMode = "hourly"
	PricingOnce   PricingMode = "once"
)

// Valid reports whether m is a known pricing mode.
func (m PricingMode) Valid() bool {
	return m == PricingHourly || m == PricingOnce
}

// CartItem is a prospective booking of one service, keyed by service id.
type CartItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Image       string      `json:"image,omitempty"`
	Provider    string      `json:"provider,omitempty"`
	Quantity    int         `json:"quantity"`
	Date        string      `json:"date,omitempty"`
	Time        string      `json:"time,omitempty"`
	PricingMode PricingMode `json:"pricingMode,omitempty"`
	Note        string      `json:"note,omitempty"`
	OncePrice   float64     `json:"oncePrice,omitempty"`
	HourlyPrice float64     `json:"hourlyPrice,omitempty"`
}

// CartItemPatch carries a partial cart update. Nil fields are left untouched
// when merged into an existing entry.
type CartItemPatch struct {
	ID          string       `json:"id" binding:"required"`
	Title       *string      `json:"title,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Image       *string      `json:"image,omitempty"`
	Provider    *string      `json:"provider,omitempty"`
	Quantity    *int         `json:"quantity,omitempty"`
	Date        *string      `json:"date,omitempty"`
	Time        *string      `json:"time,omitempty"`
	PricingMode *PricingMode `json:"pricingMode,omitempty"`
	Note        *string      `json:"note,omitempty"`
	OncePrice   *float64     `json:"oncePrice,omitempty"`
	HourlyPrice *float64     `json:"hourlyPrice,omitempty"`
}

// ApplyTo shallow-merges the patch into item.
func (p CartItemPatch) ApplyTo(item *CartItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Provider != nil {
		item.Provider = *p.Provider
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Date != nil {
		item.Date = *p.Date
	}
	if p.Time != nil {
		item.Time = *p.Time
	}
	if p.PricingMode != nil {
		item.PricingMode = *p.PricingMode
	}
	if p.Note != nil {
		item.Note = *p.Note
	}
	if p.OncePrice != nil {
		item.OncePrice = *p.OncePrice
	}
	if p.HourlyPrice != nil {
		item.HourlyPrice = *p.HourlyPrice
	}
}
