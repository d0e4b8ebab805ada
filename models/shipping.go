package models

// Address represents a physical mailing address used for shipping.
// Field names follow the backend's wire format.
type Address struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"` // ISO 3166-1 alpha-2, e.g. "US"
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Parcel holds the physical dimensions of the shipped item.
// Dimensions are inches, weight is ounces; values are passed to the
// backend unconverted.
type Parcel struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// CustomsInfo references a customs declaration stored on the backend.
type CustomsInfo struct {
	ID string `json:"id,omitempty"`
}

// ShipmentRequest is the payload sent to obtain rate quotes. It is
// constructed fresh for every quote request and never reused.
type ShipmentRequest struct {
	ToAddress   Address      `json:"to_address"`
	FromAddress Address      `json:"from_address"`
	Parcel      Parcel       `json:"parcel"`
	CustomsInfo *CustomsInfo `json:"customs_info,omitempty"`
}

// RateOption is one carrier+service+price offer within a quote. The
// price string keeps the server's currency formatting.
type RateOption struct {
	ID           string `json:"id"`
	Carrier      string `json:"carrier"`
	Service      string `json:"service"`
	Rate         string `json:"rate"`
	DeliveryDays *int   `json:"delivery_days,omitempty"`
}

// ShipmentQuote is the backend's response to a shipment request. Rates
// are kept in server order; the order is the server's ranking.
type ShipmentQuote struct {
	ShipmentID string       `json:"id"`
	Rates      []RateOption `json:"rates"`
}

// HasRate reports whether the quote contains a rate with the given id.
func (q ShipmentQuote) HasRate(rateID string) bool {
	for _, r := range q.Rates {
		if r.ID == rateID {
			return true
		}
	}
	return false
}

// RateByID returns the rate with the given id, if present.
func (q ShipmentQuote) RateByID(rateID string) (RateOption, bool) {
	for _, r := range q.Rates {
		if r.ID == rateID {
			return r, true
		}
	}
	return RateOption{}, false
}

// PurchasedLabel is the terminal artifact of a successful purchase.
type PurchasedLabel struct {
	LabelURL string `json:"label_url"`
}
