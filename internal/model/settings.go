package model

// Settings are store-wide values. Only SiteName and ShippingFee affect the engine.
type Settings struct {
	SiteName              string  `json:"siteName"`
	ShippingFee           float64 `json:"shippingFee"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	ContactEmail          string  `json:"contactEmail"`
	Currency              string  `json:"currency"`
	TaxRate               float64 `json:"taxRate"`
	HeaderAnnouncement    string  `json:"headerAnnouncement,omitempty"`
}
