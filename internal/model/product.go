package model

import "slices"

// Product is a catalog entry.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             float64         `json:"price"`
	OldPrice          float64         `json:"oldPrice,omitempty"`
	DiscountBadge     string          `json:"discountBadge,omitempty"`
	Category          string          `json:"category"`
	Image             string          `json:"image"`
	Stock             int             `json:"stock"`
	Featured          bool            `json:"featured,omitempty"`
	Options           []ProductOption `json:"options,omitempty"`
	AllowCustomImages bool            `json:"allowCustomImages,omitempty"`
	Reviews           []Review        `json:"reviews,omitempty"`
}

// ProductOption is a named variant axis such as size or color.
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Review is a customer rating attached to a product.
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Date     string `json:"date"`
}

// ValidateOptions checks every selected option against the product's declared values.
func (p Product) ValidateOptions(selected map[string]string) error {
	for name, value := range selected {
		idx := slices.IndexFunc(p.Options, func(o ProductOption) bool { return o.Name == name })
		if idx < 0 || !slices.Contains(p.Options[idx].Values, value) {
			return ErrInvalidOption
		}
	}
	return nil
}
