package model

import "maps"

// CartItem is one cart line: a product snapshot plus the customer's choices.
// Identical lines are never merged.
type CartItem struct {
	ProductID       string            `json:"id"`
	Name            string            `json:"name"`
	Price           float64           `json:"price"`
	Image           string            `json:"image"`
	Category        string            `json:"category"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
	UploadedImages  []string          `json:"uploadedImages,omitempty"`
}

// NewCartItem snapshots the product into a cart line.
func NewCartItem(p Product, quantity int, options map[string]string, images []string) CartItem {
	return CartItem{
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Image:           p.Image,
		Category:        p.Category,
		Quantity:        quantity,
		SelectedOptions: maps.Clone(options),
		UploadedImages:  append([]string(nil), images...),
	}
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered list of lines.
type Cart []CartItem

// Total sums every line total.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c {
		total += item.LineTotal()
	}
	return total
}

// Count sums every line quantity.
func (c Cart) Count() int {
	var count int
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

// Clone returns a deep copy so that stored orders never alias a live cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	for i, item := range c {
		item.SelectedOptions = maps.Clone(item.SelectedOptions)
		item.UploadedImages = append([]string(nil), item.UploadedImages...)
		out[i] = item
	}
	return out
}

// Remove returns a copy without the line at index.
func (c Cart) Remove(index int) (Cart, error) {
	if index < 0 || index >= len(c) {
		return nil, ErrLineOutOfRange
	}
	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:index]...)
	return append(out, c[index+1:]...).Clone(), nil
}

// Totals is the derived view of a cart.
type Totals struct {
	CartTotal   float64 `json:"cartTotal"`
	CartCount   int     `json:"cartCount"`
	ShippingFee float64 `json:"shippingFee"`
	GrandTotal  float64 `json:"grandTotal"`
}
