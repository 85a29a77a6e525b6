package model

import "strings"

// UserProfile holds customer contact and address details.
type UserProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Gender   string `json:"gender,omitempty"`
	UserType string `json:"userType,omitempty"`
	HouseNo  string `json:"houseNo,omitempty"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
	State    string `json:"state,omitempty"`
	Address  string `json:"line,omitempty"`
}

// AssembleAddress joins the non-empty address components with ", ".
func (p UserProfile) AssembleAddress() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{p.HouseNo, p.Street, p.City, p.Pincode, p.State} {
		if s := strings.TrimSpace(part); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// UserRecord is everything persisted for one identity.
type UserRecord struct {
	Profile  UserProfile `json:"profile"`
	Cart     Cart        `json:"cart"`
	Wishlist []string    `json:"wishlist"`
}

// Clone returns a deep copy of the record.
func (r UserRecord) Clone() UserRecord {
	return UserRecord{
		Profile:  r.Profile,
		Cart:     r.Cart.Clone(),
		Wishlist: append([]string{}, r.Wishlist...),
	}
}
