package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_TotalAndCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cart      Cart
		wantTotal float64
		wantCount int
	}{
		{name: "empty", cart: Cart{}, wantTotal: 0, wantCount: 0},
		{
			name: "single line",
			cart: Cart{{ProductID: "1", Price: 249, Quantity: 2}},
			wantTotal: 498, wantCount: 2,
		},
		{
			name: "duplicate lines are counted separately",
			cart: Cart{
				{ProductID: "1", Price: 100, Quantity: 1},
				{ProductID: "1", Price: 100, Quantity: 1},
				{ProductID: "2", Price: 200, Quantity: 3},
			},
			wantTotal: 800, wantCount: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantTotal, tt.cart.Total())
			assert.Equal(t, tt.wantCount, tt.cart.Count())
		})
	}
}

func TestCart_Remove(t *testing.T) {
	t.Parallel()

	cart := Cart{
		{ProductID: "a", Price: 1, Quantity: 1},
		{ProductID: "b", Price: 2, Quantity: 1},
		{ProductID: "c", Price: 3, Quantity: 1},
	}

	out, err := cart.Remove(1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProductID)
	assert.Equal(t, "c", out[1].ProductID)
	assert.Len(t, cart, 3, "original cart must be untouched")

	_, err = cart.Remove(3)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
	_, err = cart.Remove(-1)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestCart_CloneIsDeep(t *testing.T) {
	t.Parallel()

	cart := Cart{{
		ProductID:       "1",
		Quantity:        1,
		SelectedOptions: map[string]string{"Size": "M"},
		UploadedImages:  []string{"img-1"},
	}}

	clone := cart.Clone()
	clone[0].SelectedOptions["Size"] = "XL"
	clone[0].UploadedImages[0] = "img-2"
	clone[0].Quantity = 5

	assert.Equal(t, "M", cart[0].SelectedOptions["Size"])
	assert.Equal(t, "img-1", cart[0].UploadedImages[0])
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestProduct_ValidateOptions(t *testing.T) {
	t.Parallel()

	p := Product{Options: []ProductOption{
		{Name: "Size", Values: []string{"S", "M"}},
		{Name: "Color", Values: []string{"Black"}},
	}}

	assert.NoError(t, p.ValidateOptions(nil))
	assert.NoError(t, p.ValidateOptions(map[string]string{"Size": "M", "Color": "Black"}))
	assert.ErrorIs(t, p.ValidateOptions(map[string]string{"Size": "XXL"}), ErrInvalidOption)
	assert.ErrorIs(t, p.ValidateOptions(map[string]string{"Fabric": "Silk"}), ErrInvalidOption)
}
