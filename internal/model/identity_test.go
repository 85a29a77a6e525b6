package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    IdentityKey
		wantErr error
	}{
		{name: "lower-cases and trims", raw: "  Foo@Bar.com ", want: "foo@bar.com"},
		{name: "already normalized", raw: "foo@bar.com", want: "foo@bar.com"},
		{name: "missing at sign", raw: "foo.bar.com", wantErr: ErrInvalidEmail},
		{name: "empty", raw: "   ", wantErr: ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeEmail(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsEmail())
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    IdentityKey
		wantErr error
	}{
		{name: "plain digits", raw: "9876543210", want: "9876543210"},
		{name: "spaces and dashes", raw: " 98765-43210 ", want: "9876543210"},
		{name: "country code", raw: "+91 (987) 654 3210", want: "+919876543210"},
		{name: "too short", raw: "12345", wantErr: ErrInvalidPhone},
		{name: "letters", raw: "98765abc10", wantErr: ErrInvalidPhone},
		{name: "plus in the middle", raw: "98765+43210", wantErr: ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizePhone(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.IsEmail())
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	email, err := NormalizeEmail("Foo@Bar.com")
	require.NoError(t, err)
	again, err := NormalizeEmail(email.String())
	require.NoError(t, err)
	assert.Equal(t, email, again)

	phone, err := NormalizePhone("+91 98765 43210")
	require.NoError(t, err)
	phoneAgain, err := NormalizePhone(phone.String())
	require.NoError(t, err)
	assert.Equal(t, phone, phoneAgain)
}
