package model

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidOTP      = errors.New("invalid one-time code")
	ErrOTPNotRequested = errors.New("one-time code was not requested")
	ErrUnknownAccount  = errors.New("unknown federated account")
	ErrLoginRequired   = errors.New("login required")
	ErrAdminRequired   = errors.New("admin access required")
	ErrNameRequired    = errors.New("name is required")

	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidOption    = errors.New("invalid product option")
	ErrImagesNotAllowed = errors.New("product does not accept custom images")
	ErrLineOutOfRange   = errors.New("cart line out of range")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")

	ErrWrongStep            = errors.New("action not allowed in current checkout step")
	ErrDetailsIncomplete    = errors.New("name, phone and address are required")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrProofRequired        = errors.New("payment proof and confirmation are required")

	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrConfirmationRequired = errors.New("explicit confirmation required")
	ErrNotOrderOwner        = errors.New("order does not belong to viewer")

	ErrNotClosable = errors.New("promotion cannot be dismissed")

	ErrSessionNotFound = errors.New("session not found")
)
