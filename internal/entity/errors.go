package entity

import "errors"

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrProductNotFound    = errors.New("product not found")
	ErrNetwork            = errors.New("network error")

	ErrNoSession         = errors.New("no active session")
	ErrAccountNotFound   = errors.New("account not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreExists       = errors.New("account already owns a store")
	ErrNoStore           = errors.New("account does not own a store")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidStore      = errors.New("store name and location are required")
	ErrInvalidProduct    = errors.New("product name is required")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidPayment    = errors.New("unsupported payment method")
	ErrCheckoutNotActive = errors.New("no checkout in progress")
	ErrCheckoutPending   = errors.New("previous checkout is still collecting ratings")
	ErrInvalidSignup     = errors.New("username and password are required")
)
