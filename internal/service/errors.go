package service

import "errors"

var (
	ErrValidation         = errors.New("validation")                                           // 400
	ErrPricingMismatch    = errors.New("order total does not match subtotal + shipping + tax") // 400
	ErrOrderNotDelivered  = errors.New("invalid order or not delivered")                       // 400
	ErrInvalidCredentials = errors.New("invalid username or password")                         // 401
	ErrUnauthorized       = errors.New("unauthorized")                                         // 401
	ErrNotFound           = errors.New("not found")                                            // 404
	ErrConflict           = errors.New("conflict")                                             // 409
	ErrAlreadyReviewed    = errors.New("already reviewed")                                     // 409
	ErrInvalidTransition  = errors.New("invalid status transition")                            // 409
	ErrOutOfStock         = errors.New("insufficient stock")                                   // 409
)
