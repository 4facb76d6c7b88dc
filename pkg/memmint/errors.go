package memmint

import "errors"

var (
	ErrUnknownSource       = errors.New("unknown source")
	ErrUnknownQuote        = errors.New("unknown quote")
	ErrQuoteNotPaid        = errors.New("quote is not paid")
	ErrQuoteIssued         = errors.New("quote already issued")
	ErrQuoteExpired        = errors.New("quote expired")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownToken        = errors.New("unknown or spent token")
	ErrUnknownRequest      = errors.New("unknown or paid payment request")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
)
