package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrNoTraders    = errors.New("no traders available")
	ErrNoMarkets    = errors.New("no markets available")
	ErrInvalidOrder = errors.New("invalid order parameters")
)
