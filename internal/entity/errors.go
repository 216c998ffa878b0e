package entity

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrStaleStatus        = errors.New("contact status changed concurrently")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrDuplicateDeal      = errors.New("opportunity already has a deal")
)
