package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNegative     = errors.New("the amount must not be negative")
	ErrCategoryRequired   = errors.New("the category must be set")
	ErrDescriptionTooLong = errors.New("the description must not be longer than 100 characters")

	ErrEmailRequired = errors.New("the email must be set")
	ErrEmailTaken    = errors.New("this email is already registered")
)
