package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput groups every error that rejects a batch before any
// document is processed.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyJobDescription = fmt.Errorf("%w: job description is required", ErrInvalidInput)
	ErrNoDocuments         = fmt.Errorf("%w: no candidate documents found, upload PDF files to analyze", ErrInvalidInput)
	ErrMissingCredentials  = fmt.Errorf("%w: language model API key is not configured", ErrInvalidInput)
	ErrInvalidEmptyPolicy  = fmt.Errorf("%w: unknown empty store policy", ErrInvalidInput)
)
