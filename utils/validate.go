package utils

import "github.com/go-playground/validator/v10"

// Validate is the shared request-body validator. validator.Validate is
// safe for concurrent use.
var Validate = validator.New()
