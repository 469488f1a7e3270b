package handler

import (
	"regexp"

	"person-service/internal/person/service"
	dErrors "person-service/pkg/domain-errors"
)

// phonePattern accepts an optional leading "+", then digits with dash, paren
// and space formatting. The whole string must match.
var phonePattern = regexp.MustCompile(`^\+?[0-9][-() 0-9]*$`)

// CreatePersonRequest is the HTTP request body for POST /persons. Unknown
// fields are rejected at decode time, so the stored record never grows
// fields beyond this set.
type CreatePersonRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// Validate enforces the person schema. Implements httputil.Validatable.
func (r *CreatePersonRequest) Validate() error {
	if r.FirstName == "" {
		return dErrors.New(dErrors.CodeValidation, "firstName is required")
	}
	if len(r.FirstName) > 1024 {
		return dErrors.New(dErrors.CodeValidation, "firstName must be at most 1024 characters")
	}
	if len(r.LastName) > 1024 {
		return dErrors.New(dErrors.CodeValidation, "lastName must be at most 1024 characters")
	}
	if r.PhoneNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "phoneNumber is required")
	}
	// Longest assigned number is 15 digits; 45 leaves room for formatting.
	if len(r.PhoneNumber) > 45 {
		return dErrors.New(dErrors.CodeValidation, "phoneNumber must be at most 45 characters")
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return dErrors.New(dErrors.CodeValidation, "phoneNumber must contain only digits and -() formatting")
	}
	if len(r.Address) < 4 {
		return dErrors.New(dErrors.CodeValidation, "address must be at least 4 characters")
	}
	if len(r.Address) > 1024 {
		return dErrors.New(dErrors.CodeValidation, "address must be at most 1024 characters")
	}
	return nil
}

// ToInput converts the validated request into the service's input shape.
func (r *CreatePersonRequest) ToInput() service.CreateInput {
	return service.CreateInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
}
