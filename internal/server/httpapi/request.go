package httpapi

// Typed request bodies, deserialized and validated at the boundary before any
// handler logic runs. The validate tags mirror the API's documented rules.

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateMeRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=255"`
	Email *string `json:"email" validate:"omitnil,email,max=255"`
}

type createCardRequest struct {
	Front string `json:"front" validate:"required,max=500"`
	Back  string `json:"back" validate:"required,max=500"`
}

// updateCardRequest fields are optional, but a supplied field must satisfy
// the same constraints create enforces. omitnil (not omitempty) so an
// explicit empty string still fails min=1.
type updateCardRequest struct {
	Front *string `json:"front" validate:"omitnil,min=1,max=500"`
	Back  *string `json:"back" validate:"omitnil,min=1,max=500"`
}
