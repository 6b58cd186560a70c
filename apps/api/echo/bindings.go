package echoapi

import "github.com/radianlabs/precalc/core"

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// LoginResponse carries the signed token plus the coarse portal role
	// the client routes on.
	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// AnswerRequest is a student answer submission for a question block.
	AnswerRequest struct {
		Path       string `json:"path" validate:"required"`
		QuestionID string `json:"question_id" validate:"required"`
		X          string `json:"x"`
		Y          string `json:"y"`
	}

	AnswerResponse struct {
		Correct bool `json:"correct"`
	}

	// BlockedResponse is returned when a page advance is refused.
	BlockedResponse struct {
		Blocked bool   `json:"blocked"`
		Reason  string `json:"reason"`
	}
)

func (r *LoginRequest) Validate() error {
	r.Username = core.CleanString(r.Username, true /* lower */)
	return core.Validate.Struct(r)
}
func (r *PasswordResetRequest) Validate() error { return core.Validate.Struct(r) }
func (r *AnswerRequest) Validate() error        { return core.Validate.Struct(r) }
