package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/domain"
)

// SignUpRequest defines the payload for the user registration endpoint.
type SignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// SignInRequest holds the form fields of the sign-in endpoint. The username
// field carries the user's email.
type SignInRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse is returned by a successful sign-in.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SpendingRequest defines the payload for creating a spending record. Any
// creator or id in the body is ignored.
type SpendingRequest struct {
	Date      string  `json:"date"      validate:"required,datetime=2006-01-02"`
	Food      float64 `json:"food"      validate:"gte=0"`
	Transport float64 `json:"transport" validate:"gte=0"`
	Shopping  float64 `json:"shopping"  validate:"gte=0"`
	Total     float64 `json:"total"     validate:"gte=0"`
}

// ToDomain converts the request into an unowned record.
func (r SpendingRequest) ToDomain() domain.Spending {
	return domain.Spending{
		Date:      r.Date,
		Food:      r.Food,
		Transport: r.Transport,
		Shopping:  r.Shopping,
		Total:     r.Total,
	}
}

// SpendingUpdateRequest carries a partial update; absent fields are unchanged.
type SpendingUpdateRequest struct {
	Date      *string  `json:"date,omitempty"      validate:"omitempty,datetime=2006-01-02"`
	Food      *float64 `json:"food,omitempty"      validate:"omitempty,gte=0"`
	Transport *float64 `json:"transport,omitempty" validate:"omitempty,gte=0"`
	Shopping  *float64 `json:"shopping,omitempty"  validate:"omitempty,gte=0"`
	Total     *float64 `json:"total,omitempty"     validate:"omitempty,gte=0"`
}

// ToPatch converts the request into a domain patch.
func (r SpendingUpdateRequest) ToPatch() domain.SpendingPatch {
	return domain.SpendingPatch{
		Date:      r.Date,
		Food:      r.Food,
		Transport: r.Transport,
		Shopping:  r.Shopping,
		Total:     r.Total,
	}
}

// SpendingResponse is the wire form of a stored record.
type SpendingResponse struct {
	ID        uuid.UUID `json:"_id"`
	Creator   string    `json:"creator"`
	Date      string    `json:"date"`
	Food      float64   `json:"food"`
	Transport float64   `json:"transport"`
	Shopping  float64   `json:"shopping"`
	Total     float64   `json:"total"`
}

// spendingToResponse converts a domain.Spending to a SpendingResponse.
func spendingToResponse(s *domain.Spending) SpendingResponse {
	return SpendingResponse{
		ID:        s.ID,
		Creator:   s.Creator,
		Date:      s.Date,
		Food:      s.Food,
		Transport: s.Transport,
		Shopping:  s.Shopping,
		Total:     s.Total,
	}
}

// spendingsToResponse converts records, returning an empty (non-nil) slice for none.
func spendingsToResponse(records []*domain.Spending) []SpendingResponse {
	out := make([]SpendingResponse, 0, len(records))
	for _, s := range records {
		out = append(out, spendingToResponse(s))
	}
	return out
}
