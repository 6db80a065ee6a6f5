package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used by spending records.
const DateLayout = "2006-01-02"

// Spending is a single day's expense entry owned by one user.
type Spending struct {
	ID uuid.UUID `json:"_id"`
	// Creator is the email of the owning user. It is set from the authenticated
	// caller when the record is created and never changes afterwards.
	Creator   string  `json:"creator"`
	Date      string  `json:"date"`
	Food      float64 `json:"food"`
	Transport float64 `json:"transport"`
	Shopping  float64 `json:"shopping"`
	Total     float64 `json:"total"`
}

// Validate checks if the Spending has valid data.
func (s *Spending) Validate() error {
	if s.Creator == "" {
		return ErrEmptyCreator
	}
	if err := validateDate(s.Date); err != nil {
		return err
	}
	for field, amount := range map[string]float64{
		"food":      s.Food,
		"transport": s.Transport,
		"shopping":  s.Shopping,
		"total":     s.Total,
	} {
		if amount < 0 {
			return NewValidationError(field, "must not be negative", ErrNegativeAmount)
		}
	}
	return nil
}

// OwnedBy reports whether the record belongs to the given user email.
func (s *Spending) OwnedBy(email string) bool {
	return s.Creator != "" && s.Creator == NormalizeEmail(email)
}

// DocumentID implements store.Document.
func (s *Spending) DocumentID() uuid.UUID { return s.ID }

// SetDocumentID implements store.Document.
func (s *Spending) SetDocumentID(id uuid.UUID) { s.ID = id }

// SpendingPatch carries a partial update. Nil fields are left untouched.
// It has no Creator field; ownership never changes.
type SpendingPatch struct {
	Date      *string  `json:"date,omitempty"`
	Food      *float64 `json:"food,omitempty"`
	Transport *float64 `json:"transport,omitempty"`
	Shopping  *float64 `json:"shopping,omitempty"`
	Total     *float64 `json:"total,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SpendingPatch) IsEmpty() bool {
	return p.Date == nil && p.Food == nil && p.Transport == nil &&
		p.Shopping == nil && p.Total == nil
}

// Validate checks the fields present in the patch.
func (p SpendingPatch) Validate() error {
	if p.Date != nil {
		if err := validateDate(*p.Date); err != nil {
			return err
		}
	}
	amounts := []struct {
		field string
		value *float64
	}{
		{"food", p.Food},
		{"transport", p.Transport},
		{"shopping", p.Shopping},
		{"total", p.Total},
	}
	for _, a := range amounts {
		if a.value != nil && *a.value < 0 {
			return NewValidationError(a.field, "must not be negative", ErrNegativeAmount)
		}
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return NewValidationError("date", "is not a calendar date", ErrInvalidDate)
	}
	return nil
}
