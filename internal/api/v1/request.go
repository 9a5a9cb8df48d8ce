package v1

import "strings"

type TopUpRequest struct {
	RecipientPhoneNumber string  `json:"recipient_phone_number" validate:"required,max=15"`
	Amount               *int64  `json:"amount" validate:"required,min=1"`
	Session              *string `json:"session" validate:"omitempty,max=64"`
}

// Normalize trims surrounding whitespace so a blank recipient fails the
// required rule.
func (r *TopUpRequest) Normalize() {
	r.RecipientPhoneNumber = strings.TrimSpace(r.RecipientPhoneNumber)
	if r.Session != nil {
		session := strings.TrimSpace(*r.Session)
		r.Session = &session
	}
}

func (r TopUpRequest) sessionKey() string {
	if r.Session == nil {
		return ""
	}
	return *r.Session
}
