package dto

import "github.com/noah-isme/enrollplus-admin/internal/models"

// ResolveConfirmationRequest answers a pending confirmation.
type ResolveConfirmationRequest struct {
	Decision models.ConfirmationDecision `json:"decision" validate:"required,oneof=confirm cancel"`
	Note     string                      `json:"note" validate:"max=500"`
}

// CloseCourseResponse reports the outcome of a close request. Exactly one of
// Course or Confirmation is set.
type CloseCourseResponse struct {
	Outcome      string               `json:"outcome"`
	Course       *models.CourseView   `json:"course,omitempty"`
	Confirmation *models.Confirmation `json:"confirmation,omitempty"`
}

// Close outcomes.
const (
	CloseUnchanged = "unchanged"
	CloseClosed    = "closed"
	ClosePending   = "pending_confirmation"
)
