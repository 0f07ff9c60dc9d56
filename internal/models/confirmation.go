package models

import "time"

// ConfirmationKind names the action awaiting confirmation.
type ConfirmationKind string

const (
	ConfirmDeleteUser      ConfirmationKind = "delete_user"
	ConfirmDeleteCourse    ConfirmationKind = "delete_course"
	ConfirmDeleteProduct   ConfirmationKind = "delete_product"
	ConfirmCloseEnrollment ConfirmationKind = "close_enrollment"
	ConfirmSignOut         ConfirmationKind = "sign_out"
)

// ConfirmationStatus captures the two-phase workflow states.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "PENDING"
	ConfirmationCommitted ConfirmationStatus = "COMMITTED"
	ConfirmationAborted   ConfirmationStatus = "ABORTED"
)

// ConfirmationDecision is the answer to a pending confirmation.
type ConfirmationDecision string

const (
	DecisionConfirm ConfirmationDecision = "confirm"
	DecisionCancel  ConfirmationDecision = "cancel"
)

// Confirmation is a destructive action waiting for an explicit decision.
type Confirmation struct {
	ID         string             `json:"id"`
	Kind       ConfirmationKind   `json:"kind"`
	Table      string             `json:"table"`
	RecordID   string             `json:"recordId"`
	Summary    string             `json:"summary"`
	Status     ConfirmationStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
	ResolvedAt *time.Time         `json:"resolvedAt,omitempty"`
	Note       string             `json:"note,omitempty"`
}
