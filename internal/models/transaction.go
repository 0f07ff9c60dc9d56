package models

import "time"

// TransactionType enumerates the kinds of student transactions.
type TransactionType string

const (
	TransactionPayment    TransactionType = "payment"
	TransactionDocument   TransactionType = "document"
	TransactionEnrollment TransactionType = "enrollment"
)

// TransactionStatus captures the processing state of a transaction.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionRejected  TransactionStatus = "rejected"
	TransactionApproved  TransactionStatus = "approved"
)

// Transaction is a payment, document submission or enrollment request.
type Transaction struct {
	ID               string            `json:"id"`
	Type             TransactionType   `json:"type"`
	Status           TransactionStatus `json:"status"`
	StudentName      string            `json:"studentName"`
	StudentID        string            `json:"studentId"`
	CourseCode       string            `json:"courseCode"`
	CourseName       string            `json:"courseName"`
	Amount           float64           `json:"amount"`
	Reference        string            `json:"reference"`
	Date             time.Time         `json:"date"`
	Description      string            `json:"description"`
	PaymentMethod    string            `json:"paymentMethod,omitempty"`
	DocType          string            `json:"docType,omitempty"`
	EnrollmentStatus string            `json:"enrollmentStatus,omitempty"`
	Feedback         string            `json:"feedback,omitempty"`
	ValidatedBy      string            `json:"validatedBy,omitempty"`
	ReviewedBy       string            `json:"reviewedBy,omitempty"`
	ProcessedBy      string            `json:"processedBy,omitempty"`
	FileURL          string            `json:"fileUrl,omitempty"`
}

// IsCompletedPayment reports whether the transaction counts as income.
func (t Transaction) IsCompletedPayment() bool {
	return t.Type == TransactionPayment && t.Status == TransactionCompleted
}

// TransactionTotals summarises a filtered transaction list.
type TransactionTotals struct {
	TotalTransactions int     `json:"totalTransactions"`
	TotalPayments     int     `json:"totalPayments"`
	TotalAmount       float64 `json:"totalAmount"`
	PendingCount      int     `json:"pendingCount"`
}
