// Package seed provides the deterministic records the admin panel starts with.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/enrollplus-admin/internal/models"
)

const (
	userCount    = 50
	productCount = 50
)

var (
	firstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Emily", "Daniel", "Sophia", "James", "Olivia"}
	lastNames  = []string{"Smith", "Johnson", "Garcia", "Brown", "Martinez", "Davis", "Miller", "Wilson", "Moore", "Taylor"}

	productNames = []string{
		"Wireless Headphones",
		"Smart Watch",
		"Gaming Mouse",
		"Mechanical Keyboard",
		"Bluetooth Speaker",
		"USB-C Hub",
		"Laptop Stand",
		"Noise Cancelling Earbuds",
		"Webcam HD",
		"Portable SSD",
	}
)

// Users returns the fifty demo accounts. Creation dates fall within the year
// before now.
func Users(now time.Time) []models.User {
	day := now.UTC().Truncate(24 * time.Hour)
	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		id := fmt.Sprintf("%03d", i+1)
		first := firstNames[i%len(firstNames)]
		last := lastNames[i%len(lastNames)]
		users = append(users, models.User{
			ID:        "USR-" + id,
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s%s@example.com", strings.ToLower(first), strings.ToLower(last), id),
			Role:      models.UserRoles[i%len(models.UserRoles)],
			Status:    models.UserStatuses[i%len(models.UserStatuses)],
			CreatedAt: day.AddDate(0, 0, -((i*53 + 11) % 365)),
			Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?img=%d", i+1),
		})
	}
	return users
}

// Products returns the fifty demo catalogue items.
func Products() []models.Product {
	products := make([]models.Product, 0, productCount)
	for i := 0; i < productCount; i++ {
		id := fmt.Sprintf("%03d", i+1)
		cents := (i*7919 + 2017) % 30000
		products = append(products, models.Product{
			ID:       "PRD-" + id,
			Name:     productNames[i%len(productNames)] + " " + id,
			Category: models.ProductCategories[i%len(models.ProductCategories)],
			Price:    20 + float64(cents)/100,
			Stock:    (i*37 + 13) % 200,
			Sales:    (i*131 + 7) % 1000,
			Image:    fmt.Sprintf("https://picsum.photos/seed/product-%s/100", id),
		})
	}
	return products
}

// Courses returns the course offerings. Expiry is not applied here.
func Courses() []models.Course {
	return []models.Course{
		course("OFFER-001", "BSCS", "Bachelor of Science in Computer Science", models.CategoryBachelor, "2026-2027", "1st", models.CourseStatusActive, true, 25000, "2026-01-13T09:30:00Z"),
		course("OFFER-002", "BTVTED", "Bachelor of Technical Vocational Teacher Education", models.CategoryBachelor, "2026-2027", "1st", models.CourseStatusActive, false, 22000, "2026-01-13T09:35:00Z"),
		course("OFFER-003", "DCIT", "Diploma in Computer Technology", models.CategoryDiploma, "2026-2027", "1st", models.CourseStatusActive, true, 12000, "2026-01-13T09:40:00Z"),
		course("OFFER-004", "NCII-CSS", "Computer Systems Servicing NC II", models.CategoryDiploma, "2026-2027", "1st", models.CourseStatusInactive, false, 8000, "2026-01-13T09:45:00Z"),
		course("OFFER-005", "STEM", "Senior High – STEM Strand", models.CategorySeniorHigh, "2026-2027", "1st", models.CourseStatusActive, true, 0, "2026-01-13T09:50:00Z"),
		course("OFFER-006", "ABM", "Senior High – ABM Strand", models.CategorySeniorHigh, "2025-2026", "2nd", models.CourseStatusActive, true, 0, "2025-06-02T08:00:00Z"),
		course("OFFER-007", "MAED", "Master of Arts in Education", models.CategoryMaster, "2026-2027", "Summer", models.CourseStatusPending, true, 38000, "2026-01-20T10:15:00Z"),
		course("OFFER-008", "CP-WEB", "Web Development Certificate", models.CategoryCertificate, "2024-2025", "Special", models.CourseStatusArchived, false, 5500, "2024-05-10T13:00:00Z"),
	}
}

func course(id, code, name, category, schoolYear, semester string, status models.CourseStatus, open bool, price float64, created string) models.Course {
	ts := mustTime(created)
	return models.Course{
		ID:               id,
		CourseCode:       code,
		CourseName:       name,
		Category:         category,
		SchoolYear:       schoolYear,
		Semester:         semester,
		Status:           status,
		IsEnrollmentOpen: open,
		Price:            price,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

// Transactions returns the student transaction log.
func Transactions() []models.Transaction {
	return []models.Transaction{
		{
			ID: "txn_001", Type: models.TransactionPayment, Status: models.TransactionCompleted,
			StudentName: "John Doe", StudentID: "STU-2024-001", CourseCode: "CS101", CourseName: "Introduction to Programming",
			Amount: 15000, Reference: "PAY-789456", Date: mustTime("2024-03-15T14:30:00Z"),
			Description: "Tuition fee payment - First Semester", PaymentMethod: "Bank Transfer",
			ValidatedBy: "Prof. Maria Santos", FileURL: "/payments/receipt_001.pdf",
		},
		{
			ID: "txn_002", Type: models.TransactionDocument, Status: models.TransactionApproved,
			StudentName: "Maria Cruz", StudentID: "STU-2024-002", CourseCode: "BSIT-201", CourseName: "Database Management",
			Reference: "DOC-123456", Date: mustTime("2024-03-14T10:15:00Z"),
			Description: "Birth Certificate Submission", DocType: "Birth Certificate",
			ReviewedBy: "Prof. Juan Dela Cruz", FileURL: "/documents/birth_cert_002.pdf",
		},
		{
			ID: "txn_003", Type: models.TransactionEnrollment, Status: models.TransactionPending,
			StudentName: "Robert Lim", StudentID: "STU-2024-003", CourseCode: "ENG101", CourseName: "English Composition",
			Reference: "ENR-456789", Date: mustTime("2024-03-13T09:45:00Z"),
			Description: "New enrollment application", EnrollmentStatus: "documents_pending", ProcessedBy: "System",
		},
		{
			ID: "txn_004", Type: models.TransactionPayment, Status: models.TransactionRejected,
			StudentName: "Sarah Johnson", StudentID: "STU-2024-004", CourseCode: "MATH101", CourseName: "Calculus I",
			Amount: 12000, Reference: "PAY-321654", Date: mustTime("2024-03-12T16:20:00Z"),
			Description: "Tuition fee payment", PaymentMethod: "Credit Card",
			Feedback: "Invalid reference number", ValidatedBy: "Prof. Maria Santos",
		},
		{
			ID: "txn_005", Type: models.TransactionDocument, Status: models.TransactionRejected,
			StudentName: "Michael Tan", StudentID: "STU-2024-005", CourseCode: "PHY101", CourseName: "Physics Fundamentals",
			Reference: "DOC-987654", Date: mustTime("2024-03-11T11:30:00Z"),
			Description: "Form 137 Submission", DocType: "Form 137",
			Feedback: "Document is blurry, please resubmit", ReviewedBy: "Prof. Juan Dela Cruz",
		},
		{
			ID: "txn_006", Type: models.TransactionPayment, Status: models.TransactionCompleted,
			StudentName: "Anna Garcia", StudentID: "STU-2024-006", CourseCode: "CHEM101", CourseName: "Chemistry Basics",
			Amount: 18000, Reference: "PAY-456123", Date: mustTime("2024-03-10T13:45:00Z"),
			Description: "Full payment - Second Semester", PaymentMethod: "Online Banking",
			ValidatedBy: "Prof. Maria Santos", FileURL: "/payments/receipt_006.pdf",
		},
		{
			ID: "txn_007", Type: models.TransactionEnrollment, Status: models.TransactionCompleted,
			StudentName: "David Wong", StudentID: "STU-2024-007", CourseCode: "HIST101", CourseName: "World History",
			Reference: "ENR-159753", Date: mustTime("2024-03-09T15:10:00Z"),
			Description: "Enrollment completed", EnrollmentStatus: "enrolled", ProcessedBy: "Admin System",
		},
		{
			ID: "txn_008", Type: models.TransactionDocument, Status: models.TransactionPending,
			StudentName: "Lisa Chen", StudentID: "STU-2024-008", CourseCode: "ART101", CourseName: "Art Appreciation",
			Reference: "DOC-852963", Date: mustTime("2024-03-08T14:00:00Z"),
			Description: "Good Moral Certificate", DocType: "Good Moral Certificate",
		},
	}
}

// Profile is the administrator signed in by default.
func Profile() models.AdminProfile {
	return models.AdminProfile{Name: "Admin User", Email: "admin@enrollplus.edu.ph", Role: "Administrator"}
}

func mustTime(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(fmt.Sprintf("seed: bad timestamp %q: %v", raw, err))
	}
	return ts
}
