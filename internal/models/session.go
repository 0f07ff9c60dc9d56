package models

import "time"

// AdminProfile is the signed-in administrator shown in the header.
type AdminProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds the signed-in profile for one admin panel instance.
type Session struct {
	ID        string       `json:"id"`
	Profile   AdminProfile `json:"profile"`
	CreatedAt time.Time    `json:"createdAt"`
}
