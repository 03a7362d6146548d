package models

import "time"

type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Student struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"` // empty string means no description
	CreatedAt   time.Time `json:"created_at"`
}

// Application statuses. An application starts Pending and only ever
// moves to Approved.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
)

type Application struct {
	ID              int64      `json:"id"`
	StudentID       int64      `json:"student_id"`
	StudentUsername string     `json:"student_username,omitempty"`
	ResumeFilename  string     `json:"resume_filename"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}
