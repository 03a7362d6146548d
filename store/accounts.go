package store

import (
	"database/sql"
	"errors"
	"time"

	"campusportal/db"
	"campusportal/models"
)

func CreateAdmin(username, passwordHash string) (int64, error) {
	result, err := db.DB.Exec("INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, passwordHash, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func AdminByUsername(username string) (models.Admin, error) {
	var a models.Admin
	err := db.DB.QueryRow("SELECT id, username, password_hash, created_at FROM admins WHERE username = ?", username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotFound
	}
	return a, err
}

func AdminByID(id int64) (models.Admin, error) {
	var a models.Admin
	err := db.DB.QueryRow("SELECT id, username, password_hash, created_at FROM admins WHERE id = ?", id).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotFound
	}
	return a, err
}

func CreateStudent(username, email, passwordHash string) (int64, error) {
	result, err := db.DB.Exec("INSERT INTO students (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		username, email, passwordHash, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// StudentExists reports whether either the username or the email is
// already taken. Registration treats both collisions the same way.
func StudentExists(username, email string) (bool, error) {
	var count int
	err := db.DB.QueryRow("SELECT COUNT(*) FROM students WHERE username = ? OR email = ?", username, email).Scan(&count)
	return count > 0, err
}

func StudentByUsername(username string) (models.Student, error) {
	var s models.Student
	err := db.DB.QueryRow("SELECT id, username, email, password_hash, created_at FROM students WHERE username = ?", username).
		Scan(&s.ID, &s.Username, &s.Email, &s.PasswordHash, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	return s, err
}

func StudentByID(id int64) (models.Student, error) {
	var s models.Student
	err := db.DB.QueryRow("SELECT id, username, email, password_hash, created_at FROM students WHERE id = ?", id).
		Scan(&s.ID, &s.Username, &s.Email, &s.PasswordHash, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	return s, err
}
