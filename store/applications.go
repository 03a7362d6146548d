package store

import (
	"database/sql"
	"time"

	"campusportal/db"
	"campusportal/models"
)

func CreateApplication(studentID int64, resumeFilename string) (int64, error) {
	result, err := db.DB.Exec(
		"INSERT INTO applications (student_id, resume_filename, status, created_at) VALUES (?, ?, ?, ?)",
		studentID, resumeFilename, models.StatusPending, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func ApplicationsByStudent(studentID int64) ([]models.Application, error) {
	rows, err := db.DB.Query(
		"SELECT id, student_id, resume_filename, status, created_at, approved_at FROM applications WHERE student_id = ? ORDER BY created_at DESC, id DESC",
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows, false)
}

// AllApplications returns every application newest first, joined with
// the owning student's username for the admin review page.
func AllApplications() ([]models.Application, error) {
	rows, err := db.DB.Query(`
		SELECT a.id, a.student_id, s.username, a.resume_filename, a.status, a.created_at, a.approved_at
		FROM applications a
		JOIN students s ON s.id = a.student_id
		ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows, true)
}

// ApproveApplication marks the application Approved and stamps the
// approval time. Re-approving simply re-stamps.
func ApproveApplication(id int64) error {
	result, err := db.DB.Exec("UPDATE applications SET status = ?, approved_at = ? WHERE id = ?",
		models.StatusApproved, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func scanApplications(rows *sql.Rows, withStudent bool) ([]models.Application, error) {
	var apps []models.Application
	for rows.Next() {
		var app models.Application
		var approvedAt sql.NullTime
		var err error
		if withStudent {
			err = rows.Scan(&app.ID, &app.StudentID, &app.StudentUsername, &app.ResumeFilename, &app.Status, &app.CreatedAt, &approvedAt)
		} else {
			err = rows.Scan(&app.ID, &app.StudentID, &app.ResumeFilename, &app.Status, &app.CreatedAt, &approvedAt)
		}
		if err != nil {
			return nil, err
		}
		if approvedAt.Valid {
			t := approvedAt.Time
			app.ApprovedAt = &t
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
