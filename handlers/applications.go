package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"campusportal/auth"
	"campusportal/config"
	"campusportal/store"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func allowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename strips path components and anything outside
// [A-Za-z0-9._-] so an uploaded filename can never escape the upload
// directory.
func sanitizeFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")
	if name == "" {
		name = "resume" + ext
	}
	return name
}

func UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	studentID := auth.StudentID(r)

	if r.Method == http.MethodPost {
		file, header, err := r.FormFile("resume")
		if err != nil {
			auth.AddFlash(w, r, "error", "No file part.")
			http.Redirect(w, r, "/student/upload", http.StatusSeeOther)
			return
		}
		defer file.Close()

		if header.Filename == "" {
			auth.AddFlash(w, r, "error", "No selected file.")
			http.Redirect(w, r, "/student/upload", http.StatusSeeOther)
			return
		}

		if allowedFile(header.Filename) {
			filename := sanitizeFilename(header.Filename)

			dst, err := os.Create(filepath.Join(config.AppConfig.UploadDir, filename))
			if err != nil {
				log.Printf("Error saving resume: %v", err)
				http.Error(w, "Error saving file", http.StatusInternalServerError)
				return
			}
			_, err = io.Copy(dst, file)
			dst.Close()
			if err != nil {
				log.Printf("Error saving resume: %v", err)
				http.Error(w, "Error saving file", http.StatusInternalServerError)
				return
			}

			if _, err := store.CreateApplication(studentID, filename); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			auth.AddFlash(w, r, "success", "Resume uploaded successfully.")
			http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
			return
		}
		// Disallowed extension falls through and re-renders the form
	}

	student, err := store.StudentByID(studentID)
	if errors.Is(err, store.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "upload_resume.html", map[string]any{"Student": student})
}

func StudentDashboardHandler(w http.ResponseWriter, r *http.Request) {
	student, err := store.StudentByID(auth.StudentID(r))
	if errors.Is(err, store.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	applications, err := store.ApplicationsByStudent(student.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "student_dashboard.html", map[string]any{
		"Student":      student,
		"Applications": applications,
	})
}

func AdminApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	applications, err := store.AllApplications()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "admin_applications.html", map[string]any{"Applications": applications})
}

func ApproveApplicationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderNotFound(w, r)
		return
	}

	err := store.ApproveApplication(id)
	if errors.Is(err, store.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	auth.AddFlash(w, r, "success", "Application approved.")
	http.Redirect(w, r, "/admin/applications", http.StatusSeeOther)
}
