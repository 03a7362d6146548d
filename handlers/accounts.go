package handlers

import (
	"errors"
	"net/http"
	"strings"

	"campusportal/auth"
	"campusportal/config"
	"campusportal/db"
	"campusportal/store"

	"github.com/dchest/captcha"
)

// registerData fills in the captcha challenge for a register form when
// the captcha is enabled.
func registerData(data map[string]any) map[string]any {
	if config.AppConfig.CaptchaEnabled {
		data["CaptchaID"] = captcha.New()
	}
	return data
}

// verifyCaptcha is a no-op when the captcha is disabled.
func verifyCaptcha(r *http.Request) bool {
	if !config.AppConfig.CaptchaEnabled {
		return true
	}
	return captcha.VerifyString(r.FormValue("captcha_id"), r.FormValue("captcha_solution"))
}

func AdminRegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))

		if username == "" || password == "" {
			auth.AddFlash(w, r, "error", "Username and password required.")
			renderTemplate(w, r, "admin_register.html", registerData(map[string]any{"Username": username}))
			return
		}

		if !verifyCaptcha(r) {
			auth.AddFlash(w, r, "error", "Wrong captcha answer.")
			renderTemplate(w, r, "admin_register.html", registerData(map[string]any{"Username": username}))
			return
		}

		_, err := store.AdminByUsername(username)
		if err == nil {
			auth.AddFlash(w, r, "error", "Username already taken.")
			renderTemplate(w, r, "admin_register.html", registerData(map[string]any{"Username": username}))
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		hash, err := db.HashPassword(password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := store.CreateAdmin(username, hash); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		auth.AddFlash(w, r, "success", "Admin registered successfully.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "admin_register.html", registerData(map[string]any{"Username": ""}))
}

func AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))

		admin, err := store.AdminByUsername(username)

		// Timing attack mitigation: always check a password hash
		targetHash := admin.PasswordHash
		if err != nil {
			targetHash = db.DummyHash
		}
		match := db.CheckPasswordHash(password, targetHash)

		if err != nil || !match {
			auth.AddFlash(w, r, "error", "Invalid username or password.")
			renderTemplate(w, r, "admin_login.html", map[string]any{"Username": username})
			return
		}

		auth.LoginAdmin(w, r, admin.ID)
		auth.AddFlash(w, r, "success", "Logged in successfully.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "admin_login.html", map[string]any{"Username": ""})
}

func AdminLogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.LogoutAdmin(w, r)
	auth.AddFlash(w, r, "info", "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func StudentRegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := strings.TrimSpace(r.FormValue("password"))

		if username == "" || email == "" || password == "" {
			auth.AddFlash(w, r, "error", "All fields are required.")
			renderTemplate(w, r, "student_register.html", registerData(map[string]any{"Username": username, "Email": email}))
			return
		}

		if !verifyCaptcha(r) {
			auth.AddFlash(w, r, "error", "Wrong captcha answer.")
			renderTemplate(w, r, "student_register.html", registerData(map[string]any{"Username": username, "Email": email}))
			return
		}

		taken, err := store.StudentExists(username, email)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if taken {
			auth.AddFlash(w, r, "error", "Username or email already taken.")
			renderTemplate(w, r, "student_register.html", registerData(map[string]any{"Username": username, "Email": email}))
			return
		}

		hash, err := db.HashPassword(password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := store.CreateStudent(username, email, hash); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		auth.AddFlash(w, r, "success", "Registered successfully. Please login.")
		http.Redirect(w, r, "/student/login", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "student_register.html", registerData(map[string]any{"Username": "", "Email": ""}))
}

func StudentLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))

		student, err := store.StudentByUsername(username)

		targetHash := student.PasswordHash
		if err != nil {
			targetHash = db.DummyHash
		}
		match := db.CheckPasswordHash(password, targetHash)

		if err != nil || !match {
			auth.AddFlash(w, r, "error", "Invalid username or password.")
			renderTemplate(w, r, "student_login.html", map[string]any{"Username": username})
			return
		}

		auth.LoginStudent(w, r, student.ID)
		auth.AddFlash(w, r, "success", "Logged in successfully.")
		http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "student_login.html", map[string]any{"Username": ""})
}

func StudentLogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.LogoutStudent(w, r)
	auth.AddFlash(w, r, "info", "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
