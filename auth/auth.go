package auth

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"campusportal/config"

	"github.com/gorilla/sessions"
)

var Store *sessions.CookieStore

const SessionName = "portal-session"

// Session value keys for the two role markers. Logging in as one role
// clears the whole session first, so a browser holds at most one role
// at a time; logout removes only its own marker.
const (
	adminKey   = "adminID"
	studentKey = "studentID"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Kind string // "success", "error" or "info"
	Text string
}

func init() {
	gob.Register(Flash{})
}

func InitStore() {
	// Derive two 32-byte keys from the session key to ensure secure encryption
	// Auth key for signing (HMAC)
	authKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "auth"))
	// Encryption key for content encryption (AES)
	encKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "encryption"))

	Store = sessions.NewCookieStore(authKey[:], encKey[:])

	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   config.AppConfig.ListenPort != 8080, // Default to true unless dev port
		SameSite: http.SameSiteLaxMode,
	}
}

func AdminID(r *http.Request) int64 {
	session, _ := Store.Get(r, SessionName)
	if id, ok := session.Values[adminKey].(int64); ok {
		return id
	}
	return 0
}

func StudentID(r *http.Request) int64 {
	session, _ := Store.Get(r, SessionName)
	if id, ok := session.Values[studentKey].(int64); ok {
		return id
	}
	return 0
}

func LoginAdmin(w http.ResponseWriter, r *http.Request, id int64) {
	session, _ := Store.Get(r, SessionName)
	session.Values = map[any]any{adminKey: id}
	session.Save(r, w)
}

func LoginStudent(w http.ResponseWriter, r *http.Request, id int64) {
	session, _ := Store.Get(r, SessionName)
	session.Values = map[any]any{studentKey: id}
	session.Save(r, w)
}

func LogoutAdmin(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, SessionName)
	delete(session.Values, adminKey)
	session.Save(r, w)
}

func LogoutStudent(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, SessionName)
	delete(session.Values, studentKey)
	session.Save(r, w)
}

func AddFlash(w http.ResponseWriter, r *http.Request, kind, text string) {
	session, _ := Store.Get(r, SessionName)
	session.AddFlash(Flash{Kind: kind, Text: text})
	session.Save(r, w)
}

// PopFlashes returns the pending flash messages and removes them from
// the session.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	session, _ := Store.Get(r, SessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		session.Save(r, w)
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// RequireAdmin gates a handler behind an admin session. Without one,
// the request is redirected to the admin login page and the wrapped
// handler never runs.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if AdminID(r) == 0 {
			AddFlash(w, r, "error", "Please log in as admin.")
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireStudent is the student counterpart of RequireAdmin. The two
// guards are independent; holding one role grants nothing on routes
// gated by the other.
func RequireStudent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if StudentID(r) == 0 {
			AddFlash(w, r, "error", "Please log in as a student.")
			http.Redirect(w, r, "/student/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
