package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"campusportal/auth"
	"campusportal/config"
	"campusportal/i18n"
	"campusportal/store"

	"github.com/dchest/captcha"
	"github.com/gorilla/csrf"
)

func RegisterHandlers(mux *http.ServeMux) {
	// Public catalog
	mux.HandleFunc("/", IndexHandler)
	mux.HandleFunc("GET /item/{id}", ItemDetailHandler)

	// Admin-only catalog management
	mux.HandleFunc("/create", auth.RequireAdmin(CreateItemHandler))
	mux.HandleFunc("/edit/{id}", auth.RequireAdmin(EditItemHandler))
	mux.HandleFunc("POST /delete/{id}", auth.RequireAdmin(DeleteItemHandler))

	// Admin accounts and application review
	mux.HandleFunc("/admin/register", AdminRegisterHandler)
	mux.HandleFunc("/admin/login", AdminLoginHandler)
	mux.HandleFunc("GET /admin/logout", auth.RequireAdmin(AdminLogoutHandler))
	mux.HandleFunc("GET /admin/applications", auth.RequireAdmin(AdminApplicationsHandler))
	mux.HandleFunc("POST /admin/applications/approve/{id}", auth.RequireAdmin(ApproveApplicationHandler))

	// Student accounts, dashboard and resume upload
	mux.HandleFunc("/student/register", StudentRegisterHandler)
	mux.HandleFunc("/student/login", StudentLoginHandler)
	mux.HandleFunc("GET /student/logout", auth.RequireStudent(StudentLogoutHandler))
	mux.HandleFunc("/student/upload", auth.RequireStudent(UploadResumeHandler))
	mux.HandleFunc("GET /student/dashboard", auth.RequireStudent(StudentDashboardHandler))

	if config.AppConfig.CaptchaEnabled {
		mux.Handle("GET /captcha/", captcha.Server(captcha.StdWidth, captcha.StdHeight))
	}
}

// SecurityHeadersMiddleware sets the usual browser hardening headers
// and disables caching for everything except the static tree.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'")
		if !strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}

func IndexHandler(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all, so anything unmatched lands here
	if r.URL.Path != "/" {
		renderNotFound(w, r)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	itemPage, err := store.ListItems(page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "list.html", map[string]any{"Page": itemPage})
}

func ItemDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderNotFound(w, r)
		return
	}

	item, err := store.ItemByID(id)
	if errors.Is(err, store.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "detail.html", map[string]any{"Item": item})
}

func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		title := strings.TrimSpace(r.FormValue("title"))
		description := strings.TrimSpace(r.FormValue("description"))

		if title == "" {
			auth.AddFlash(w, r, "error", "Title is required.")
			renderTemplate(w, r, "create.html", map[string]any{"Title": title, "Description": description})
			return
		}

		if _, err := store.CreateItem(title, description); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		auth.AddFlash(w, r, "success", "Item created successfully.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "create.html", map[string]any{"Title": "", "Description": ""})
}

func EditItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderNotFound(w, r)
		return
	}

	item, err := store.ItemByID(id)
	if errors.Is(err, store.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodPost {
		title := strings.TrimSpace(r.FormValue("title"))
		description := strings.TrimSpace(r.FormValue("description"))

		if title == "" {
			auth.AddFlash(w, r, "error", "Title is required.")
			renderTemplate(w, r, "edit.html", map[string]any{"Item": item, "Title": title, "Description": description})
			return
		}

		if err := store.UpdateItem(id, title, description); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		auth.AddFlash(w, r, "success", "Item updated.")
		http.Redirect(w, r, "/item/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "edit.html", map[string]any{"Item": item, "Title": item.Title, "Description": item.Description})
}

func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderNotFound(w, r)
		return
	}

	err := store.DeleteItem(id)
	if errors.Is(err, store.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	auth.AddFlash(w, r, "info", "Item deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	renderTemplate(w, r, "404.html", nil)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
		"nl2br": nl2br,
	}

	tmpl, err := template.New(name).Funcs(funcMap).ParseFiles(
		filepath.Join(config.AppConfig.TemplatesDir, "layout.html"),
		filepath.Join(config.AppConfig.TemplatesDir, name),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["AppName"]; !exists {
		data["AppName"] = config.AppConfig.AppName
	}
	data["Lang"] = lang
	data["csrfField"] = csrf.TemplateField(r)
	data["Flashes"] = auth.PopFlashes(w, r)
	data["IsAdmin"] = auth.AdminID(r) != 0
	data["IsStudent"] = auth.StudentID(r) != 0

	tmpl.ExecuteTemplate(w, "layout", data)
}

// nl2br renders user text with newlines as <br>, escaping everything
// else.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
