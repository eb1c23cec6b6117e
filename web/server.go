// Package web serves the work-hours HTTP API. Admin routes are protected by
// a shared password that opens a server-side session; the admin flag travels
// in the request context.
package web

import (
	"bytes"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"workhours/output"
	"workhours/timesheet"
	"workhours/worklog"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxBodyBytes = 1 << 20

const (
	msgInvalidRange   = "Arbeitsbeginn darf nicht später als Arbeitsende sein."
	msgDuplicate      = "Eintrag für diesen Tag existiert bereits."
	msgNotFound       = "Keine Daten gefunden."
	msgNameRequired   = "Name ist erforderlich."
	msgDeleteRejected = "Löschen abgebrochen. Passwort erforderlich oder Bestätigung fehlt."
	msgWrongPassword  = "Ungültiges Passwort."
)

type Server struct {
	service       *timesheet.Service
	logger        *zap.Logger
	sessions      *sessionStore
	adminPassword string

	handler http.Handler
}

type Options struct {
	AdminPassword string
	SessionTTL    time.Duration
	// StaticDir, when set, is served at "/".
	StaticDir string
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type logHoursResponse struct {
	Message string        `json:"message"`
	Entry   worklog.Entry `json:"entry"`
}

type deleteAllRequest struct {
	Password string `json:"password"`
	Confirm  bool   `json:"confirm"`
}

type deleteAllResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminPageView struct {
	Title      string
	Entries    []worklog.Entry
	TotalHours float64
}

func NewServer(service *timesheet.Service, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	server := &Server{
		service:       service,
		logger:        logger,
		sessions:      newSessionStore(ttl),
		adminPassword: opts.AdminPassword,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", server.handleHealth)
	mux.HandleFunc("POST /log-hours", server.handleLogHours)
	mux.HandleFunc("GET /get-all-hours", server.handleGetAllHours)
	mux.HandleFunc("GET /get-hours", server.handleGetHours)
	mux.HandleFunc("DELETE /delete-hours", server.handleDeleteAll)
	mux.HandleFunc("POST /admin-login", server.handleAdminLogin)
	mux.HandleFunc("POST /admin-logout", server.handleAdminLogout)
	mux.HandleFunc("GET /admin", requireAdmin(server.handleAdminPage))
	mux.HandleFunc("GET /admin-work-hours", requireAdmin(server.handleAdminWorkHours))
	mux.HandleFunc("GET /admin-download-csv", requireAdmin(server.handleAdminDownload("csv")))
	mux.HandleFunc("GET /admin-download-xlsx", requireAdmin(server.handleAdminDownload("excel")))
	mux.HandleFunc("PUT /api/admin/update-hours", requireAdmin(server.handleAdminUpdate))
	mux.HandleFunc("DELETE /api/admin/delete-hours/{id}", requireAdmin(server.handleAdminDelete))
	if dir := strings.TrimSpace(opts.StaticDir); dir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	}

	server.handler = withRequestLogging(logger, withSession(server.sessions, mux))
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogHours(w http.ResponseWriter, r *http.Request) {
	var body timesheet.LogRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.service.LogHours(r.Context(), body)
	if err != nil {
		s.writeServiceError(w, r, err, "Fehler beim Speichern der Daten.")
		return
	}

	writeJSON(w, http.StatusOK, logHoursResponse{Message: "Daten erfolgreich gespeichert.", Entry: entry})
}

func (s *Server) handleGetAllHours(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, msgNameRequired)
		return
	}

	entries, err := s.service.ListByName(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, r, err, "Fehler beim Abrufen der Daten.")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetHours(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := strings.TrimSpace(query.Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, msgNameRequired)
		return
	}

	entry, err := s.service.GetHours(r.Context(), name, query.Get("date"))
	if err != nil {
		s.writeServiceError(w, r, err, "Fehler beim Abrufen der Daten.")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	var body deleteAllRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := s.service.DeleteAll(r.Context(), body.Password, body.Confirm)
	if err != nil {
		s.writeServiceError(w, r, err, "Fehler beim Löschen der Daten.")
		return
	}
	writeJSON(w, http.StatusOK, deleteAllResponse{Message: "Daten erfolgreich gelöscht.", Deleted: deleted})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var body adminLoginRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.adminPassword == "" || subtle.ConstantTimeCompare([]byte(body.Password), []byte(s.adminPassword)) != 1 {
		s.logger.Warn("rejected admin login", zap.String("request_id", requestIDFrom(r.Context())))
		writeError(w, http.StatusUnauthorized, msgWrongPassword)
		return
	}

	if previous := sessionToken(r); previous != "" {
		s.sessions.destroy(previous)
	}
	token, expires := s.sessions.create(true)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Admin angemeldet."})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		s.sessions.destroy(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Admin abgemeldet."})
}

func (s *Server) handleAdminPage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "Error fetching work hours.")
		return
	}

	view := adminPageView{Title: "Arbeitszeiten", Entries: entries}
	for _, entry := range entries {
		view.TotalHours += entry.Hours
	}

	var buf bytes.Buffer
	if err := renderTemplate(&buf, "admin.html", view); err != nil {
		s.writeServiceError(w, r, err, "Error rendering page.")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAdminWorkHours(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "Error fetching work hours.")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAdminDownload(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer, err := output.WriterForFormat(format)
		if err != nil {
			s.writeServiceError(w, r, err, "Error exporting work hours.")
			return
		}

		entries, err := s.service.ListAll(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err, "Error fetching work hours.")
			return
		}

		var buf bytes.Buffer
		if err := writer.Encode(&buf, entries); err != nil {
			s.writeServiceError(w, r, err, "Error exporting work hours.")
			return
		}

		w.Header().Set("Content-Type", writer.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="arbeitszeiten.%s"`, writer.Extension()))
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	var body timesheet.UpdateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.service.UpdateEntry(r.Context(), body); err != nil {
		s.writeServiceError(w, r, err, "Error updating working hours.")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Working hours updated successfully."})
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := s.service.DeleteEntry(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "Error deleting working hours.")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Working hours deleted successfully."})
}

// writeServiceError maps service errors to client responses. Anything
// unexpected is logged and answered with the generic fallback message.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *worklog.ValidationError
	switch {
	case errors.Is(err, worklog.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, msgInvalidRange)
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "Ungültige Eingabe: "+validationErr.Error())
	case errors.Is(err, timesheet.ErrDuplicateEntry):
		writeError(w, http.StatusBadRequest, msgDuplicate)
	case errors.Is(err, timesheet.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, timesheet.ErrDeleteNotAuthorized):
		writeError(w, http.StatusUnauthorized, msgDeleteRejected)
	default:
		s.logger.Error("request failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func renderTemplate(w io.Writer, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"fmtDuration": worklog.FormatDuration,
		"fmtHours": func(value float64) string {
			return fmt.Sprintf("%.2f", value)
		},
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func parsePositiveInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("value must be > 0")
	}
	return parsed, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
