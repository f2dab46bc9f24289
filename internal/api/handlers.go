// Package api exposes HTTP handlers for the exercise log service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/exerciselog/internal/domain"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	registry *domain.Registry
	log      *domain.Log
}

// NewHandler builds a Handler.
func NewHandler(registry *domain.Registry, log *domain.Log) *Handler {
	return &Handler{registry: registry, log: log}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", h.users)
	mux.HandleFunc("/api/users/", h.userSubresource)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createUser(w, r)
	case http.MethodGet:
		h.listUsers(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

func (h *Handler) userSubresource(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/users/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id, resource := parts[0], parts[1]

	switch {
	case resource == "exercises" && r.Method == http.MethodPost:
		h.addExercise(w, r, id)
	case resource == "logs" && r.Method == http.MethodGet:
		h.getLog(w, r, id)
	case resource == "exercises" || resource == "logs":
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	user, err := h.registry.CreateUser(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not create user")
		return
	}

	writeJSON(w, http.StatusOK, UserView{Username: user.Username, ID: user.ID})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.registry.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not get users")
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, UserView{Username: user.Username, ID: user.ID})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request, userID string) {
	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.log.AddExercise(r.Context(), domain.AddExerciseInput{
		UserID:      userID,
		Description: req.Description,
		Duration:    req.Duration.minutes,
		DateText:    req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeSoftError(w, "User not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Could not add exercise")
		}
		return
	}

	writeJSON(w, http.StatusOK, ExerciseView{
		Username:    entry.Username,
		Description: entry.Description,
		Duration:    entry.Duration,
		Date:        domain.DisplayDate(entry.Date),
		ID:          entry.UserID,
	})
}

func (h *Handler) getLog(w http.ResponseWriter, r *http.Request, userID string) {
	query := r.URL.Query()

	// Unparseable bounds are dropped rather than rejected; they must never
	// reach the store filter.
	var filter domain.LogFilter
	if from, ok := domain.ParseDate(query.Get("from")); ok {
		filter.From = &from
	}
	if to, ok := domain.ParseDate(query.Get("to")); ok {
		filter.To = &to
	}
	if parsed, err := strconv.Atoi(query.Get("limit")); err == nil && parsed > 0 {
		filter.Limit = parsed
	}

	result, err := h.log.GetLog(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeSoftError(w, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not get logs")
		return
	}

	items := make([]LogItemView, 0, len(result.Entries))
	for _, entry := range result.Entries {
		items = append(items, LogItemView{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        domain.DisplayDate(entry.Date),
		})
	}

	writeJSON(w, http.StatusOK, LogView{
		Username: result.User.Username,
		Count:    len(items),
		ID:       result.User.ID,
		Log:      items,
	})
}

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// AddExerciseRequest is the payload for POST /api/users/{id}/exercises.
type AddExerciseRequest struct {
	Description string   `json:"description"`
	Duration    duration `json:"duration"`
	Date        string   `json:"date"`
}

// duration accepts a JSON number or a quoted numeric string. Anything else
// is rejected at validation time; no not-a-number value ever reaches the
// store.
type duration struct {
	minutes int
	ok      bool
}

func (d *duration) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	d.minutes = minutes
	d.ok = true
	return nil
}

// Validate ensures request correctness.
func (r AddExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if !r.Duration.ok {
		return errors.New("duration must be a base-10 integer")
	}
	if r.Duration.minutes <= 0 {
		return errors.New("duration must be a positive number of minutes")
	}
	return nil
}

// UserView exposes a registered user.
type UserView struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// ExerciseView is the response for a logged exercise, joined with the
// owning user. ID carries the user's id to match the public surface.
type ExerciseView struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"id"`
}

// LogItemView is a single entry in a log response.
type LogItemView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView packages a user's filtered exercise log.
type LogView struct {
	Username string        `json:"username"`
	Count    int           `json:"count"`
	ID       string        `json:"id"`
	Log      []LogItemView `json:"log"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeSoftError reports a domain-level failure on a success status; callers
// distinguish it by payload shape.
func writeSoftError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
