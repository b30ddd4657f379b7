package project

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/EAGLE605/SignX-sub007/internal/auth"
	"github.com/EAGLE605/SignX-sub007/internal/repo"
	"github.com/EAGLE605/SignX-sub007/internal/sign/batch"
)

// Handler serves authenticated project CRUD plus stored-envelope lookup and
// background job submission. Every operation is scoped to the owner from
// the session.
type Handler struct {
	Repo repo.Repository
}

func NewHandler(r repo.Repository) *Handler {
	return &Handler{Repo: r}
}

type projectRequest struct {
	Name  string          `json:"name"`
	Site  json.RawMessage `json:"site,omitempty"`
	Notes string          `json:"notes,omitempty"`
}

type jobRequest struct {
	Solver  string          `json:"solver"`
	Payload json.RawMessage `json:"payload"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Project name required", http.StatusBadRequest)
		return
	}
	if len(req.Site) == 0 {
		req.Site = json.RawMessage("{}")
	}
	id, err := h.Repo.CreateProject(r.Context(), userID, req.Name, req.Site, req.Notes)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	projects, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []repo.Project{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.scope(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.GetProject(r.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Project name required", http.StatusBadRequest)
		return
	}
	if len(req.Site) == 0 {
		req.Site = json.RawMessage("{}")
	}
	if err := h.Repo.UpdateProject(r.Context(), userID, projectID, req.Name, req.Site, req.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.Repo.DeleteProject(r.Context(), userID, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Envelope returns a stored result by content hash. Hashes are global, not
// project-scoped: the same inputs give the same envelope for every caller.
func (h *Handler) Envelope(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]
	if hash == "" {
		http.Error(w, "Content hash required", http.StatusBadRequest)
		return
	}
	row, err := h.Repo.GetEnvelopeByHash(r.Context(), hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Envelope not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(row)
}

// EnqueueJob submits a solve to the background queue. The solver name is
// validated against the dispatch set so typos fail here, not in the worker.
func (h *Handler) EnqueueJob(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.scope(w, r)
	if !ok {
		return
	}
	if _, err := h.Repo.GetProject(r.Context(), userID, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !batch.Solvers[req.Solver] {
		http.Error(w, "Unknown solver", http.StatusBadRequest)
		return
	}
	if len(req.Payload) == 0 {
		http.Error(w, "Payload required", http.StatusBadRequest)
		return
	}
	id, err := h.Repo.EnqueueJob(r.Context(), projectID, req.Solver, req.Payload)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]int{"job_id": id})
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (userID, projectID int, ok bool) {
	userID, authed := auth.UserID(r.Context())
	if !authed || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, 0, false
	}
	idStr := mux.Vars(r)["id"]
	projectID, err := strconv.Atoi(idStr)
	if err != nil || projectID <= 0 {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return 0, 0, false
	}
	return userID, projectID, true
}
