package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/klarrein/dashboard/internal/events"
	"github.com/klarrein/dashboard/internal/model"
	"github.com/klarrein/dashboard/internal/storage"
)

type WorkerHandler struct {
	repo   *storage.WorkerRepository
	events *events.Publisher
}

func NewWorkerHandler(repo *storage.WorkerRepository, publisher *events.Publisher) *WorkerHandler {
	return &WorkerHandler{repo: repo, events: publisher}
}

type workerResponse struct {
	model.Worker
	Category string `json:"category"`
}

// List returns all workers, or with ?q= only those whose name, specialties
// or availability contain the query (case-insensitive). This backs the search
// box on the team screen.
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	workers, err := h.repo.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list workers", http.StatusInternalServerError)
		return
	}
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	out := make([]workerResponse, 0, len(workers))
	for _, worker := range workers {
		if q != "" && !workerMatches(worker, q) {
			continue
		}
		out = append(out, workerResponse{Worker: worker, Category: model.WorkerCategory(worker.Name)})
	}
	writeJSON(w, http.StatusOK, out)
}

func workerMatches(worker model.Worker, q string) bool {
	for _, field := range []string{worker.Name, worker.Specialties, worker.Availability} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.Worker
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.HourlyRate < 0 {
		http.Error(w, "hourly_rate must not be negative", http.StatusBadRequest)
		return
	}

	req.ID = uuid.NewString()
	if err := h.repo.Insert(r.Context(), req); err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "worker already exists", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create worker", http.StatusInternalServerError)
		return
	}

	if h.events != nil {
		h.events.Publish(r.Context(), events.WorkerChanged, req.ID, req)
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.Worker
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Update(r.Context(), req); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "worker not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update worker", http.StatusInternalServerError)
		return
	}

	if h.events != nil {
		h.events.Publish(r.Context(), events.WorkerChanged, req.ID, req)
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "worker not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete worker", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
