package handlers

import (
	"net/http"

	"github.com/klarrein/dashboard/internal/schedule"
	"github.com/klarrein/dashboard/internal/storage"
)

// StatsHandler feeds the dashboard summary cards.
type StatsHandler struct {
	book    *schedule.Book
	workers *storage.WorkerRepository
}

func NewStatsHandler(book *schedule.Book, workers *storage.WorkerRepository) *StatsHandler {
	return &StatsHandler{book: book, workers: workers}
}

type statsResponse struct {
	Appointments schedule.Stats    `json:"appointments"`
	Team         storage.TeamStats `json:"team"`
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := statsResponse{Appointments: h.book.Stats()}
	if h.workers != nil {
		team, err := h.workers.Stats(r.Context())
		if err != nil {
			http.Error(w, "failed to load team stats", http.StatusInternalServerError)
			return
		}
		resp.Team = team
	}
	writeJSON(w, http.StatusOK, resp)
}
