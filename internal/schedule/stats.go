package schedule

import "github.com/klarrein/dashboard/internal/model"

// Stats are the numbers on the cards under the calendar view.
type Stats struct {
	Total         int `json:"total"`
	Confirmed     int `json:"confirmed"`
	Pending       int `json:"pending"`
	ActiveWorkers int `json:"active_workers"`
}

func (b *Book) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := Stats{Total: len(b.appointments)}
	workers := map[string]struct{}{}
	for _, appt := range b.appointments {
		switch appt.Status {
		case model.StatusConfirmed:
			stats.Confirmed++
		case model.StatusPending:
			stats.Pending++
		}
		if appt.Worker != "" {
			workers[appt.Worker] = struct{}{}
		}
	}
	stats.ActiveWorkers = len(workers)
	return stats
}
