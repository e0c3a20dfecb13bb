package storage

import (
	"context"

	"github.com/klarrein/dashboard/internal/model"
	"github.com/klarrein/dashboard/libs/db"
)

type WorkerRepository struct {
	pool *db.Pool
}

func NewWorkerRepository(pool *db.Pool) *WorkerRepository {
	return &WorkerRepository{pool: pool}
}

func (r *WorkerRepository) List(ctx context.Context) ([]model.Worker, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, specialties, hourly_rate, availability, notes
		FROM workers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		var w model.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.Phone, &w.Specialties, &w.HourlyRate, &w.Availability, &w.Notes); err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

func (r *WorkerRepository) GetByID(ctx context.Context, id string) (model.Worker, error) {
	var w model.Worker
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, specialties, hourly_rate, availability, notes
		FROM workers
		WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.Email, &w.Phone, &w.Specialties, &w.HourlyRate, &w.Availability, &w.Notes)
	if err != nil {
		return model.Worker{}, err
	}
	return w, nil
}

func (r *WorkerRepository) Insert(ctx context.Context, w model.Worker) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO workers (id, name, email, phone, specialties, hourly_rate, availability, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, w.ID, w.Name, w.Email, w.Phone, w.Specialties, w.HourlyRate, w.Availability, w.Notes)
	return err
}

func (r *WorkerRepository) Update(ctx context.Context, w model.Worker) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE workers
		SET name = $2,
			email = $3,
			phone = $4,
			specialties = $5,
			hourly_rate = $6,
			availability = $7,
			notes = $8
		WHERE id = $1
	`, w.ID, w.Name, w.Email, w.Phone, w.Specialties, w.HourlyRate, w.Availability, w.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// TeamStats feed the cards on the workers page.
type TeamStats struct {
	Count       int     `json:"count"`
	AverageRate float64 `json:"average_rate"`
}

func (r *WorkerRepository) Stats(ctx context.Context) (TeamStats, error) {
	var stats TeamStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(hourly_rate), 0)
		FROM workers
	`).Scan(&stats.Count, &stats.AverageRate)
	if err != nil {
		return TeamStats{}, err
	}
	return stats, nil
}
