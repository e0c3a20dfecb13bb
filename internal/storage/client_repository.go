package storage

import (
	"context"

	"github.com/klarrein/dashboard/internal/model"
	"github.com/klarrein/dashboard/libs/db"
)

// ClientRepository stores the customer base. Its GetByID doubles as the
// lookup used when an appointment is booked for an existing customer.
type ClientRepository struct {
	pool *db.Pool
}

func NewClientRepository(pool *db.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, address, service_type, frequency, notes
		FROM clients
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.ServiceType, &c.Frequency, &c.Notes); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (model.Client, error) {
	var c model.Client
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, service_type, frequency, notes
		FROM clients
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.ServiceType, &c.Frequency, &c.Notes)
	if err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func (r *ClientRepository) Insert(ctx context.Context, c model.Client) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clients (id, name, email, phone, address, service_type, frequency, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.ServiceType, c.Frequency, c.Notes)
	return err
}

func (r *ClientRepository) Update(ctx context.Context, c model.Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2,
			email = $3,
			phone = $4,
			address = $5,
			service_type = $6,
			frequency = $7,
			notes = $8
		WHERE id = $1
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.ServiceType, c.Frequency, c.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
