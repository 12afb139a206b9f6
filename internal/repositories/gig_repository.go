package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gigflow_backend/internal/models"
)

type PostgresGigRepository struct {
	db *sql.DB
}

func NewGigRepository(db *sql.DB) *PostgresGigRepository {
	return &PostgresGigRepository{db: db}
}

func (r *PostgresGigRepository) Create(ctx context.Context, gig *models.Gig) error {
	if gig.ID == "" {
		gig.ID = uuid.NewString()
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO gigs (id, owner_id, title, description, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, gig.ID, gig.OwnerID, gig.Title, gig.Description, gig.Budget, gig.Status).Scan(
		&gig.CreatedAt, &gig.UpdatedAt,
	)
}

func (r *PostgresGigRepository) GetByID(ctx context.Context, id string) (*models.Gig, error) {
	var g models.Gig
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, budget, status, assigned_to, created_at, updated_at
		FROM gigs WHERE id = $1
	`, id).Scan(
		&g.ID, &g.OwnerID, &g.Title, &g.Description, &g.Budget, &g.Status, &g.AssignedTo, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGigNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PostgresGigRepository) List(ctx context.Context, criteria GigSearchCriteria) ([]models.Gig, error) {
	query := `
		SELECT id, owner_id, title, description, budget, status, assigned_to, created_at, updated_at
		FROM gigs WHERE 1=1`
	var args []interface{}

	if criteria.Search != "" {
		args = append(args, "%"+criteria.Search+"%")
		idx := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", idx, idx)
	}
	if criteria.Status != "" {
		args = append(args, criteria.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if criteria.OwnerID != "" {
		args = append(args, criteria.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gigs []models.Gig
	for rows.Next() {
		var g models.Gig
		err := rows.Scan(&g.ID, &g.OwnerID, &g.Title, &g.Description, &g.Budget, &g.Status, &g.AssignedTo, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		gigs = append(gigs, g)
	}
	return gigs, rows.Err()
}

func (r *PostgresGigRepository) Update(ctx context.Context, gig *models.Gig) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE gigs
		SET title = $1, description = $2, budget = $3, updated_at = now()
		WHERE id = $4
	`, gig.Title, gig.Description, gig.Budget, gig.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGigNotFound
	}
	return nil
}

func (r *PostgresGigRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gigs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGigNotFound
	}
	return nil
}
