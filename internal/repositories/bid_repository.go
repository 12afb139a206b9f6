package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"gigflow_backend/internal/models"
)

type PostgresBidRepository struct {
	db *sql.DB
}

func NewBidRepository(db *sql.DB) *PostgresBidRepository {
	return &PostgresBidRepository{db: db}
}

func (r *PostgresBidRepository) Create(ctx context.Context, bid *models.Bid) error {
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bids (id, gig_id, freelancer_id, message, price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, bid.ID, bid.GigID, bid.FreelancerID, bid.Message, bid.Price, bid.Status).Scan(
		&bid.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrBidAlreadyExists
	}
	return err
}

func (r *PostgresBidRepository) GetByID(ctx context.Context, id string) (*models.Bid, error) {
	var b models.Bid
	err := r.db.QueryRowContext(ctx, `
		SELECT id, gig_id, freelancer_id, message, price, status, created_at
		FROM bids WHERE id = $1
	`, id).Scan(
		&b.ID, &b.GigID, &b.FreelancerID, &b.Message, &b.Price, &b.Status, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBidNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBidRepository) ListByGig(ctx context.Context, gigID string) ([]models.Bid, error) {
	return r.list(ctx, `
		SELECT id, gig_id, freelancer_id, message, price, status, created_at
		FROM bids WHERE gig_id = $1 ORDER BY created_at DESC
	`, gigID)
}

func (r *PostgresBidRepository) ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Bid, error) {
	return r.list(ctx, `
		SELECT id, gig_id, freelancer_id, message, price, status, created_at
		FROM bids WHERE freelancer_id = $1 ORDER BY created_at DESC
	`, freelancerID)
}

func (r *PostgresBidRepository) list(ctx context.Context, query string, arg interface{}) ([]models.Bid, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var b models.Bid
		err := rows.Scan(&b.ID, &b.GigID, &b.FreelancerID, &b.Message, &b.Price, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// Hire flips the gig to assigned, the chosen bid to hired and the pending
// siblings to rejected in a single transaction. Every statement runs on the
// same *sql.Tx; the deferred rollback aborts the unit on any exit path that
// did not commit.
func (r *PostgresBidRepository) Hire(ctx context.Context, gigID, bidID, freelancerID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := assignGig(ctx, tx, gigID, freelancerID); err != nil {
		return 0, err
	}
	if err := markBidHired(ctx, tx, bidID); err != nil {
		return 0, err
	}
	rejected, err := rejectPendingSiblings(ctx, tx, gigID, bidID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rejected, nil
}

// assignGig is the race guard: the status predicate makes the update a
// compare-and-set, so of two concurrent hires on one gig only the first
// commit matches a row. The loser sees zero rows and the unit aborts.
func assignGig(ctx context.Context, tx *sql.Tx, gigID, freelancerID string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE gigs
		SET status = $1, assigned_to = $2, updated_at = now()
		WHERE id = $3 AND status = $4
	`, models.GigStatusAssigned, freelancerID, gigID, models.GigStatusOpen)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGigNotAssignable
	}
	return nil
}

func markBidHired(ctx context.Context, tx *sql.Tx, bidID string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE bids SET status = $1 WHERE id = $2 AND status = $3
	`, models.BidStatusHired, bidID, models.BidStatusPending)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBidNotFound
	}
	return nil
}

func rejectPendingSiblings(ctx context.Context, tx *sql.Tx, gigID, bidID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE bids SET status = $1
		WHERE gig_id = $2 AND id <> $3 AND status = $4
	`, models.BidStatusRejected, gigID, bidID, models.BidStatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
