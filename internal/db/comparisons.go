package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertComparison stores a comparison, replacing any previous one for the same résumé and JD
func (db *DB) UpsertComparison(ctx context.Context, c Comparison) error {
	if len(c.Data) == 0 {
		c.Data = []byte("{}")
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO comparisons (resume_id, jd_hash, ats_score, data)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (resume_id, jd_hash)
		 DO UPDATE SET ats_score = $3, data = $4, updated_at = NOW()`,
		c.ResumeID, c.JDHash, c.ATSScore, []byte(c.Data),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert comparison: %w", err)
	}
	return nil
}

// GetComparison retrieves the stored comparison for a résumé and JD hash
func (db *DB) GetComparison(ctx context.Context, resumeID uuid.UUID, jdHash string) (*Comparison, error) {
	var c Comparison
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT resume_id, jd_hash, ats_score, data, updated_at
		 FROM comparisons WHERE resume_id = $1 AND jd_hash = $2`,
		resumeID, jdHash,
	).Scan(&c.ResumeID, &c.JDHash, &c.ATSScore, &data, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "comparison", Key: resumeID.String() + "/" + jdHash}
		}
		return nil, fmt.Errorf("failed to get comparison: %w", err)
	}
	c.Data = data
	return &c, nil
}
