package auth

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"promptcraft/pkg/repository"
)

type profileRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func newProfileRepo(db *sql.DB, logger *slog.Logger) *profileRepo {
	return &profileRepo{db: db, logger: logger}
}

// upsert writes the local profile record for an authenticated identity.
func (r *profileRepo) upsert(ctx context.Context, id uuid.UUID, email, fullName string) error {
	q := `
		INSERT INTO profiles(id, email, full_name, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id)
		DO UPDATE SET email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			updated_at = now()`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q, id, email, fullName)
		return struct{}{}, err
	})
	return err
}

func scanProfile(s repository.Scanner) (Profile, error) {
	var p Profile
	err := s.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.UpdatedAt,
	)
	return p, err
}

// find returns the stored profile for an identity.
func (r *profileRepo) find(ctx context.Context, id uuid.UUID) (*Profile, error) {
	q := `
		SELECT id, email, full_name, updated_at
		FROM profiles
		WHERE id = $1`

	p, err := repository.QueryOne(ctx, r.db, scanProfile, q, id)
	if err != nil {
		return nil, repository.MapError(err, ErrNotSignedIn, ErrUpstream)
	}
	return &p, nil
}
