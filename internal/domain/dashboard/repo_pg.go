package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &statsRepoPG{pool: pool}
}

func (r *statsRepoPG) Counts(ctx context.Context) (int, int, int, error) {
	var patients, staff, appointments int
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM patients),
			(SELECT COUNT(*) FROM staff),
			(SELECT COUNT(*) FROM appointments)`).Scan(&patients, &staff, &appointments)
	return patients, staff, appointments, err
}
