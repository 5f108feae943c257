package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &staffRepoPG{pool: pool}
}

const detailCols = `s.id, s.user_id, s.specialization, s.department, s.phone, s.address,
	s.hire_date, s.is_active,
	u.id, u.first_name, u.last_name, u.email, u.role, u.created_at`

const detailFrom = ` FROM staff s JOIN users u ON u.id = s.user_id`

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail
	err := row.Scan(&d.ID, &d.UserID, &d.Specialization, &d.Department, &d.Phone, &d.Address,
		&d.HireDate, &d.IsActive,
		&d.User.ID, &d.User.FirstName, &d.User.LastName, &d.User.Email, &d.User.Role, &d.User.CreatedAt)
	if err != nil {
		return nil, db.NotFoundOr(err)
	}
	return &d, nil
}

func (r *staffRepoPG) Create(ctx context.Context, s *Staff) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff (id, user_id, specialization, department, phone, address, hire_date, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.UserID, s.Specialization, s.Department, s.Phone, s.Address, s.HireDate, s.IsActive)
	return err
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return scanDetail(r.pool.QueryRow(ctx, `SELECT `+detailCols+detailFrom+` WHERE s.id = $1`, id))
}

func (r *staffRepoPG) List(ctx context.Context) ([]*Detail, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+detailCols+detailFrom+` ORDER BY s.department, u.last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Detail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *staffRepoPG) Update(ctx context.Context, s *Staff) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE staff SET user_id=$2, specialization=$3, department=$4, phone=$5, address=$6,
			hire_date=$7, is_active=$8
		WHERE id = $1`,
		s.ID, s.UserID, s.Specialization, s.Department, s.Phone, s.Address, s.HireDate, s.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *staffRepoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
