package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, first_name, last_name, date_of_birth, gender, email, phone,
	address, city, state, zip_code, blood_group, medical_notes, registered_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.Email, &p.Phone,
		&p.Address, &p.City, &p.State, &p.ZipCode, &p.BloodGroup, &p.MedicalNotes, &p.RegisteredAt)
	if err != nil {
		return nil, db.NotFoundOr(err)
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, first_name, last_name, date_of_birth, gender, email, phone,
			address, city, state, zip_code, blood_group, medical_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING registered_at`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Email, p.Phone,
		p.Address, p.City, p.State, p.ZipCode, p.BloodGroup, p.MedicalNotes).
		Scan(&p.RegisteredAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY registered_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, date_of_birth=$4, gender=$5, email=$6,
			phone=$7, address=$8, city=$9, state=$10, zip_code=$11, blood_group=$12, medical_notes=$13
		WHERE id = $1
		RETURNING registered_at`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Email,
		p.Phone, p.Address, p.City, p.State, p.ZipCode, p.BloodGroup, p.MedicalNotes)
	return db.NotFoundOr(row.Scan(&p.RegisteredAt))
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
