package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type apptRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &apptRepoPG{pool: pool}
}

const detailCols = `a.id, a.patient_id, a.staff_id, a.scheduled_for, a.reason, a.status,
	a.notes, a.created_by_id, a.created_at,
	p.id, p.first_name, p.last_name, p.date_of_birth, p.gender, p.email, p.phone,
	p.address, p.city, p.state, p.zip_code, p.blood_group, p.medical_notes, p.registered_at,
	s.id, s.user_id, s.specialization, s.department, s.phone, s.address, s.hire_date, s.is_active,
	u.id, u.first_name, u.last_name, u.email, u.role, u.created_at`

const detailFrom = ` FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN staff s ON s.id = a.staff_id
	JOIN users u ON u.id = s.user_id`

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail
	err := row.Scan(&d.ID, &d.PatientID, &d.StaffID, &d.ScheduledFor, &d.Reason, &d.Status,
		&d.Notes, &d.CreatedByID, &d.CreatedAt,
		&d.Patient.ID, &d.Patient.FirstName, &d.Patient.LastName, &d.Patient.DateOfBirth,
		&d.Patient.Gender, &d.Patient.Email, &d.Patient.Phone, &d.Patient.Address,
		&d.Patient.City, &d.Patient.State, &d.Patient.ZipCode, &d.Patient.BloodGroup,
		&d.Patient.MedicalNotes, &d.Patient.RegisteredAt,
		&d.Staff.ID, &d.Staff.UserID, &d.Staff.Specialization, &d.Staff.Department,
		&d.Staff.Phone, &d.Staff.Address, &d.Staff.HireDate, &d.Staff.IsActive,
		&d.Staff.User.ID, &d.Staff.User.FirstName, &d.Staff.User.LastName,
		&d.Staff.User.Email, &d.Staff.User.Role, &d.Staff.User.CreatedAt)
	if err != nil {
		return nil, db.NotFoundOr(err)
	}
	return &d, nil
}

func (r *apptRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, staff_id, scheduled_for, reason, status, notes, created_by_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		a.ID, a.PatientID, a.StaffID, a.ScheduledFor, a.Reason, a.Status, a.Notes, a.CreatedByID).
		Scan(&a.CreatedAt)
}

func (r *apptRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return scanDetail(r.pool.QueryRow(ctx, `SELECT `+detailCols+detailFrom+` WHERE a.id = $1`, id))
}

func (r *apptRepoPG) List(ctx context.Context) ([]*Detail, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+detailCols+detailFrom+` ORDER BY a.scheduled_for DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDetails(rows)
}

func (r *apptRepoPG) ListBetween(ctx context.Context, from, to time.Time) ([]*Detail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+detailCols+detailFrom+`
		WHERE a.scheduled_for >= $1 AND a.scheduled_for < $2
		ORDER BY a.scheduled_for`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDetails(rows)
}

func collectDetails(rows pgx.Rows) ([]*Detail, error) {
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

// Update leaves created_by_id untouched so the original scheduler remains on
// record.
func (r *apptRepoPG) Update(ctx context.Context, a *Appointment) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments SET patient_id=$2, staff_id=$3, scheduled_for=$4, reason=$5, status=$6, notes=$7
		WHERE id = $1
		RETURNING created_by_id, created_at`,
		a.ID, a.PatientID, a.StaffID, a.ScheduledFor, a.Reason, a.Status, a.Notes)
	return db.NotFoundOr(row.Scan(&a.CreatedByID, &a.CreatedAt))
}

func (r *apptRepoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *apptRepoPG) CountOverlapping(ctx context.Context, staffID uuid.UUID, from, to time.Time, exclude uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE staff_id = $1
		  AND scheduled_for >= $2 AND scheduled_for < $3
		  AND status <> 'cancelled'
		  AND id <> $4`,
		staffID, from, to, exclude).Scan(&count)
	return count, err
}
