package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Detail, error)
	List(ctx context.Context) ([]*Detail, error)
	// ListBetween returns appointments with scheduledFor in [from, to),
	// ordered by scheduled time.
	ListBetween(ctx context.Context, from, to time.Time) ([]*Detail, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// CountOverlapping counts non-cancelled appointments for the staff member
	// scheduled in [from, to), excluding the given appointment id.
	CountOverlapping(ctx context.Context, staffID uuid.UUID, from, to time.Time, exclude uuid.UUID) (int, error)
}
