package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validate"
)

// Overlap policies control what happens when a staff member is double-booked
// inside the configured window.
const (
	OverlapAllow  = "allow"
	OverlapWarn   = "warn"
	OverlapReject = "reject"
)

// ErrOverlap is returned under the reject policy when the staff member
// already has a non-cancelled appointment inside the window.
var ErrOverlap = errors.New("staff member already booked in this time window")

// ErrUnknownRef is returned when the referenced patient or staff member does
// not exist.
var ErrUnknownRef = errors.New("patient or staff member does not exist")

type Service struct {
	appts  Repository
	loc    *time.Location
	policy string
	window time.Duration
	logger zerolog.Logger

	now func() time.Time
}

func NewService(appts Repository, loc *time.Location, overlapPolicy string, overlapWindow time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		appts:  appts,
		loc:    loc,
		policy: overlapPolicy,
		window: overlapWindow,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in Input, createdBy *uuid.UUID) (*Detail, error) {
	a, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	a.CreatedByID = createdBy

	if err := s.checkOverlap(ctx, a); err != nil {
		return nil, err
	}

	if err := s.appts.Create(ctx, a); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrUnknownRef
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return s.appts.GetByID(ctx, a.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return s.appts.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Detail, error) {
	return s.appts.List(ctx)
}

// Today returns appointments scheduled inside the current calendar day of
// the configured timezone.
func (s *Service) Today(ctx context.Context) ([]*Detail, error) {
	from, to := s.todayWindow()
	return s.appts.ListBetween(ctx, from, to)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Detail, error) {
	a, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	a.ID = id

	if err := s.checkOverlap(ctx, a); err != nil {
		return nil, err
	}

	if err := s.appts.Update(ctx, a); err != nil {
		if db.IsNotFound(err) {
			return nil, err
		}
		if db.IsForeignKeyViolation(err) {
			return nil, ErrUnknownRef
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return s.appts.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.appts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return db.ErrNotFound
	}
	return nil
}

func (s *Service) todayWindow() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 0, 1)
}

func (s *Service) checkOverlap(ctx context.Context, a *Appointment) error {
	if s.policy == OverlapAllow || a.Status == StatusCancelled {
		return nil
	}

	from := a.ScheduledFor.Add(-s.window)
	to := a.ScheduledFor.Add(s.window)
	count, err := s.appts.CountOverlapping(ctx, a.StaffID, from, to, a.ID)
	if err != nil {
		return fmt.Errorf("count overlapping appointments: %w", err)
	}
	if count == 0 {
		return nil
	}

	if s.policy == OverlapReject {
		return ErrOverlap
	}

	s.logger.Warn().
		Str("staff_id", a.StaffID.String()).
		Time("scheduled_for", a.ScheduledFor).
		Int("overlapping", count).
		Msg("double booking detected")
	return nil
}

func (s *Service) fromInput(in Input) (*Appointment, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	patientID, err := uuid.Parse(in.PatientID)
	if err != nil {
		return nil, validate.Errors{{Field: "patientId", Message: "must be a valid id"}}
	}
	staffID, err := uuid.Parse(in.StaffID)
	if err != nil {
		return nil, validate.Errors{{Field: "staffId", Message: "must be a valid id"}}
	}
	scheduledFor, err := time.Parse(time.RFC3339, in.ScheduledFor)
	if err != nil {
		return nil, validate.Errors{{Field: "scheduledFor", Message: "must be an RFC 3339 timestamp"}}
	}

	status := in.Status
	if status == "" {
		status = DefaultStatus
	}

	return &Appointment{
		PatientID:    patientID,
		StaffID:      staffID,
		ScheduledFor: scheduledFor,
		Reason:       in.Reason,
		Status:       status,
		Notes:        in.Notes,
	}, nil
}
