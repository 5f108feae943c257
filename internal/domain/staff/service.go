package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validate"
	"github.com/hms/hms/pkg/dateonly"
)

// ErrUnknownUser is returned when the referenced user account does not exist.
var ErrUnknownUser = errors.New("user does not exist")

type Service struct {
	staff Repository
}

func NewService(staff Repository) *Service {
	return &Service{staff: staff}
}

func (s *Service) Create(ctx context.Context, in Input) (*Detail, error) {
	st, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.staff.Create(ctx, st); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return s.staff.GetByID(ctx, st.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Detail, error) {
	return s.staff.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Detail, error) {
	st, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	st.ID = id
	if err := s.staff.Update(ctx, st); err != nil {
		if db.IsNotFound(err) {
			return nil, err
		}
		if db.IsForeignKeyViolation(err) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("update staff: %w", err)
	}
	return s.staff.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.staff.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return db.ErrNotFound
	}
	return nil
}

func (s *Service) fromInput(in Input) (*Staff, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, validate.Errors{{Field: "userId", Message: "must be a valid id"}}
	}
	hireDate, err := dateonly.Parse(in.HireDate)
	if err != nil {
		return nil, validate.Errors{{Field: "hireDate", Message: "must be a date in 2006-01-02 format"}}
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &Staff{
		UserID:         userID,
		Specialization: in.Specialization,
		Department:     in.Department,
		Phone:          in.Phone,
		Address:        in.Address,
		HireDate:       hireDate,
		IsActive:       active,
	}, nil
}
