package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validate"
	"github.com/hms/hms/pkg/dateonly"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	p, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Patient, error) {
	p, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.patients.Update(ctx, p); err != nil {
		if db.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.patients.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return db.ErrNotFound
	}
	return nil
}

func (s *Service) fromInput(in Input) (*Patient, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	dob, err := dateonly.Parse(in.DateOfBirth)
	if err != nil {
		return nil, validate.Errors{{Field: "dateOfBirth", Message: "must be a date in 2006-01-02 format"}}
	}

	return &Patient{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  dob,
		Gender:       in.Gender,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		BloodGroup:   in.BloodGroup,
		MedicalNotes: in.MedicalNotes,
	}, nil
}
