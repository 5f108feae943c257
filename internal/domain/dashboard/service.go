package dashboard

import (
	"context"
	"fmt"
)

type Service struct {
	stats Repository
}

func NewService(stats Repository) *Service {
	return &Service{stats: stats}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	patients, staff, appointments, err := s.stats.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	return &Stats{
		PatientCount:     patients,
		StaffCount:       staff,
		AppointmentCount: appointments,
		BedOccupancy:     bedOccupancyPlaceholder,
	}, nil
}
