package dashboard

import "context"

type Repository interface {
	// Counts returns the total number of patients, staff, and appointments.
	Counts(ctx context.Context) (patients, staff, appointments int, err error)
}
