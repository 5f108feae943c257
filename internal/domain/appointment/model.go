package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/staff"
)

const (
	StatusConfirmed  = "confirmed"
	StatusPending    = "pending"
	StatusCancelled  = "cancelled"
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
)

const DefaultStatus = StatusPending

type Appointment struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patientId"`
	StaffID      uuid.UUID  `db:"staff_id" json:"staffId"`
	ScheduledFor time.Time  `db:"scheduled_for" json:"scheduledFor"`
	Reason       string     `db:"reason" json:"reason"`
	Status       string     `db:"status" json:"status"`
	Notes        *string    `db:"notes" json:"notes"`
	CreatedByID  *uuid.UUID `db:"created_by_id" json:"createdById"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

// Detail is an appointment joined with its patient and its staff member,
// where the staff member itself carries the joined user account.
type Detail struct {
	Appointment
	Patient patient.Patient `json:"patient"`
	Staff   staff.Detail    `json:"staff"`
}

type Input struct {
	PatientID    string  `json:"patientId" validate:"required,uuid"`
	StaffID      string  `json:"staffId" validate:"required,uuid"`
	ScheduledFor string  `json:"scheduledFor" validate:"required"`
	Reason       string  `json:"reason" validate:"required"`
	Status       string  `json:"status" validate:"omitempty,oneof=confirmed pending cancelled completed in_progress"`
	Notes        *string `json:"notes"`
}
