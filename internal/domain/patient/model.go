package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/pkg/dateonly"
)

type Patient struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	FirstName    string        `db:"first_name" json:"firstName"`
	LastName     string        `db:"last_name" json:"lastName"`
	DateOfBirth  dateonly.Date `db:"date_of_birth" json:"dateOfBirth"`
	Gender       string        `db:"gender" json:"gender"`
	Email        *string       `db:"email" json:"email"`
	Phone        string        `db:"phone" json:"phone"`
	Address      string        `db:"address" json:"address"`
	City         string        `db:"city" json:"city"`
	State        string        `db:"state" json:"state"`
	ZipCode      string        `db:"zip_code" json:"zipCode"`
	BloodGroup   *string       `db:"blood_group" json:"bloodGroup"`
	MedicalNotes *string       `db:"medical_notes" json:"medicalNotes"`
	RegisteredAt time.Time     `db:"registered_at" json:"registeredAt"`
}

// Input is the payload accepted by create and update. Dates arrive as
// "2006-01-02" strings and are parsed after validation.
type Input struct {
	FirstName    string  `json:"firstName" validate:"required"`
	LastName     string  `json:"lastName" validate:"required"`
	DateOfBirth  string  `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender       string  `json:"gender" validate:"required,oneof=male female other"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        string  `json:"phone" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	ZipCode      string  `json:"zipCode" validate:"required"`
	BloodGroup   *string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MedicalNotes *string `json:"medicalNotes"`
}
