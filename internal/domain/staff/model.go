package staff

import (
	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/account"
	"github.com/hms/hms/pkg/dateonly"
)

type Staff struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	UserID         uuid.UUID     `db:"user_id" json:"userId"`
	Specialization *string       `db:"specialization" json:"specialization"`
	Department     string        `db:"department" json:"department"`
	Phone          string        `db:"phone" json:"phone"`
	Address        *string       `db:"address" json:"address"`
	HireDate       dateonly.Date `db:"hire_date" json:"hireDate"`
	IsActive       bool          `db:"is_active" json:"isActive"`
}

// Detail is a staff record joined with its user account. The user's password
// hash never serializes.
type Detail struct {
	Staff
	User account.User `json:"user"`
}

type Input struct {
	UserID         string  `json:"userId" validate:"required,uuid"`
	Specialization *string `json:"specialization"`
	Department     string  `json:"department" validate:"required"`
	Phone          string  `json:"phone" validate:"required"`
	Address        *string `json:"address"`
	HireDate       string  `json:"hireDate" validate:"required,datetime=2006-01-02"`
	IsActive       *bool   `json:"isActive"`
}
