package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name          string    `json:"name" db:"name"`
	Address       *string   `json:"address" db:"address"`
	ContactPerson *string   `json:"contact_person" db:"contact_person"`
	PhoneNumber   *string   `json:"phone_number" db:"phone_number"`
	Email         *string   `json:"email" db:"email"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
