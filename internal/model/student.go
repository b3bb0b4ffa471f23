package model

import "time"

// Student represents a student record managed by an NGO account.
// NgoID is the owning account; every read and mutation is scoped by it.
type Student struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	NgoID           uint      `json:"ngo_id" gorm:"not null;index"`
	Name            string    `json:"name" gorm:"size:100;not null"`
	Age             int       `json:"age"`
	DisabilityType  string    `json:"disability_type" gorm:"size:100"`
	CertificateFile string    `json:"certificate_file" gorm:"size:255"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Ngo User `json:"-" gorm:"foreignKey:NgoID;constraint:OnDelete:CASCADE"`
}
