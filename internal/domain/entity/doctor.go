package entity

import "time"

// Doctor is an actor offering appointment slots. Specialty and address
// fields are searchable through the public listing.
type Doctor struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName       string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone           string    `gorm:"type:varchar(15);uniqueIndex;not null" json:"phone"`
	Specialty       string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	City            string    `gorm:"type:varchar(50);not null" json:"city"`
	Street          string    `gorm:"type:varchar(50);not null" json:"street"`
	PostalCode      string    `gorm:"type:varchar(10);not null" json:"postal_code"`
	PersonalPicture string    `gorm:"type:varchar(200);uniqueIndex" json:"personal_picture,omitempty"`
	Password        string    `gorm:"type:text;not null" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
