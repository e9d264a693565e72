package entity

import "time"

// Rating bounds, inclusive.
const (
	RatingMin = 0
	RatingMax = 4
)

// Feedback is the patient's rating of a single appointment, visible to
// the doctor. Keyed 1:1 by appointment.
type Feedback struct {
	AppointmentID uint      `gorm:"primaryKey" json:"appointment_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:varchar(200)" json:"comment,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
