package entity

import "time"

// Reschedule is a patient-proposed slot change awaiting the doctor's
// accept or reject. At most one exists per appointment. OldDate/OldTime
// snapshot the appointment at first proposal time and survive
// re-proposals, which only overwrite the proposed slot.
type Reschedule struct {
	AppointmentID uint      `gorm:"primaryKey" json:"appointment_id"`
	OldDate       time.Time `gorm:"type:date;not null" json:"old_date"`
	OldTime       string    `gorm:"type:time;not null" json:"old_time"`
	NewDate       time.Time `gorm:"type:date;not null" json:"new_date"`
	NewTime       string    `gorm:"type:time;not null" json:"new_time"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Reschedule) TableName() string {
	return "reschedules"
}
