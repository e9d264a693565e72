package entity

import "time"

// Appointment ties a patient and a doctor to a (date, time) slot.
// A slot is exclusive per doctor and per patient, enforced by unique
// indexes in the migration in addition to the usecase-level check.
//
// Lifecycle: pending (confirmed=false, done=false) -> confirmed -> done.
// Done is never reachable while confirmed is false.
type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Time      string    `gorm:"type:time;not null" json:"time"`
	Case      string    `gorm:"type:varchar(200);not null" json:"case"`
	Confirmed bool      `gorm:"not null;default:false" json:"confirmed"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient    *Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor     *Doctor     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Reschedule *Reschedule `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"reschedule,omitempty"`
	Feedback   *Feedback   `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"feedback,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending reports a not-yet-confirmed appointment.
func (a *Appointment) IsPending() bool {
	return !a.Confirmed && !a.Done
}

// InvolvesActor reports whether the given actor is a party to the appointment.
func (a *Appointment) InvolvesActor(actorID uint, role Role) bool {
	switch role {
	case RolePatient:
		return a.PatientID == actorID
	case RoleDoctor:
		return a.DoctorID == actorID
	}
	return false
}
