package models

import "time"

// Appointment a patient's booking of one slot. slot_id is unique: a slot is booked at most once.
type Appointment struct {
	BaseModel
	Title     string `gorm:"type:varchar(100);not null"`
	SlotID    uint   `gorm:"uniqueIndex;not null"`
	PatientID uint   `gorm:"index;not null"`

	Slot    AvailabilitySlot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Patient User             `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// AppointmentView appointment joined with its slot times and the parties' usernames.
type AppointmentView struct {
	ID              uint
	Title           string
	SlotID          uint
	PatientID       uint
	PatientUsername string
	DoctorID        uint
	DoctorUsername  string
	StartTime       time.Time
	EndTime         time.Time
	CreatedAt       time.Time
}
