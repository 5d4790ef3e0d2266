package models

import "time"

// AvailabilitySlot a doctor-owned window [StartTime, EndTime).
type AvailabilitySlot struct {
	BaseModel
	StartTime time.Time `gorm:"not null;index"`
	EndTime   time.Time `gorm:"not null"`
	UserID    uint      `gorm:"not null;index"` // owning doctor
	Location  string    `gorm:"type:varchar(200)"`
	Notes     string    `gorm:"type:text"`

	Doctor User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// SlotView slot plus its booking state and owner, as listed on dashboards.
type SlotView struct {
	ID             uint
	StartTime      time.Time
	EndTime        time.Time
	UserID         uint
	DoctorUsername string
	Location       string
	Notes          string
	Booked         bool
}
