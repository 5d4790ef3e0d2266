package models

// Role access class of a user.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// User login identity. Password holds the bcrypt hash, never plaintext.
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(80);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     Role   `gorm:"type:varchar(50);not null"`
}
