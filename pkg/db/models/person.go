package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is the shared identity for the student/teacher records. Role data
// hangs off it as profile rows instead of subclassed tables.
type Person struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName      string          `gorm:"column:first_name;not null" json:"first_name"`
	StudentProfile *StudentProfile `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"student_profile,omitempty"`
	TeacherProfile *TeacherProfile `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"teacher_profile,omitempty"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table to "persons"; the default naming strategy would
// inflect Person to "people".
func (Person) TableName() string {
	return "persons"
}

func (p *Person) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// StudentProfile holds the grade for persons enrolled as students.
type StudentProfile struct {
	PersonID  uuid.UUID `gorm:"column:person_id;type:uuid;primaryKey" json:"person_id"`
	Grade     float64   `gorm:"column:grade;not null" json:"grade"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TeacherProfile holds the teaching role data for a person.
type TeacherProfile struct {
	PersonID      uuid.UUID `gorm:"column:person_id;type:uuid;primaryKey" json:"person_id"`
	Qualification string    `gorm:"column:qualification;not null" json:"qualification"`
	Subject       string    `gorm:"column:subject;not null" json:"subject"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
