package people

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for persons and their profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePerson(ctx context.Context, person *models.Person) (*models.Person, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	UpsertStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	UpsertTeacherProfile(ctx context.Context, profile *models.TeacherProfile) error
	ListStudents(ctx context.Context, params pagination.Params) ([]models.Person, error)
	ListTeachers(ctx context.Context, params pagination.Params) ([]models.Person, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a people repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreatePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	if err := r.db.WithContext(ctx).Omit("StudentProfile", "TeacherProfile").Create(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	var person models.Person
	err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("TeacherProfile").
		Where("id = ?", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *repository) UpsertStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *repository) UpsertTeacherProfile(ctx context.Context, profile *models.TeacherProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *repository) ListStudents(ctx context.Context, params pagination.Params) ([]models.Person, error) {
	params = params.Normalize()
	var persons []models.Person
	err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Joins("JOIN student_profiles ON student_profiles.person_id = persons.id").
		Order("persons.first_name ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *repository) ListTeachers(ctx context.Context, params pagination.Params) ([]models.Person, error) {
	params = params.Normalize()
	var persons []models.Person
	err := r.db.WithContext(ctx).
		Preload("TeacherProfile").
		Joins("JOIN teacher_profiles ON teacher_profiles.person_id = persons.id").
		Order("persons.first_name ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}
