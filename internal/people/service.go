package people

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

// Service exposes person and role-profile operations to the API layer.
type Service interface {
	CreatePerson(ctx context.Context, firstName string) (*models.Person, error)
	GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error)
	AssignStudentProfile(ctx context.Context, personID uuid.UUID, grade float64) (*models.Person, error)
	AssignTeacherProfile(ctx context.Context, personID uuid.UUID, qualification, subject string) (*models.Person, error)
	ListStudents(ctx context.Context, params pagination.Params) ([]models.Person, error)
	ListTeachers(ctx context.Context, params pagination.Params) ([]models.Person, error)
}

type service struct {
	repo Repository
}

// NewService builds the people service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("people repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreatePerson(ctx context.Context, firstName string) (*models.Person, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name required")
	}
	person, err := s.repo.CreatePerson(ctx, &models.Person{FirstName: firstName})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create person")
	}
	return person, nil
}

func (s *service) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "person id required")
	}
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "person not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load person")
	}
	return person, nil
}

// AssignStudentProfile attaches or replaces the student role of a person.
// Grades live on a 0 to 100 scale.
func (s *service) AssignStudentProfile(ctx context.Context, personID uuid.UUID, grade float64) (*models.Person, error) {
	if grade < 0 || grade > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grade must be between 0 and 100").
			WithDetails(map[string]any{"grade": grade})
	}
	person, err := s.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	profile := &models.StudentProfile{PersonID: person.ID, Grade: grade}
	if err := s.repo.UpsertStudentProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save student profile")
	}
	return s.GetPerson(ctx, personID)
}

func (s *service) AssignTeacherProfile(ctx context.Context, personID uuid.UUID, qualification, subject string) (*models.Person, error) {
	qualification = strings.TrimSpace(qualification)
	subject = strings.TrimSpace(subject)
	if qualification == "" || subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qualification and subject required")
	}
	person, err := s.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	profile := &models.TeacherProfile{
		PersonID:      person.ID,
		Qualification: qualification,
		Subject:       subject,
	}
	if err := s.repo.UpsertTeacherProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save teacher profile")
	}
	return s.GetPerson(ctx, personID)
}

func (s *service) ListStudents(ctx context.Context, params pagination.Params) ([]models.Person, error) {
	persons, err := s.repo.ListStudents(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list students")
	}
	return persons, nil
}

func (s *service) ListTeachers(ctx context.Context, params pagination.Params) ([]models.Person, error) {
	persons, err := s.repo.ListTeachers(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list teachers")
	}
	return persons, nil
}
