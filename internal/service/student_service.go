package service

import (
	"context"
	"fmt"

	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/model"
	"pwdassist/internal/repository"
)

// StudentInput carries the mutable student fields.
type StudentInput struct {
	Name            string
	Age             int
	DisabilityType  string
	CertificateFile string
}

// StudentService handles NGO-owned student records. ngoID is the calling
// account's id; no operation can reach another NGO's rows.
type StudentService interface {
	List(ctx context.Context, ngoID uint) ([]model.Student, error)
	Create(ctx context.Context, ngoID uint, in StudentInput) (*model.Student, error)
	Update(ctx context.Context, ngoID, studentID uint, in StudentInput) error
	Delete(ctx context.Context, ngoID, studentID uint) error
}

type studentService struct {
	students repository.StudentRepository
}

// NewStudentService creates a new student service.
func NewStudentService(students repository.StudentRepository) StudentService {
	return &studentService{students: students}
}

// List returns the NGO's students, newest first.
func (s *studentService) List(ctx context.Context, ngoID uint) ([]model.Student, error) {
	return s.students.ListByNgo(ctx, ngoID)
}

// Create inserts a student owned by ngoID.
func (s *studentService) Create(ctx context.Context, ngoID uint, in StudentInput) (*model.Student, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	student := &model.Student{
		NgoID:           ngoID,
		Name:            in.Name,
		Age:             in.Age,
		DisabilityType:  in.DisabilityType,
		CertificateFile: in.CertificateFile,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// Update rewrites a student's fields. Zero rows affected means the id is
// absent or belongs to another NGO; the caller cannot tell which.
func (s *studentService) Update(ctx context.Context, ngoID, studentID uint, in StudentInput) error {
	student := &model.Student{
		Name:            in.Name,
		Age:             in.Age,
		DisabilityType:  in.DisabilityType,
		CertificateFile: in.CertificateFile,
	}
	rows, err := s.students.Update(ctx, ngoID, studentID, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrNotFoundOrNotOwned
	}
	return nil
}

// Delete removes a student, scoped by ownership identically to Update.
func (s *studentService) Delete(ctx context.Context, ngoID, studentID uint) error {
	rows, err := s.students.Delete(ctx, ngoID, studentID)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrNotFoundOrNotOwned
	}
	return nil
}
