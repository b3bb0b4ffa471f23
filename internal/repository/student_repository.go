package repository

import (
	"context"

	"gorm.io/gorm"

	"pwdassist/internal/model"
)

// StudentRepository defines student persistence operations. Every query is
// scoped by the owning NGO id; update and delete report rows affected so
// callers can tell an absent-or-foreign record from a successful write.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	ListByNgo(ctx context.Context, ngoID uint) ([]model.Student, error)
	Update(ctx context.Context, ngoID, id uint, student *model.Student) (int64, error)
	Delete(ctx context.Context, ngoID, id uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create creates a new student record.
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// ListByNgo lists an NGO's students, newest first.
func (r *studentRepository) ListByNgo(ctx context.Context, ngoID uint) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.WithContext(ctx).
		Where("ngo_id = ?", ngoID).
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Update rewrites the mutable fields of a student owned by ngoID. A foreign
// or absent id simply affects zero rows.
func (r *studentRepository) Update(ctx context.Context, ngoID, id uint, student *model.Student) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ? AND ngo_id = ?", id, ngoID).
		Updates(map[string]interface{}{
			"name":             student.Name,
			"age":              student.Age,
			"disability_type":  student.DisabilityType,
			"certificate_file": student.CertificateFile,
		})
	return res.RowsAffected, res.Error
}

// Delete removes a student owned by ngoID, scoped identically to Update.
func (r *studentRepository) Delete(ctx context.Context, ngoID, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND ngo_id = ?", id, ngoID).
		Delete(&model.Student{})
	return res.RowsAffected, res.Error
}
