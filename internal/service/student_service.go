package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"roster/internal/model"
)

// Stats is the statistics readout over every stored record.
type Stats struct {
	Count      int64   `json:"count"`
	AverageAge float64 `json:"average_age"`
	// RatingHistogram[i] counts records rated i+1; unrated records are left out.
	RatingHistogram [5]int64 `json:"rating_histogram"`
}

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// Create inserts a new record and returns its id.
func (s *StudentService) Create(ctx context.Context, in model.StudentInput) (uint, error) {
	student := in.Student()
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	return student.ID, nil
}

// List returns every record in insertion order.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := s.db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Delete removes the record with the given id. A missing id is not an error.
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&model.Student{}, id).Error; err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return nil
}

// Update overwrites every field of the record with the given id. A missing
// id is not an error.
func (s *StudentService) Update(ctx context.Context, id uint, in model.StudentInput) error {
	err := s.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":     in.Name,
			"age":      in.Age,
			"grade":    in.Grade,
			"rating":   in.Rating,
			"comments": in.Comments,
		}).Error
	if err != nil {
		return fmt.Errorf("update student %d: %w", id, err)
	}
	return nil
}

// SearchByName returns the records whose name contains substr. The match is
// case-sensitive, so instr is used rather than LIKE.
func (s *StudentService) SearchByName(ctx context.Context, substr string) ([]model.Student, error) {
	var students []model.Student
	err := s.db.WithContext(ctx).
		Where("instr(name, ?) > 0", substr).
		Order("id").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("search students by name: %w", err)
	}
	return students, nil
}

func (s *StudentService) SearchByAge(ctx context.Context, age int) ([]model.Student, error) {
	var students []model.Student
	err := s.db.WithContext(ctx).
		Where("age = ?", age).
		Order("id").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("search students by age: %w", err)
	}
	return students, nil
}

func (s *StudentService) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	var summary struct {
		Count  int64
		AvgAge float64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Student{}).
		Select("COUNT(*) AS count, COALESCE(AVG(age), 0) AS avg_age").
		Scan(&summary).Error
	if err != nil {
		return stats, fmt.Errorf("average age: %w", err)
	}
	stats.Count = summary.Count
	stats.AverageAge = summary.AvgAge

	var buckets []struct {
		Rating int
		N      int64
	}
	err = s.db.WithContext(ctx).
		Model(&model.Student{}).
		Select("rating, COUNT(*) AS n").
		Where("rating BETWEEN 1 AND 5").
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return stats, fmt.Errorf("rating histogram: %w", err)
	}
	for _, b := range buckets {
		stats.RatingHistogram[b.Rating-1] = b.N
	}

	return stats, nil
}
