package models

import (
	"errors"
	"strings"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Grades lists the grades students can be enrolled in, in ascending
// order.
var Grades = []string{
	"PP1", "PP2",
	"Grade 1", "Grade 2", "Grade 3", "Grade 4", "Grade 5",
	"Grade 6", "Grade 7", "Grade 8", "Grade 9",
}

// Student represents a learner enrolled at the school.
type Student struct {
	DefaultModel
	AdmissionNumber string `gorm:"uniqueIndex"`
	FirstName       string
	LastName        string
	Grade           string
	GuardianName    string
	GuardianPhone   string
	Archived        bool
}

var (
	ErrAdmissionNumberNotUnique = errors.New("the admission number is already in use")
	ErrInvalidGrade             = errors.New("the grade is not a valid grade")
)

// BeforeSave trims whitespace and verifies the grade.
func (s *Student) BeforeSave(_ *gorm.DB) error {
	s.AdmissionNumber = strings.TrimSpace(s.AdmissionNumber)
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.GuardianName = strings.TrimSpace(s.GuardianName)
	s.GuardianPhone = strings.TrimSpace(s.GuardianPhone)

	if !slices.Contains(Grades, s.Grade) {
		return ErrInvalidGrade
	}

	return nil
}
