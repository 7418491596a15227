package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"roster/internal/model"
)

const (
	msgRequired    = "All fields are required!"
	msgNotNumber   = "Age and Rating must be numbers!"
	msgAgeRange    = "Age must be between 0 and 150!"
	msgRatingRange = "Rating must be between 1 and 5!"
	msgAgeQuery    = "Age must be a number!"
)

var validate = validator.New()

// ValidationError is returned for user input that must not reach storage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StudentForm is the raw text of the entry form.
type StudentForm struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Grade    string `json:"grade"`
	Rating   string `json:"rating"`
	Comments string `json:"comments"`
}

// ParseStudentForm trims and validates the form. Rating may be left blank.
func ParseStudentForm(f StudentForm) (model.StudentInput, error) {
	name := strings.TrimSpace(f.Name)
	age := strings.TrimSpace(f.Age)
	grade := strings.TrimSpace(f.Grade)
	rating := strings.TrimSpace(f.Rating)

	if name == "" || age == "" || grade == "" {
		return model.StudentInput{}, &ValidationError{Message: msgRequired}
	}

	in := model.StudentInput{
		Name:     name,
		Grade:    grade,
		Comments: strings.TrimSpace(f.Comments),
	}

	n, err := strconv.Atoi(age)
	if err != nil {
		return model.StudentInput{}, &ValidationError{Message: msgNotNumber}
	}
	in.Age = n

	if rating != "" {
		r, err := strconv.Atoi(rating)
		if err != nil {
			return model.StudentInput{}, &ValidationError{Message: msgNotNumber}
		}
		in.Rating = &r
	}

	if err := validate.Struct(in); err != nil {
		return model.StudentInput{}, translate(err)
	}
	return in, nil
}

// ParseAgeQuery parses the age search box.
func ParseAgeQuery(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Message: msgAgeQuery}
	}
	return n, nil
}

func translate(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	switch ve[0].Field() {
	case "Age":
		return &ValidationError{Message: msgAgeRange}
	case "Rating":
		return &ValidationError{Message: msgRatingRange}
	default:
		return &ValidationError{Message: msgRequired}
	}
}
