package model

// Student is one stored roster record.
type Student struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Age      int    `gorm:"not null" json:"age"`
	Grade    string `gorm:"not null" json:"grade"`
	Rating   *int   `json:"rating"`
	Comments string `json:"comments"`
}

func (Student) TableName() string {
	return "students"
}

// StudentInput holds the writable fields of a Student after form parsing.
type StudentInput struct {
	Name     string `validate:"required"`
	Age      int    `validate:"gte=0,lte=150"`
	Grade    string `validate:"required"`
	Rating   *int   `validate:"omitempty,gte=1,lte=5"`
	Comments string
}

// Student builds a new, unsaved record from the input.
func (in StudentInput) Student() Student {
	return Student{
		Name:     in.Name,
		Age:      in.Age,
		Grade:    in.Grade,
		Rating:   in.Rating,
		Comments: in.Comments,
	}
}
