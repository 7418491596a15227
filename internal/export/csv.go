package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"roster/internal/model"
)

// Header is the first line of every export.
var Header = []string{"ID", "Name", "Age", "Grade", "Rating", "Comments"}

// WriteCSV writes the header followed by one line per student. An unset
// rating is written as an empty cell.
func WriteCSV(w io.Writer, students []model.Student) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range students {
		rating := ""
		if s.Rating != nil {
			rating = strconv.Itoa(*s.Rating)
		}
		record := []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.Name,
			strconv.Itoa(s.Age),
			s.Grade,
			rating,
			s.Comments,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write student %d: %w", s.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile creates or truncates path and writes the export into it.
func WriteFile(path string, students []model.Student) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := WriteCSV(file, students); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
