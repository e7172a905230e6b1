// Package export renders the cached collections into CSV and PDF files for
// offline use.
package export

import (
	"strconv"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

// Dataset is tabular export content: ordered headers plus rows keyed by
// header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// careerPlaceholder labels a student whose career id no longer resolves.
const careerPlaceholder = "Desconocida"

// StudentsDataset builds the student table, resolving career ids against the
// loaded careers. A dangling reference degrades to a placeholder label.
func StudentsDataset(students []models.Student, careers []models.Career) Dataset {
	names := make(map[string]string, len(careers))
	for _, c := range careers {
		names[c.ID] = c.Name
	}

	rows := make([]map[string]string, 0, len(students))
	for _, s := range students {
		careerName, ok := names[s.Career]
		if !ok {
			careerName = careerPlaceholder
		}
		rows = append(rows, map[string]string{
			"Nombre":              s.Name,
			"Apellidos":           s.SecondName,
			"Estado":              string(s.Status),
			"Carrera":             careerName,
			"Fecha de nacimiento": s.BirthDate.Format("2006-01-02"),
			"Correo":              s.Email,
			"Teléfono":            s.Phone,
			"Dirección":           s.Direction,
		})
	}

	return Dataset{
		Headers: []string{
			"Nombre", "Apellidos", "Estado", "Carrera",
			"Fecha de nacimiento", "Correo", "Teléfono", "Dirección",
		},
		Rows: rows,
	}
}

// CareersDataset builds the career table.
func CareersDataset(careers []models.Career) Dataset {
	rows := make([]map[string]string, 0, len(careers))
	for _, c := range careers {
		rows = append(rows, map[string]string{
			"Nombre":       c.Name,
			"Total":        strconv.Itoa(c.TotalStudents),
			"Inscritos":    strconv.Itoa(c.ActiveStudents),
			"No inscritos": strconv.Itoa(c.InactiveStudents),
		})
	}

	return Dataset{
		Headers: []string{"Nombre", "Total", "Inscritos", "No inscritos"},
		Rows:    rows,
	}
}
