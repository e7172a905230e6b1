package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentWireIngestParsesBirthDate(t *testing.T) {
	wire := StudentWire{
		ID:         "s1",
		Name:       "Ana",
		SecondName: "García",
		Status:     StatusEnrolled,
		Career:     "c1",
		BirthDate:  "2000-04-09T00:00:00.000Z",
	}

	student, err := wire.Ingest()
	require.NoError(t, err)
	assert.Equal(t, 2000, student.BirthDate.Year())
	assert.Equal(t, time.April, student.BirthDate.Month())
	assert.Equal(t, 9, student.BirthDate.Day())
}

func TestStudentWireIngestAcceptsPlainDate(t *testing.T) {
	wire := StudentWire{ID: "s1", BirthDate: "1999-12-31"}

	student, err := wire.Ingest()
	require.NoError(t, err)
	assert.Equal(t, 1999, student.BirthDate.Year())
}

func TestStudentWireIngestRejectsGarbage(t *testing.T) {
	wire := StudentWire{ID: "s1", BirthDate: "not-a-date"}

	_, err := wire.Ingest()
	require.Error(t, err)
}

func TestCareerWireIngestDerivesInactive(t *testing.T) {
	wire := CareerWire{ID: "c1", Name: "Medicina", TotalStudents: 10, ActiveStudents: 7}

	career := wire.Ingest()
	assert.Equal(t, 3, career.InactiveStudents)
}

func TestCareerWireIngestKeepsServerValue(t *testing.T) {
	five := 5
	wire := CareerWire{ID: "c1", TotalStudents: 10, ActiveStudents: 7, InactiveStudents: &five}

	career := wire.Ingest()
	assert.Equal(t, 5, career.InactiveStudents)
}
