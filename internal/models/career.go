package models

// Career is an academic program. InactiveStudents always satisfies
// TotalStudents - ActiveStudents; when the server omits it, ingestion derives
// it so downstream code never special-cases its absence.
type Career struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TotalStudents    int    `json:"totalStudents"`
	ActiveStudents   int    `json:"activeStudents"`
	InactiveStudents int    `json:"inactiveStudents"`
}

// CareerWire is the server shape, where inactiveStudents may be missing
// depending on the deployment variant.
type CareerWire struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TotalStudents    int    `json:"totalStudents"`
	ActiveStudents   int    `json:"activeStudents"`
	InactiveStudents *int   `json:"inactiveStudents,omitempty"`
}

// Ingest converts the wire record into a Career, deriving the inactive count
// when the server left it out.
func (w CareerWire) Ingest() Career {
	inactive := w.TotalStudents - w.ActiveStudents
	if w.InactiveStudents != nil {
		inactive = *w.InactiveStudents
	}
	return Career{
		ID:               w.ID,
		Name:             w.Name,
		TotalStudents:    w.TotalStudents,
		ActiveStudents:   w.ActiveStudents,
		InactiveStudents: inactive,
	}
}
