package domain

import "time"

// Medicine is a catalog entry (medicines table).
// List-valued columns are stored as JSON text.
type Medicine struct {
	ID                int64             `db:"id" json:"id"`
	Name              string            `db:"name" json:"name"`
	GenericName       string            `db:"generic_name" json:"generic_name"`
	Description       string            `db:"description" json:"description"`
	DosageForms       []string          `db:"dosage_forms" json:"dosage_forms"`
	Indications       string            `db:"indications" json:"indications,omitempty"`
	Contraindications string            `db:"contraindications" json:"contraindications,omitempty"`
	SideEffects       string            `db:"side_effects" json:"side_effects,omitempty"`
	Precautions       string            `db:"precautions" json:"precautions,omitempty"`
	Interactions      []string          `db:"interactions" json:"interactions"`
	DosageInfo        map[string]string `db:"dosage_info" json:"dosage_info,omitempty"`
	Category          string            `db:"category" json:"category"`
	Manufacturer      string            `db:"manufacturer" json:"manufacturer,omitempty"`
	ImageURL          string            `db:"image_url" json:"image_url,omitempty"`
	DiseasesTreated   []string          `db:"diseases_treated" json:"diseases_treated"`
	SeverityLevel     string            `db:"severity_level" json:"severity_level,omitempty"` // mild, moderate, severe
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}

// MedicineSummary is the list projection served by GET /api/medicines.
type MedicineSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	GenericName string `json:"generic_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (m *Medicine) Summary() MedicineSummary {
	return MedicineSummary{
		ID:          m.ID,
		Name:        m.Name,
		GenericName: m.GenericName,
		Description: m.Description,
		Category:    m.Category,
	}
}
