package domain

import "time"

// Disease is a catalog entry (diseases table).
type Disease struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Symptoms      []string  `db:"symptoms" json:"symptoms"`
	Severity      string    `db:"severity" json:"severity"`
	TreatmentInfo string    `db:"treatment_info" json:"treatment_info"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
}
