// Package catalog loads medicine/disease reference data from YAML or XLSX
// files, seeds it into the repositories and exports it back to XLSX.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"medguide/internal/domain"
	"medguide/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed sample_catalog.yaml
var sampleCatalog []byte

// Catalog is a set of reference rows ready to be seeded.
type Catalog struct {
	Medicines []domain.Medicine
	Diseases  []domain.Disease
}

type medicineRecord struct {
	Name              string            `yaml:"name"`
	GenericName       string            `yaml:"generic_name"`
	Description       string            `yaml:"description"`
	DosageForms       []string          `yaml:"dosage_forms"`
	Indications       string            `yaml:"indications"`
	Contraindications string            `yaml:"contraindications"`
	SideEffects       string            `yaml:"side_effects"`
	Precautions       string            `yaml:"precautions"`
	Interactions      []string          `yaml:"interactions"`
	DosageInfo        map[string]string `yaml:"dosage_info"`
	Category          string            `yaml:"category"`
	Manufacturer      string            `yaml:"manufacturer"`
	ImageURL          string            `yaml:"image_url"`
	DiseasesTreated   []string          `yaml:"diseases_treated"`
	SeverityLevel     string            `yaml:"severity_level"`
}

type diseaseRecord struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Symptoms      []string `yaml:"symptoms"`
	Severity      string   `yaml:"severity"`
	TreatmentInfo string   `yaml:"treatment_info"`
}

type catalogFile struct {
	Medicines []medicineRecord `yaml:"medicines"`
	Diseases  []diseaseRecord  `yaml:"diseases"`
}

// Sample returns the built-in catalog used when no seed file is given.
func Sample() (*Catalog, error) {
	return LoadYAML(bytes.NewReader(sampleCatalog))
}

// LoadFile picks the decoder from the file extension (.yaml, .yml, .xlsx).
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".xlsx":
		return LoadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported catalog file type %q", filepath.Ext(path))
	}
}

// LoadYAML decodes a catalog document.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode catalog yaml: %w", err)
	}

	c := &Catalog{}
	for i, rec := range file.Medicines {
		m := domain.Medicine{
			Name:              strings.TrimSpace(rec.Name),
			GenericName:       strings.TrimSpace(rec.GenericName),
			Description:       rec.Description,
			DosageForms:       rec.DosageForms,
			Indications:       rec.Indications,
			Contraindications: rec.Contraindications,
			SideEffects:       rec.SideEffects,
			Precautions:       rec.Precautions,
			Interactions:      rec.Interactions,
			DosageInfo:        rec.DosageInfo,
			Category:          rec.Category,
			Manufacturer:      rec.Manufacturer,
			ImageURL:          rec.ImageURL,
			DiseasesTreated:   rec.DiseasesTreated,
			SeverityLevel:     rec.SeverityLevel,
		}
		if err := validateMedicine(&m); err != nil {
			return nil, fmt.Errorf("medicine #%d: %w", i+1, err)
		}
		c.Medicines = append(c.Medicines, m)
	}
	for i, rec := range file.Diseases {
		d := domain.Disease{
			Name:          strings.TrimSpace(rec.Name),
			Description:   rec.Description,
			Symptoms:      rec.Symptoms,
			Severity:      rec.Severity,
			TreatmentInfo: rec.TreatmentInfo,
		}
		if d.Name == "" {
			return nil, fmt.Errorf("disease #%d: name is required", i+1)
		}
		c.Diseases = append(c.Diseases, d)
	}
	return c, nil
}

func validateMedicine(m *domain.Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.GenericName == "" {
		return fmt.Errorf("generic_name is required for %q", m.Name)
	}
	if m.Description == "" {
		return fmt.Errorf("description is required for %q", m.Name)
	}
	switch m.SeverityLevel {
	case "", "mild", "moderate", "severe":
	default:
		return fmt.Errorf("invalid severity_level %q for %q", m.SeverityLevel, m.Name)
	}
	return nil
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Skipped   bool
	Medicines int
	Diseases  int
}

// Seed inserts the catalog. Unless force is set it does nothing when the
// medicines table already has rows.
func Seed(ctx context.Context, repos *repository.Repositories, c *Catalog, force bool) (SeedResult, error) {
	var res SeedResult
	if !force {
		n, err := repos.Medicines.CountMedicines(ctx)
		if err != nil {
			return res, err
		}
		if n > 0 {
			res.Skipped = true
			return res, nil
		}
	}

	for i := range c.Medicines {
		m := c.Medicines[i]
		if _, err := repos.Medicines.CreateMedicine(ctx, &m); err != nil {
			return res, err
		}
		res.Medicines++
	}
	for i := range c.Diseases {
		d := c.Diseases[i]
		if _, err := repos.Diseases.CreateDisease(ctx, &d); err != nil {
			return res, err
		}
		res.Diseases++
	}
	return res, nil
}
