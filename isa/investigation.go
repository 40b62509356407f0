package isa

import (
	"fmt"
)

// This package defines the source aggregate for the conversion service: an
// ISA-JSON investigation (https://isa-specs.readthedocs.io/), restricted to
// the fields the BioStudies mapping consumes. Field names in JSON match the
// camelCase keys used by the ISA-JSON serialization.

// a named comment attached to a data file
type Comment struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// an ontology term with a display value and an optional term source
type OntologyAnnotation struct {
	AnnotationValue string `json:"annotationValue"`
	TermSource      string `json:"termSource,omitempty"`
}

// a person associated with an investigation or study
type Person struct {
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	MidInitials string               `json:"midInitials,omitempty"`
	Email       string               `json:"email,omitempty"`
	Affiliation string               `json:"affiliation,omitempty"`
	Roles       []OntologyAnnotation `json:"roles,omitempty"`
}

// a data file produced by an assay
type DataFile struct {
	Filename string    `json:"filename"`
	Label    string    `json:"label,omitempty"`
	Type     string    `json:"type,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// an assay performed within a study
type Assay struct {
	Filename        string              `json:"filename"`
	MeasurementType *OntologyAnnotation `json:"measurementType,omitempty"`
	TechnologyType  *OntologyAnnotation `json:"technologyType,omitempty"`
	DataFiles       []DataFile          `json:"dataFiles,omitempty"`
}

// a source material with free-form characteristic entries
type Source struct {
	Name            string           `json:"name"`
	Characteristics []map[string]any `json:"characteristics,omitempty"`
}

// a sample derived from one or more source materials
type Sample struct {
	Name        string   `json:"name"`
	DerivesFrom []string `json:"derivesFrom,omitempty"`
}

// the materials block of a study
type Materials struct {
	Sources []Source `json:"sources,omitempty"`
	Samples []Sample `json:"samples,omitempty"`
}

// a single study within an investigation
type Study struct {
	Identifier        string     `json:"identifier"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	SubmissionDate    string     `json:"submissionDate,omitempty"`
	PublicReleaseDate string     `json:"publicReleaseDate,omitempty"`
	Filename          string     `json:"filename"`
	Contacts          []Person   `json:"contacts,omitempty"`
	Materials         *Materials `json:"materials,omitempty"`
	Assays            []Assay    `json:"assays,omitempty"`
}

// an ISA-JSON investigation: the root of the source document
type Investigation struct {
	Identifier        string   `json:"identifier"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	SubmissionDate    string   `json:"submissionDate,omitempty"`
	PublicReleaseDate string   `json:"publicReleaseDate,omitempty"`
	Contacts          []Person `json:"contacts,omitempty"`
	Studies           []Study  `json:"studies,omitempty"`
}

// this helper validates a person, reporting the first missing required field
func validatePerson(context string, person Person) error {
	if person.FirstName == "" {
		return ValidationError{Message: fmt.Sprintf("%s: contact has no first name", context)}
	}
	if person.LastName == "" {
		return ValidationError{Message: fmt.Sprintf("%s: contact has no last name", context)}
	}
	return nil
}

// Validate checks the investigation's structural shape, reporting the first
// missing required field it encounters. It is called at the service boundary
// so that shape problems surface before any transformation begins. It does
// not require the presence of studies; that invariant belongs to the
// transformation itself.
func (inv Investigation) Validate() error {
	if inv.Identifier == "" {
		return ValidationError{Message: "investigation has no identifier"}
	}
	if inv.Title == "" {
		return ValidationError{Message: "investigation has no title"}
	}
	for _, contact := range inv.Contacts {
		if err := validatePerson("investigation", contact); err != nil {
			return err
		}
	}
	for _, study := range inv.Studies {
		if study.Identifier == "" {
			return ValidationError{Message: "study has no identifier"}
		}
		if study.Title == "" {
			return ValidationError{Message: fmt.Sprintf("study %s has no title", study.Identifier)}
		}
		if study.Filename == "" {
			return ValidationError{Message: fmt.Sprintf("study %s has no filename", study.Identifier)}
		}
		for _, contact := range study.Contacts {
			if err := validatePerson(fmt.Sprintf("study %s", study.Identifier), contact); err != nil {
				return err
			}
		}
		if study.Materials != nil {
			for _, source := range study.Materials.Sources {
				if source.Name == "" {
					return ValidationError{Message: fmt.Sprintf("study %s has a source with no name", study.Identifier)}
				}
			}
			for _, sample := range study.Materials.Samples {
				if sample.Name == "" {
					return ValidationError{Message: fmt.Sprintf("study %s has a sample with no name", study.Identifier)}
				}
			}
		}
		for _, assay := range study.Assays {
			if assay.Filename == "" {
				return ValidationError{Message: fmt.Sprintf("study %s has an assay with no filename", study.Identifier)}
			}
			for _, dataFile := range assay.DataFiles {
				if dataFile.Filename == "" {
					return ValidationError{Message: fmt.Sprintf("assay %s has a data file with no filename", assay.Filename)}
				}
			}
		}
	}
	return nil
}
