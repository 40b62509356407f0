package isa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a well-formed ISA-JSON investigation document
const investigationJson string = `{
  "identifier": "INV-101",
  "title": "Investigation Title",
  "description": "Investigation Description",
  "submissionDate": "2023-01-01",
  "contacts": [
    {
      "firstName": "John",
      "lastName": "Doe",
      "affiliation": "Lab A",
      "email": "john@example.com",
      "roles": [
        {"annotationValue": "principal investigator", "termSource": "SCoRO"}
      ]
    }
  ],
  "studies": [
    {
      "identifier": "STU-101",
      "title": "Study Title",
      "filename": "s_study.txt",
      "materials": {
        "sources": [{"name": "Source-1", "characteristics": [{"organism": "H. sapiens"}]}],
        "samples": [{"name": "Sample-1", "derivesFrom": ["Source-1"]}]
      },
      "assays": [
        {
          "filename": "a_assay.txt",
          "measurementType": {"annotationValue": "imaging"},
          "dataFiles": [
            {"filename": "raw_data.fastq", "label": "Raw Reads", "type": "fastq"}
          ]
        }
      ]
    }
  ]
}`

// tests that the camelCase ISA-JSON keys land in the right fields
func TestUnmarshalInvestigation(t *testing.T) {
	assert := assert.New(t)
	var inv Investigation
	err := json.Unmarshal([]byte(investigationJson), &inv)
	assert.Nil(err, "Couldn't unmarshal the investigation document")
	assert.Equal("INV-101", inv.Identifier)
	assert.Equal("Investigation Title", inv.Title)
	assert.Equal("2023-01-01", inv.SubmissionDate)
	assert.Equal(1, len(inv.Contacts))
	assert.Equal("principal investigator", inv.Contacts[0].Roles[0].AnnotationValue)
	assert.Equal("SCoRO", inv.Contacts[0].Roles[0].TermSource)
	assert.Equal(1, len(inv.Studies))
	study := inv.Studies[0]
	assert.Equal("STU-101", study.Identifier)
	assert.Equal("s_study.txt", study.Filename)
	assert.NotNil(study.Materials)
	assert.Equal("Sample-1", study.Materials.Samples[0].Name)
	assert.Equal([]string{"Source-1"}, study.Materials.Samples[0].DerivesFrom)
	assert.Equal("imaging", study.Assays[0].MeasurementType.AnnotationValue)
	assert.Nil(study.Assays[0].TechnologyType)
	assert.Equal("raw_data.fastq", study.Assays[0].DataFiles[0].Filename)
}

func TestValidateWellFormedInvestigation(t *testing.T) {
	assert := assert.New(t)
	var inv Investigation
	json.Unmarshal([]byte(investigationJson), &inv)
	assert.Nil(inv.Validate(), "Well-formed investigation failed validation")
}

// an investigation with no studies is structurally fine; the single-study
// requirement belongs to the transformation
func TestValidateInvestigationWithoutStudies(t *testing.T) {
	assert := assert.New(t)
	inv := Investigation{
		Identifier: "INV-101",
		Title:      "Investigation Title",
	}
	assert.Nil(inv.Validate(), "Investigation without studies failed validation")
}

func TestValidateRejectsMissingIdentifier(t *testing.T) {
	assert := assert.New(t)
	inv := Investigation{Title: "Investigation Title"}
	err := inv.Validate()
	assert.NotNil(err, "Investigation without an identifier passed validation")
	assert.IsType(ValidationError{}, err)
}

func TestValidateRejectsMissingTitle(t *testing.T) {
	assert := assert.New(t)
	inv := Investigation{Identifier: "INV-101"}
	err := inv.Validate()
	assert.NotNil(err, "Investigation without a title passed validation")
}

// a contact missing a required name field fails validation before any
// transformation can begin
func TestValidateRejectsNamelessContact(t *testing.T) {
	assert := assert.New(t)
	inv := Investigation{
		Identifier: "INV-101",
		Title:      "Investigation Title",
		Contacts:   []Person{{FirstName: "John"}},
	}
	err := inv.Validate()
	assert.NotNil(err, "Contact without a last name passed validation")
	assert.IsType(ValidationError{}, err)

	inv.Contacts = []Person{{LastName: "Doe"}}
	err = inv.Validate()
	assert.NotNil(err, "Contact without a first name passed validation")
}

func TestValidateRejectsStudyWithoutFilename(t *testing.T) {
	assert := assert.New(t)
	inv := Investigation{
		Identifier: "INV-101",
		Title:      "Investigation Title",
		Studies: []Study{
			{Identifier: "STU-101", Title: "Study Title"},
		},
	}
	err := inv.Validate()
	assert.NotNil(err, "Study without a filename passed validation")
}

func TestValidateRejectsDataFileWithoutFilename(t *testing.T) {
	assert := assert.New(t)
	inv := Investigation{
		Identifier: "INV-101",
		Title:      "Investigation Title",
		Studies: []Study{
			{
				Identifier: "STU-101",
				Title:      "Study Title",
				Filename:   "s_study.txt",
				Assays: []Assay{
					{Filename: "a_assay.txt", DataFiles: []DataFile{{Label: "Raw Reads"}}},
				},
			},
		},
	}
	err := inv.Validate()
	assert.NotNil(err, "Data file without a filename passed validation")
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Message: "investigation has no identifier"}
	assert.Equal(t, "Invalid ISA-JSON document: investigation has no identifier", err.Error())
}
