package biostudies

import (
	"fmt"

	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/isa"
)

// this helper drops attributes with blank values, preserving the order of
// those that remain
func filterAttributes(attributes []Attribute) []Attribute {
	kept := make([]Attribute, 0, len(attributes))
	for _, attribute := range attributes {
		if attribute.Value != "" {
			kept = append(kept, attribute)
		}
	}
	return kept
}

// this helper maps a contact to an "Author" section; only the first of the
// contact's roles is reflected in the section
func authorSection(contact isa.Person) Section {
	var role string
	if len(contact.Roles) > 0 {
		role = contact.Roles[0].AnnotationValue
	}
	return Section{
		Type: "Author",
		Attributes: filterAttributes([]Attribute{
			{Name: "Name", Value: fmt.Sprintf("%s %s", contact.FirstName, contact.LastName)},
			{Name: "Email", Value: contact.Email},
			{Name: "Organization", Value: contact.Affiliation},
			{Name: "Role", Value: role},
		}),
	}
}

// this helper maps a sample to a "Biosample" section whose accession number
// is the sample's name; only the first derivation is reflected
func biosampleSection(sample isa.Sample) Section {
	attributes := []Attribute{
		{Name: "Sample Name", Value: sample.Name},
	}
	if len(sample.DerivesFrom) > 0 {
		attributes = append(attributes, Attribute{
			Name:  "Derives From",
			Value: sample.DerivesFrom[0],
		})
	}
	return Section{
		Type:       "Biosample",
		AccNo:      sample.Name,
		Attributes: filterAttributes(attributes),
	}
}

// FromInvestigation maps an ISA-JSON investigation onto a BioStudies
// submission. The mapping assumes one investigation produces one submission,
// centered on the investigation's first study; subsequent studies are
// ignored. An investigation with no studies cannot be transformed and
// produces an isa.ValidationError.
//
// The mapping itself performs no I/O and holds no state, so it is safe to
// call concurrently for independent inputs.
func FromInvestigation(inv isa.Investigation) (Submission, error) {

	// root attributes: title, description, and dates
	rootAttributes := filterAttributes([]Attribute{
		{Name: "Title", Value: inv.Title},
		{Name: "Description", Value: inv.Description},
		{Name: "SubmissionDate", Value: inv.SubmissionDate},
		{Name: "PublicReleaseDate", Value: inv.PublicReleaseDate},
	})

	// investigation-level contacts become Author sections
	authors := make([]Section, 0, len(inv.Contacts))
	for _, contact := range inv.Contacts {
		authors = append(authors, authorSection(contact))
	}

	// BioStudies centers a submission around a single study, so we take the
	// investigation's first one
	if len(inv.Studies) == 0 {
		return Submission{}, isa.ValidationError{
			Message: "an investigation must contain at least one study",
		}
	}
	study := inv.Studies[0]

	studyAttributes := filterAttributes([]Attribute{
		{Name: "Title", Value: study.Title},
		{Name: "Description", Value: study.Description},
		{Name: "Study Identifier", Value: study.Identifier},
	})

	// samples become Biosample subsections of the study section
	subsections := make([]Section, 0)
	if study.Materials != nil {
		for _, sample := range study.Materials.Samples {
			subsections = append(subsections, biosampleSection(sample))
		}
	}

	// data files from all assays are flattened into the study section's file
	// list, with no per-assay grouping
	files := make([]File, 0)
	for _, assay := range study.Assays {
		for _, dataFile := range assay.DataFiles {
			fileAttributes := []Attribute{
				{Name: "Description", Value: dataFile.Label},
			}
			if dataFile.Type != "" {
				fileAttributes = append(fileAttributes, Attribute{
					Name:  "Type",
					Value: dataFile.Type,
				})
			}
			files = append(files, File{
				Path:       dataFile.Filename,
				Type:       "file",
				Attributes: filterAttributes(fileAttributes),
			})
		}
	}

	// the investigation's authors are attached to the study section rather
	// than left at the submission root, which is where BioStudies expects
	// them
	section := Section{
		Type:        "Study",
		AccNo:       study.Identifier,
		Attributes:  studyAttributes,
		Subsections: append(subsections, authors...),
		Files:       files,
	}

	return Submission{
		AccNo:      inv.Identifier,
		Attributes: rootAttributes,
		Section:    section,
	}, nil
}
