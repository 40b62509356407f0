package biostudies

// This package defines the target aggregate for the conversion service: a
// BioStudies submission document (https://www.ebi.ac.uk/biostudies/), using
// the field names of the BioStudies JSON serialization.

// a name/value annotation attached to submissions, sections, and files;
// attributes with blank values are never emitted
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// a file referenced by a section
type File struct {
	Path       string      `json:"path"`
	Size       int64       `json:"size,omitempty"`
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// a section of a submission document; sections nest arbitrarily (this is the
// only recursive structure in the model)
type Section struct {
	Type        string      `json:"type"`
	AccNo       string      `json:"accNo,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
	Subsections []Section   `json:"subsections,omitempty"`
	Files       []File      `json:"files,omitempty"`
}

// a complete BioStudies submission: an accession number, root-level
// attributes, and a single root section
type Submission struct {
	AccNo      string      `json:"accNo"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Section    Section     `json:"section"`
}
