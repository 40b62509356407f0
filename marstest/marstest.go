// This package contains testing utilities for the MARS repository service.
package marstest

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/archives"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/isa"
)

// Enables DEBUG log messages for the service's structured log (slog).
func EnableDebugLogging() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
}

//------------------------
// Archive Test Fixtures
//------------------------

// This type implements an archives.Archive test fixture that serves canned
// records without any network access.
type Archive struct {
	// the accession code marker recognized by the fixture
	Prefix string
	// canned records, keyed by accession code
	Records map[string]json.RawMessage
}

// Registers an archive test fixture with the given name in the
// configuration, assigning it the given accession code marker and canned
// records.
func RegisterArchive(archiveName, prefix string, records map[string]json.RawMessage) error {
	newArchiveFunc := func(name string) (archives.Archive, error) {
		return &Archive{
			Prefix:  prefix,
			Records: records,
		}, nil
	}
	return archives.RegisterArchive(archiveName, newArchiveFunc)
}

func (archive *Archive) Recognizes(code string) bool {
	return strings.Contains(code, archive.Prefix)
}

func (archive *Archive) Record(code string) (json.RawMessage, error) {
	if !archive.Recognizes(code) {
		return nil, &archives.InvalidCodeError{Code: code}
	}
	if record, found := archive.Records[code]; found {
		return record, nil
	}
	return nil, &archives.UpstreamError{
		StatusCode: 404,
		Message:    "Not Found",
	}
}

//-------------------------------
// Example Investigation Fixture
//-------------------------------

// Returns a small, well-formed ISA-JSON investigation suitable for tests and
// documentation examples. The service itself never falls back to this
// document; a conversion request must carry its own investigation.
func ExampleInvestigation() isa.Investigation {
	return isa.Investigation{
		Identifier:     "INV-101",
		Title:          "Investigation Title",
		Description:    "Investigation Description",
		SubmissionDate: "2023-01-01",
		Contacts: []isa.Person{
			{
				FirstName:   "John",
				LastName:    "Doe",
				Affiliation: "Lab A",
				Email:       "john@example.com",
			},
		},
		Studies: []isa.Study{
			{
				Identifier: "STU-101",
				Title:      "Study Title",
				Filename:   "s_study.txt",
				Materials: &isa.Materials{
					Samples: []isa.Sample{
						{
							Name:        "Sample-1",
							DerivesFrom: []string{"Source-1"},
						},
					},
				},
				Assays: []isa.Assay{
					{
						Filename: "a_assay.txt",
						DataFiles: []isa.DataFile{
							{
								Filename: "raw_data.fastq",
								Label:    "Raw Reads",
								Type:     "fastq",
							},
						},
					},
				},
			},
		},
	}
}
