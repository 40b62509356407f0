package bioimage

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/archives"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/config"
)

const (
	// the marker carried by accession codes in the BioImage Archive
	// sub-collection of BioStudies
	defaultPrefix = "S-BIAD"
	// where BioStudies serves its static records
	defaultBaseURL = "https://ftp.ebi.ac.uk/biostudies/fire/"
)

// an archive proxy that fetches BioImage Archive records from the BioStudies
// static record frontend (implements the archives.Archive interface)
type Archive struct {
	// the name under which the proxy is registered
	Name string
	// the base URL for record fetches (always ends in a slash)
	BaseURL string
	// the accession code marker for the archive's collection
	Prefix string
	// HTTP client used for record fetches
	Client http.Client
}

// creates a proxy for the BioImage Archive, configured under the given name
func NewArchive(name string) (archives.Archive, error) {
	baseURL := config.Archives[name].URL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	prefix := config.Archives[name].Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &Archive{
		Name:    name,
		BaseURL: baseURL,
		Prefix:  prefix,
		Client:  archives.SecureHttpClient(30 * time.Second),
	}, nil
}

func (archive *Archive) Recognizes(code string) bool {
	return strings.Contains(code, archive.Prefix)
}

// constructs the URL at which the record with the given accession code
// resides: <base><prefix>/<number>/<code>/<code>.json, where the number is
// the code with the literal marker removed (NOT a character-class strip,
// which mangles codes whose numeric part begins or ends with marker
// characters)
func (archive *Archive) recordURL(code string) string {
	number := strings.Replace(code, archive.Prefix, "", 1)
	return fmt.Sprintf("%s%s/%s/%s/%s.json", archive.BaseURL, archive.Prefix,
		number, code, code)
}

// fetches the record with the given accession code, relaying its JSON body
// verbatim; codes without the collection marker are rejected without any
// fetch being attempted
func (archive *Archive) Record(code string) (json.RawMessage, error) {
	if !archive.Recognizes(code) {
		return nil, &archives.InvalidCodeError{
			Archive: archive.Name,
			Code:    code,
		}
	}

	request, err := http.NewRequest(http.MethodGet, archive.recordURL(code), http.NoBody)
	if err != nil {
		return nil, &archives.InternalError{
			Archive: archive.Name,
			Message: err.Error(),
		}
	}
	request.Header.Set("Accept", "application/json")

	response, err := archive.Client.Do(request)
	if err != nil {
		return nil, &archives.InternalError{
			Archive: archive.Name,
			Message: err.Error(),
		}
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case 200, 201, 204:
		body, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, &archives.InternalError{
				Archive: archive.Name,
				Message: err.Error(),
			}
		}
		var record json.RawMessage
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, &archives.InternalError{
				Archive: archive.Name,
				Message: err.Error(),
			}
		}
		return record, nil
	default:
		// pass the archive's status and description through unchanged
		body, _ := io.ReadAll(response.Body)
		return nil, &archives.UpstreamError{
			Archive:    archive.Name,
			StatusCode: response.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
}
