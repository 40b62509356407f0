package services

import (
	"context"

	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/biostudies"
)

// this type encodes a JSON object for responding to root queries
type ServiceInfoResponse struct {
	Name          string `json:"name" example:"MARS" doc:"The name of the service API"`
	Version       string `json:"version" example:"1.0.0" doc:"The version string (major.minor.patch)"`
	Uptime        int    `json:"uptime" example:"345600" doc:"The time the service has been up (seconds)"`
	Documentation string `json:"documentation" example:"/docs" doc:"The OpenAPI documentation endpoint"`
}

// a response for an archive-related query (GET)
type ArchiveResponse struct {
	Id           string `json:"id" example:"bioimage"`
	Name         string `json:"name" example:"BioImage Archive"`
	Organization string `json:"organization" example:"EMBL-EBI"`
	URL          string `json:"url" example:"https://ftp.ebi.ac.uk/biostudies/fire/"`
}

// a response for a document conversion request (POST): the converted
// BioStudies submission itself
type ConversionResponse = biostudies.Submission

// RepositoryService defines the interface for our repository proxy and
// conversion service.
type RepositoryService interface {
	// Starts the service on the selected port, returning an error that indicates
	// success or failure.
	Start(port int) error
	// Gracefully shuts down the service without interrupting active connections.
	Shutdown(ctx context.Context) error
	// Closes down the service, freeing all resources.
	Close()
}
