package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/archives"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/archives/bioimage"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/biostudies"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/config"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/isa"
	"github.com/Cesarec88/MARS-ISA-JSON-Bioimage/journal"
)

// Version numbers
var majorVersion = 0
var minorVersion = 1
var patchVersion = 0

// Version string
var version = fmt.Sprintf("%d.%d.%d", majorVersion, minorVersion, patchVersion)

// This type implements the RepositoryService interface, proxying accession
// lookups to the BioImage Archive and converting ISA-JSON investigations to
// BioStudies submissions.
type prototype struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// time which the service was started
	StartTime time.Time
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server.
	Server *http.Server
}

// maps an archive error to a huma status error; error kinds are translated
// to transport status codes here and nowhere else
func mapArchiveError(err error) error {
	switch e := err.(type) {
	case *archives.InvalidCodeError:
		return huma.Error400BadRequest(e.Error())
	case *archives.UpstreamError:
		// pass the upstream status and description through unchanged
		return huma.NewError(e.StatusCode, e.Message)
	case *archives.NotFoundError:
		return huma.Error404NotFound(e.Error())
	default:
		return huma.Error500InternalServerError(
			fmt.Sprintf("Internal Server Error: %s", err.Error()))
	}
}

// records request activity in the journal (if it's open); journal failures
// are logged, never surfaced to the client
func recordRequest(record journal.Record) {
	if journal.IsOpen() {
		if err := journal.RecordRequest(record); err != nil {
			slog.Error(fmt.Sprintf("Couldn't record request %s: %s",
				record.Id.String(), err.Error()))
		}
	}
}

// returns the names of the configured archives in sorted order
func archiveNames() []string {
	names := make([]string, 0, len(config.Archives))
	for name := range config.Archives {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for root
func (service *prototype) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(service.uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type ArchivesOutput struct {
	Body []ArchiveResponse `doc:"A list of information about available archives"`
}

// handler method for querying all configured archives
func (service *prototype) getArchives(ctx context.Context,
	input *struct{}) (*ArchivesOutput, error) {

	slog.Info("Querying configured archives...")
	output := &ArchivesOutput{
		Body: make([]ArchiveResponse, 0),
	}
	for _, name := range archiveNames() {
		archive := config.Archives[name]
		output.Body = append(output.Body, ArchiveResponse{
			Id:           name,
			Name:         archive.Name,
			Organization: archive.Organization,
			URL:          archive.URL,
		})
	}
	return output, nil
}

type RecordOutput struct {
	Body json.RawMessage `doc:"The fetched dataset record, relayed verbatim from the archive"`
}

// handler method for looking up a dataset record by its accession code
func (service *prototype) getAccession(ctx context.Context,
	input *struct {
		Code string `path:"code" example:"S-BIAD843" doc:"the accession code of the desired record"`
	}) (*RecordOutput, error) {

	requestId := uuid.New()
	startTime := time.Now()
	slog.Info(fmt.Sprintf("Looking up accession %s (request %s)...",
		input.Code, requestId.String()))

	// hand the code to the first archive that recognizes its marker
	record, archiveName, err := service.lookupRecord(input.Code)

	status, code := "succeeded", http.StatusOK
	if err != nil {
		err = mapArchiveError(err)
		status = "failed"
		if statusErr, ok := err.(huma.StatusError); ok {
			code = statusErr.GetStatus()
		}
	}
	recordRequest(journal.Record{
		Id:        requestId,
		Operation: "lookup",
		Archive:   archiveName,
		Accession: input.Code,
		StartTime: startTime,
		StopTime:  time.Now(),
		Status:    status,
		Code:      code,
	})
	if err != nil {
		return nil, err
	}
	return &RecordOutput{Body: record}, nil
}

// this helper fetches the record with the given accession code from the
// first configured archive that recognizes the code's collection marker,
// returning the record and the name of the archive consulted
func (service *prototype) lookupRecord(code string) (json.RawMessage, string, error) {
	for _, name := range archiveNames() {
		archive, err := archives.NewArchive(name)
		if err != nil {
			return nil, name, err
		}
		if archive.Recognizes(code) {
			record, err := archive.Record(code)
			return record, name, err
		}
	}
	return nil, "", &archives.InvalidCodeError{Code: code}
}

type ConversionOutput struct {
	Body ConversionResponse `doc:"The BioStudies submission produced from the given ISA-JSON investigation"`
}

// handler method for converting an ISA-JSON investigation to a BioStudies
// submission
func (service *prototype) convertInvestigation(ctx context.Context,
	input *struct {
		Body        isa.Investigation `doc:"The ISA-JSON investigation to convert" contentType:"application/json"`
		ContentType string            `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*ConversionOutput, error) {

	requestId := uuid.New()
	startTime := time.Now()
	slog.Info(fmt.Sprintf("Converting investigation %s (request %s)...",
		input.Body.Identifier, requestId.String()))

	var submission biostudies.Submission
	err := input.Body.Validate() // surface shape problems before transforming
	if err == nil {
		submission, err = biostudies.FromInvestigation(input.Body)
	}

	status, code := "succeeded", http.StatusOK
	if err != nil {
		err = huma.Error400BadRequest(err.Error())
		status, code = "failed", http.StatusBadRequest
	}
	recordRequest(journal.Record{
		Id:        requestId,
		Operation: "conversion",
		Accession: input.Body.Identifier,
		StartTime: startTime,
		StopTime:  time.Now(),
		Status:    status,
		Code:      code,
	})
	if err != nil {
		return nil, err
	}
	return &ConversionOutput{Body: submission}, nil
}

// returns the uptime for the service in seconds
func (service *prototype) uptime() float64 {
	return time.Since(service.StartTime).Seconds()
}

// constructs a prototype repository service given our configuration
func NewMARSPrototype() (RepositoryService, error) {

	// validate our configuration
	if len(config.Archives) == 0 {
		return nil, fmt.Errorf("No archives were specified.")
	}

	// register proxies for the configured archives
	for name, archive := range config.Archives {
		switch archive.Provider {
		case "bioimage":
			err := archives.RegisterArchive(name, bioimage.NewArchive)
			if err != nil {
				// a service can be constructed more than once per process
				if _, registered := err.(*archives.AlreadyRegisteredError); !registered {
					return nil, err
				}
			}
		case "fixture":
			// fixtures register themselves (see the marstest package)
		default:
			return nil, fmt.Errorf("Unknown provider for archive '%s': %s",
				name, archive.Provider)
		}
	}

	service := new(prototype)
	service.Name = "MARS prototype"
	service.Version = version
	service.Port = -1

	// set up routing
	service.Router = mux.NewRouter()
	api := humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	huma.Get(api, "/", service.getRoot)

	// API v1
	huma.Get(api, "/api/v1/archives", service.getArchives)
	huma.Get(api, "/api/v1/accession/{code}", service.getAccession)
	huma.Post(api, "/api/v1/isa-json", service.convertInvestigation)

	AddDocEndpoints(service.Router)

	return service, nil
}

// starts the prototype repository service
func (service *prototype) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s service on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	service.StartTime = time.Now()

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// start the request journal
	err = journal.Init()
	if err != nil {
		return err
	}

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *prototype) Shutdown(ctx context.Context) error {
	journal.Finalize()
	if service.Server != nil {
		return service.Server.Shutdown(ctx)
	}
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *prototype) Close() {
	journal.Finalize()
	if service.Server != nil {
		service.Server.Close()
	}
}
