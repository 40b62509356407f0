package archives

import (
	"encoding/json"
)

// Archive defines the interface for a proxy that fetches dataset records
// from an external repository, keyed by accession codes.
type Archive interface {
	// returns true if the given accession code carries the archive's
	// collection marker, false if not
	Recognizes(code string) bool
	// fetches the record with the given accession code, returning its parsed
	// JSON body verbatim
	Record(code string) (json.RawMessage, error)
}

// this type represents a function that can create an archive proxy with a
// given name
type createArchiveFunc func(name string) (Archive, error)

// a table of functions for creating archive proxies, identified by their
// archive names
var createArchiveFuncs = make(map[string]createArchiveFunc)

// we maintain a table of archive proxy instances so each archive is only
// created once
var allArchives = make(map[string]Archive)

// Registers a function that can create an archive proxy with the given name.
// This allows test fixtures to stand in for real archives.
func RegisterArchive(archiveName string, createArchive createArchiveFunc) error {
	if _, found := createArchiveFuncs[archiveName]; found {
		return &AlreadyRegisteredError{Archive: archiveName}
	}
	createArchiveFuncs[archiveName] = createArchive
	return nil
}

// Creates the archive proxy with the given name using its registered create
// function, or returns an existing instance.
func NewArchive(archiveName string) (Archive, error) {
	archive, found := allArchives[archiveName]
	if !found {
		createArchive, ok := createArchiveFuncs[archiveName]
		if !ok {
			return nil, &NotFoundError{Archive: archiveName}
		}
		var err error
		archive, err = createArchive(archiveName)
		if err != nil {
			return nil, err
		}
		allArchives[archiveName] = archive // stash it
	}
	return archive, nil
}
