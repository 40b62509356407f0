package config

// These tests verify that we can properly configure the repository service
// with YAML input.
import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a valid service config entry
const VALID_SERVICE string = `
service:
  port: 8080
  max_connections: 100
`

// a valid archives config entry
const VALID_ARCHIVES string = `
archives:
  bioimage:
    name: BioImage Archive
    organization: EMBL-EBI
    url: https://ftp.ebi.ac.uk/biostudies/fire/
    prefix: S-BIAD
    provider: bioimage
`

// tests whether config.Init reports an error for blank input
func TestInitRejectsBlankInput(t *testing.T) {
	b := []byte("")
	err := Init(b)
	assert.NotNil(t, err, "Blank config didn't trigger an error.")
}

// tests whether config.Init reports an error for an invalid port
func TestInitRejectsBadPort(t *testing.T) {
	yaml := "service:\n  port: -1\n\n" + VALID_ARCHIVES
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad port didn't trigger an error.")
	yaml = "service:\n  port: 1000000\n\n" + VALID_ARCHIVES
	b = []byte(yaml)
	err = Init(b)
	assert.NotNil(t, err, "Config with bad port didn't trigger an error.")
}

// tests whether config.Init reports an error for an invalid max number of
// connections
func TestInitRejectsBadMaxConnections(t *testing.T) {
	yaml := "service:\n  port: 8080\n  max_connections: 0\n\n" + VALID_ARCHIVES
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad max_connections didn't trigger an error.")
}

// tests whether config.Init reports an error when no archives are given
func TestInitRejectsMissingArchives(t *testing.T) {
	b := []byte(VALID_SERVICE)
	err := Init(b)
	assert.NotNil(t, err, "Config without archives didn't trigger an error.")
}

// tests whether config.Init reports an error for an archive with no provider
func TestInitRejectsArchiveWithoutProvider(t *testing.T) {
	yaml := VALID_SERVICE + `
archives:
  bioimage:
    name: BioImage Archive
    url: https://ftp.ebi.ac.uk/biostudies/fire/
`
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Archive without a provider didn't trigger an error.")
}

// tests whether config.Init accepts a valid configuration and places its
// data into the package's global variables
func TestValidInit(t *testing.T) {
	assert := assert.New(t)
	b := []byte(VALID_SERVICE + VALID_ARCHIVES)
	err := Init(b)
	assert.Nil(err, "Valid config triggered an error.")
	assert.Equal(8080, Service.Port)
	assert.Equal(100, Service.MaxConnections)
	archive, found := Archives["bioimage"]
	assert.True(found, "BioImage archive not found in config")
	assert.Equal("BioImage Archive", archive.Name)
	assert.Equal("EMBL-EBI", archive.Organization)
	assert.Equal("https://ftp.ebi.ac.uk/biostudies/fire/", archive.URL)
	assert.Equal("S-BIAD", archive.Prefix)
	assert.Equal("bioimage", archive.Provider)
}

// tests whether environment variables are expanded in config data
func TestEnvironmentVariableExpansion(t *testing.T) {
	assert := assert.New(t)
	os.Setenv("MARS_TEST_ARCHIVE_URL", "https://ftp.ebi.ac.uk/biostudies/fire/")
	defer os.Unsetenv("MARS_TEST_ARCHIVE_URL")
	yaml := VALID_SERVICE + `
archives:
  bioimage:
    name: BioImage Archive
    url: ${MARS_TEST_ARCHIVE_URL}
    prefix: S-BIAD
    provider: bioimage
`
	err := Init([]byte(yaml))
	assert.Nil(err, "Valid config triggered an error.")
	assert.Equal("https://ftp.ebi.ac.uk/biostudies/fire/",
		Archives["bioimage"].URL)
}
