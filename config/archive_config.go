package config

// An archive serves dataset records keyed by accession codes.
type archiveConfig struct {
	// the full name of the archive
	Name string `yaml:"name"`
	// the name of the organization hosting the archive
	Organization string `yaml:"organization"`
	// the base URL at which the archive's records are fetched
	URL string `yaml:"url"`
	// the marker identifying accession codes belonging to the archive's
	// collection (e.g. "S-BIAD" for the BioImage Archive)
	Prefix string `yaml:"prefix"`
	// the name of the proxy implementation used to reach this archive
	Provider string `yaml:"provider"`
}
