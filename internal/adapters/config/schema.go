package config

// File represents the structure of the depot.yaml configuration file.
// Every field is optional; unset fields fall back to the defaults.
type File struct {
	PoolRoot        string `yaml:"poolRoot"`
	StagingRoot     string `yaml:"stagingRoot"`
	ProxyRoot       string `yaml:"proxyRoot"`
	Quarantine      string `yaml:"quarantine"`
	Rustup          string `yaml:"rustup"`
	ManifestBaseURL string `yaml:"manifestBaseUrl"`
}
