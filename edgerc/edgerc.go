// Package edgerc loads EdgeGrid credentials from a YAML credentials file and
// from the environment, and can watch the file for changes.
//
// A credentials file holds named sections, each a complete credential set:
//
//	default:
//	  host: akab-xxxxxxxx.luna.example-host.net
//	  client_token: akab-client-token
//	  client_secret: client-secret
//	  access_token: akab-access-token
//
//	staging:
//	  host: akab-yyyyyyyy.luna.example-host.net
//	  client_token: akab-staging-token
//	  client_secret: staging-secret
//	  access_token: akab-staging-access
//	  max_body: 65536
//
// Load reads one section; FromEnv resolves the same fields from EDGEGRID_*
// environment variables; Watcher delivers fresh credentials whenever the
// file changes, typically into auth.Signer.SetCredentials.
package edgerc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridauth/edgegrid/auth"
)

// DefaultSection is the section name Load and FromEnv use when given an
// empty name.
const DefaultSection = "default"

// defaultFilename is the credentials file name under the home directory.
const defaultFilename = ".edgerc.yaml"

// ErrSectionNotFound is returned when the requested section is missing from
// the credentials file.
var ErrSectionNotFound = errors.New("edgerc: section not found")

// section is the YAML shape of one credential section.
type section struct {
	Host          string   `yaml:"host"`
	ClientToken   string   `yaml:"client_token"`
	ClientSecret  string   `yaml:"client_secret"`
	AccessToken   string   `yaml:"access_token"`
	MaxBody       int      `yaml:"max_body"`
	HeadersToSign []string `yaml:"headers_to_sign"`
}

// credentials converts the YAML section into validated-ready credentials.
func (s section) credentials() auth.Credentials {
	return auth.Credentials{
		Host:          NormalizeHost(s.Host),
		ClientToken:   strings.TrimSpace(s.ClientToken),
		ClientSecret:  strings.TrimSpace(s.ClientSecret),
		AccessToken:   strings.TrimSpace(s.AccessToken),
		MaxBody:       s.MaxBody,
		HeadersToSign: s.HeadersToSign,
	}
}

// Load reads the named section from the credentials file at path. An empty
// name selects DefaultSection. The credentials are validated before they are
// returned.
func Load(path, name string) (auth.Credentials, error) {
	if name == "" {
		name = DefaultSection
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("edgerc: read credentials file: %w", err)
	}

	sections := make(map[string]section)
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return auth.Credentials{}, fmt.Errorf("edgerc: parse %s: %w", path, err)
	}

	sec, ok := sections[name]
	if !ok {
		return auth.Credentials{}, fmt.Errorf("%w: %q in %s", ErrSectionNotFound, name, path)
	}

	creds := sec.credentials()
	if err := creds.Validate(); err != nil {
		return auth.Credentials{}, fmt.Errorf("edgerc: section %q: %w", name, err)
	}

	return creds, nil
}

// DefaultPath returns the conventional credentials file location under the
// user's home directory. When the home directory cannot be resolved, the
// bare filename is returned so the working directory is searched instead.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultFilename
	}

	return filepath.Join(home, defaultFilename)
}

// NormalizeHost strips the scheme prefix and trailing slash that credential
// files in the wild often carry on the host entry.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")

	return strings.TrimSuffix(host, "/")
}
