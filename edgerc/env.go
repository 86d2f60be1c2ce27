package edgerc

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gridauth/edgegrid/auth"
)

// envPrefix is the prefix of all credential environment variables.
const envPrefix = "EDGEGRID_"

// FromEnv resolves credentials from the environment. The default section
// reads EDGEGRID_HOST, EDGEGRID_CLIENT_TOKEN, EDGEGRID_CLIENT_SECRET,
// EDGEGRID_ACCESS_TOKEN, and optionally EDGEGRID_MAX_BODY. Any other section
// name is uppercased into the prefix: section "staging" reads
// EDGEGRID_STAGING_HOST and so on.
//
// The credentials are validated before they are returned, so partially set
// environments fail with an auth.ErrInvalidCredentials error.
func FromEnv(name string) (auth.Credentials, error) {
	prefix := envPrefix
	if name != "" && name != DefaultSection {
		prefix += strings.ToUpper(name) + "_"
	}

	creds := auth.Credentials{
		Host:         NormalizeHost(os.Getenv(prefix + "HOST")),
		ClientToken:  os.Getenv(prefix + "CLIENT_TOKEN"),
		ClientSecret: os.Getenv(prefix + "CLIENT_SECRET"),
		AccessToken:  os.Getenv(prefix + "ACCESS_TOKEN"),
	}

	if v := os.Getenv(prefix + "MAX_BODY"); v != "" {
		maxBody, err := strconv.Atoi(v)
		if err != nil {
			return auth.Credentials{}, fmt.Errorf("edgerc: parse %sMAX_BODY: %w", prefix, err)
		}

		creds.MaxBody = maxBody
	}

	if err := creds.Validate(); err != nil {
		return auth.Credentials{}, fmt.Errorf("edgerc: environment %s*: %w", prefix, err)
	}

	return creds, nil
}
