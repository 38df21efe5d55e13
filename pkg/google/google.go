// Package google provides shared client bootstrapping and error mapping
// for Google Workspace API services.
package google

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// CredentialOptions builds client options from a credentials value that is
// either inline service-account JSON or a path to a credentials file.
func CredentialOptions(credentials string, scopes ...string) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(scopes...)}

	if strings.HasPrefix(strings.TrimSpace(credentials), "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
	} else {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	return opts
}

// ErrNotFound indicates the requested Google resource does not exist.
var ErrNotFound = errors.New("google: resource not found")

// MapError converts a googleapi error into a domain sentinel where one
// applies. Other errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return ErrNotFound
	}

	return err
}
