package system

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/julianstephens/studylit/internal/errors"
	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/postgres"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

// OpenStore picks the backend for location: a postgres URL, a .json
// document, or otherwise a sqlite database file. Nothing is opened yet.
func OpenStore(location string) (storage.Provider, error) {
	if keyring.IsPostgres(location) || strings.Contains(location, "host=") {
		if _, err := postgres.ValidateConnString(location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(err,
					"store the full connection string with 'studylit keyring set', export STUDYLIT_DB_CONNECTION, or keep the password in ~/.pgpass")
			}
			return nil, err
		}
		return postgres.New(location), nil
	}

	path := ExpandPath(location)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// OpenResolved opens a location returned by keyring.Resolve. Connection
// strings read from the environment or the keyring may carry a password.
func OpenResolved(location string, src keyring.Source) (storage.Provider, error) {
	if src != keyring.SourceFlag && keyring.IsPostgres(location) {
		return postgres.New(location), nil
	}
	return OpenStore(location)
}
