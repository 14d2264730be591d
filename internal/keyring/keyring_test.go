package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/studylit/internal/constants"
)

const testConnStr = "postgres://student@localhost:5432/studylit?sslmode=disable"

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringRejects(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		name    string
		connStr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"sqlite path", "/home/me/.config/studylit/studylit.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SetConnectionString(tt.connStr); err == nil {
				t.Errorf("SetConnectionString(%q) should return an error", tt.connStr)
			}
		})
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("After DeleteConnectionString(), GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}

func TestResolve(t *testing.T) {
	const sqlitePath = "/tmp/studylit.db"
	const envConn = "postgres://env@db:5432/studylit"

	tests := []struct {
		name      string
		config    string
		isDefault bool
		env       string
		keyring   string
		want      string
		wantSrc   Source
	}{
		{"default sqlite", sqlitePath, true, "", "", sqlitePath, SourceFlag},
		{"flag postgres wins over env", testConnStr, false, envConn, "", testConnStr, SourceFlag},
		{"explicit sqlite wins over env", sqlitePath, false, envConn, "", sqlitePath, SourceFlag},
		{"env over keyring", sqlitePath, true, envConn, testConnStr, envConn, SourceEnv},
		{"keyring fallback", sqlitePath, true, "", testConnStr, testConnStr, SourceKeyring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			_ = DeleteConnectionString()
			if tt.keyring != "" {
				if err := SetConnectionString(tt.keyring); err != nil {
					t.Fatalf("SetConnectionString() failed: %v", err)
				}
			}
			t.Setenv(constants.ConnectionEnvVar, tt.env)

			got, src := Resolve(tt.config, tt.isDefault)
			if got != tt.want || src != tt.wantSrc {
				t.Errorf("Resolve() = (%q, %q), want (%q, %q)", got, src, tt.want, tt.wantSrc)
			}
		})
	}
}
