package client

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	configDirName = "gobernanza-comments"
	tokenFileName = "owner_token"
	emailFileName = "last_email"
)

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName), nil
}

// loadOrCreateOwnerToken reads the persisted owner token, generating and
// persisting a fresh random one on first use. The token is what lets this
// machine delete its own comments later.
func loadOrCreateOwnerToken(dir string) (string, error) {
	path := filepath.Join(dir, tokenFileName)

	if data, err := os.ReadFile(path); err == nil {
		token := strings.TrimSpace(string(data))
		if token != "" {
			return token, nil
		}
	}

	token := uuid.NewString()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return "", err
	}
	return token, nil
}

// loadLastEmail returns the email last used to post, or "" when none is
// recorded. Best effort; a missing file is not an error.
func loadLastEmail(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, emailFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveLastEmail(dir string, email string) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(dir, emailFileName), []byte(email), 0600)
}
