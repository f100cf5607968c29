package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Firestore collection names shared by the repositories.
const (
	QuotesCollection = "quotes"
	UsersCollection  = "users"
)

// ServiceAccount holds the service account key fields the backend checks.
type ServiceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// FirebaseCredentials resolves the service account source: the key file when it
// exists, otherwise the inline JSON from FIREBASE_SERVICE_ACCOUNT_KEY.
// ok is false when neither is available and the app should run in mock mode.
func FirebaseCredentials() (file string, inline []byte, ok bool) {
	if path := AppConfig.FirebaseCredentialsFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil, true
		}
	}
	if AppConfig.FirebaseServiceAccount != "" {
		return "", []byte(AppConfig.FirebaseServiceAccount), true
	}
	return "", nil, false
}

// ParseServiceAccount decodes an inline service account key and checks that it
// names a project and a signing identity.
func ParseServiceAccount(raw []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("invalid service account JSON: %w", err)
	}
	if sa.ProjectID == "" || sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, errors.New("service account key is missing project_id, client_email or private_key")
	}
	return &sa, nil
}
