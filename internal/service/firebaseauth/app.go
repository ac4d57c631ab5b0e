package firebaseauth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
}

// Configured reports whether any credential source is set.
func (c Config) Configured() bool {
	return c.CredentialsFile != "" || (c.ClientEmail != "" && c.PrivateKey != "")
}

// NewApp initializes the Firebase Admin SDK. A credentials file wins over an
// inline service account. It returns nil without error when no credentials
// are configured.
func NewApp(ctx context.Context, cfg Config) (*firebase.App, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	opt, err := credentialsOption(cfg)
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	return app, nil
}

func credentialsOption(cfg Config) (option.ClientOption, error) {
	if cfg.CredentialsFile != "" {
		return option.WithCredentialsFile(cfg.CredentialsFile), nil
	}
	b, err := serviceAccountJSON(cfg)
	if err != nil {
		return nil, err
	}
	return option.WithCredentialsJSON(b), nil
}

// serviceAccountJSON builds a service account key from env-style settings.
// Escaped newlines in the private key are restored.
func serviceAccountJSON(cfg Config) ([]byte, error) {
	b, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return b, nil
}
