package drive

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/prplkane/umazona-website/env"
)

const scopeDriveReadonly = "https://www.googleapis.com/auth/drive.readonly"

// ErrNoCredentials means no Drive credentials are configured at all.
// Callers treat this as "photo features disabled", not a startup failure.
var ErrNoCredentials = errors.New(
	"no Google credentials found: set " + env.EnvGoogleDriveCredentials +
		" (service account) or " + env.EnvGoogleClientID + ", " +
		env.EnvGoogleClientSecret + " and " + env.EnvGoogleRefreshToken + " (OAuth2)")

// Credentials is a resolved Drive credential set.
type Credentials struct {
	// Mode is "service_account" or "oauth2_refresh_token".
	Mode string

	Source oauth2.TokenSource
}

// ResolveCredentials reads Drive credentials from the environment.
// Two modes are supported, tried in order:
//
//  1. Service account: GOOGLE_DRIVE_CREDENTIALS holds the service account
//     JSON, a base64 encoding of it, or a path to a file containing it.
//  2. OAuth2 refresh token: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and
//     GOOGLE_REFRESH_TOKEN.
//
// Credentials that are present but unparseable are a hard error.
func ResolveCredentials(ctx context.Context) (*Credentials, error) {
	if raw := os.Getenv(env.EnvGoogleDriveCredentials); raw != "" {
		data, err := decodeCredentialMaterial(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", env.EnvGoogleDriveCredentials, err)
		}

		cfg, err := google.JWTConfigFromJSON(data, scopeDriveReadonly)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", env.EnvGoogleDriveCredentials, err)
		}

		return &Credentials{
			Mode:   "service_account",
			Source: cfg.TokenSource(ctx),
		}, nil
	}

	clientID := os.Getenv(env.EnvGoogleClientID)
	clientSecret := os.Getenv(env.EnvGoogleClientSecret)
	refreshToken := os.Getenv(env.EnvGoogleRefreshToken)

	if clientID != "" && clientSecret != "" && refreshToken != "" {
		cfg := &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{scopeDriveReadonly},
			Endpoint:     google.Endpoint,
		}

		return &Credentials{
			Mode:   "oauth2_refresh_token",
			Source: cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}),
		}, nil
	}

	return nil, ErrNoCredentials
}

// decodeCredentialMaterial accepts raw JSON, base64-encoded JSON, or a
// path to a JSON file.
func decodeCredentialMaterial(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}

	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		if strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
			return decoded, nil
		}
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("credentials are not JSON, base64 JSON, or a readable file: %w", err)
	}
	return data, nil
}
