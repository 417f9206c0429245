package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// Authenticator acquires an authorized Google Calendar session before the
// pipeline starts. Client credentials are read from a JSON file; the OAuth2
// token is persisted on disk so the interactive consent step happens once.
type Authenticator struct {
	credentialsFile string
	tokenFile       string
}

func NewAuthenticator(credentialsFile, tokenFile string) *Authenticator {
	return &Authenticator{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
	}
}

// Client returns an HTTP client carrying the authorized session. When no
// persisted token exists, the user is prompted to complete the consent flow
// on stdin; abandoning the prompt fails the acquisition.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	data, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client credentials: %w", err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client credentials: %w", err)
	}

	token, err := a.tokenFromFile()
	if err != nil {
		token, err = a.tokenFromPrompt(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := a.saveToken(token); err != nil {
			slog.Warn("Failed to persist OAuth token", "path", a.tokenFile, "error", err)
		}
	}

	return config.Client(ctx, token), nil
}

func (a *Authenticator) tokenFromFile() (*oauth2.Token, error) {
	f, err := os.Open(a.tokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}

	return token, nil
}

func (a *Authenticator) tokenFromPrompt(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Authorize this app by visiting this url:\n%s\n", authURL)
	fmt.Print("Enter the authorization code: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return token, nil
}

func (a *Authenticator) saveToken(token *oauth2.Token) error {
	f, err := os.OpenFile(a.tokenFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return nil
}
