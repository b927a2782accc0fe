package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailTransport sends through the Gmail API on behalf of the authorised
// account. The OAuth token must have been obtained beforehand; the server
// never runs an interactive consent flow.
type GmailTransport struct {
	send func(ctx context.Context, raw string) error
}

func NewGmailTransport(ctx context.Context, credentialsPath, tokenPath string) (*GmailTransport, error) {
	config, err := GmailOAuthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	token, err := loadTokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("load gmail token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &GmailTransport{
		send: func(ctx context.Context, raw string) error {
			_, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
			return err
		},
	}, nil
}

func (t *GmailTransport) Send(ctx context.Context, from string, n Notification) error {
	raw, err := encodeRaw(from, n)
	if err != nil {
		return err
	}
	if err := t.send(ctx, raw); err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

// encodeRaw renders the RFC 5322 message and encodes it the way the Gmail
// API expects in Message.Raw.
func encodeRaw(from string, n Notification) (string, error) {
	msg, err := buildMessage(from, n)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("render message: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

func loadTokenFromFile(filename string) (*oauth2.Token, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(file).Decode(token)
	return token, err
}

// GmailOAuthConfig reads an installed-app credentials file and returns the
// OAuth config for the send-only scope.
func GmailOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read gmail credentials: %w", err)
	}
	config, err := google.ConfigFromJSON(credentials, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	return config, nil
}

// SaveToken writes token where NewGmailTransport expects it.
func SaveToken(filename string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return err
	}
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(token)
}
