package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"cleaning-intake/internal/config"
	"cleaning-intake/internal/notify"
)

// Runs the one-time consent flow for the gmail notification transport and
// stores the token at GMAIL_TOKEN_PATH.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.GmailCredentialsPath == "" || cfg.GmailTokenPath == "" {
		log.Fatal("GMAIL_CREDENTIALS_JSON_PATH and GMAIL_TOKEN_PATH are required")
	}

	oauthConfig, err := notify.GmailOAuthConfig(cfg.GmailCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to load credentials: %v", err)
	}
	if oauthConfig.RedirectURL == "" {
		oauthConfig.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"
	}

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("Gmail authorization for summary notifications\n")
	fmt.Printf("=============================================\n")
	fmt.Printf("1. Open this URL in your browser:\n")
	fmt.Printf("   %s\n\n", authURL)
	fmt.Printf("2. Sign in with the account that sends the notifications (%s)\n", cfg.FromEmail)
	fmt.Printf("3. Copy the authorization code and enter it below\n\n")
	fmt.Printf("Authorization code: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	token, err := oauthConfig.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Failed to exchange code for token: %v", err)
	}

	if err := notify.SaveToken(cfg.GmailTokenPath, token); err != nil {
		log.Fatalf("Failed to save token: %v", err)
	}

	fmt.Printf("\nToken saved to %s\n", cfg.GmailTokenPath)
	if token.RefreshToken == "" {
		fmt.Printf("Warning: no refresh token was issued; the transport stops working when the access token expires (%v)\n", token.Expiry)
	}
	fmt.Printf("Set NOTIFY_TRANSPORT=gmail to use it.\n")
}
