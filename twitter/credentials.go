package twitter

import (
	"fmt"
	"os"
)

// Credentials holds the OAuth1 user context secrets.
type Credentials struct {
	APIKey            string
	APIKeySecret      string
	AccessToken       string
	AccessTokenSecret string
}

// FromEnvironment reads credentials from API_KEY, API_KEY_SECRET,
// ACCESS_TOKEN and ACCESS_TOKEN_SECRET.
func FromEnvironment() (Credentials, error) {
	c := Credentials{
		APIKey:            os.Getenv("API_KEY"),
		APIKeySecret:      os.Getenv("API_KEY_SECRET"),
		AccessToken:       os.Getenv("ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
	}
	for name, v := range map[string]string{
		"API_KEY":             c.APIKey,
		"API_KEY_SECRET":      c.APIKeySecret,
		"ACCESS_TOKEN":        c.AccessToken,
		"ACCESS_TOKEN_SECRET": c.AccessTokenSecret,
	} {
		if v == "" {
			return Credentials{}, fmt.Errorf("missing environment variable %s", name)
		}
	}
	return c, nil
}
