package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dghubble/oauth1"
)

const (
	defaultUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	defaultAPIURL    = "https://api.twitter.com/2"
)

// Client posts tweets with OAuth1 user context.
type Client struct {
	httpClient *http.Client

	// Endpoint bases, overridable in tests.
	UploadURL string
	APIURL    string
}

// NewClient creates a Client signing requests with the given credentials.
func NewClient(creds Credentials) *Client {
	cfg := oauth1.NewConfig(creds.APIKey, creds.APIKeySecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	return &Client{
		httpClient: cfg.Client(oauth1.NoContext, token),
		UploadURL:  defaultUploadURL,
		APIURL:     defaultAPIURL,
	}
}

// SendTweet posts the text, with the image attached when imagePath is not
// empty, and returns the created tweet id.
func (c *Client) SendTweet(ctx context.Context, text, imagePath string) (string, error) {
	var mediaIDs []string
	if imagePath != "" {
		id, err := c.uploadMedia(ctx, imagePath)
		if err != nil {
			return "", fmt.Errorf("uploading media: %w", err)
		}
		mediaIDs = append(mediaIDs, id)
	}
	return c.createTweet(ctx, text, mediaIDs)
}

// Username returns the authenticated account's handle.
func (c *Client) Username(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+"/users/me", nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if parsed.Data.Username == "" {
		return "", fmt.Errorf("no username in response")
	}
	return parsed.Data.Username, nil
}

func (c *Client) uploadMedia(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("media", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("building form: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	var parsed struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if parsed.MediaIDString == "" {
		return "", fmt.Errorf("no media id in response")
	}
	return parsed.MediaIDString, nil
}

func (c *Client) createTweet(ctx context.Context, text string, mediaIDs []string) (string, error) {
	payload := map[string]any{"text": text}
	if len(mediaIDs) > 0 {
		payload["media"] = map[string]any{"media_ids": mediaIDs}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/tweets", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("creating tweet: %w", err)
	}
	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	return parsed.Data.ID, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, req.URL, body)
	}
	return body, nil
}
