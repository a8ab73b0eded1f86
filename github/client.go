// Package github is a minimal client for the GitHub REST API v3, covering
// repository creation, the Pages feature and template retrieval.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ghusk/ghusk/version"
)

// DefaultAPIURL is the public endpoint. GitHub Enterprise installs use
// "https://<hostname>/api/v3" instead.
const DefaultAPIURL = "https://api.github.com"

const (
	acceptV3 = "application/vnd.github.v3+json"

	acceptRaw = "application/vnd.github.v3.raw"

	// The Pages endpoints are still preview APIs and need custom media types.
	acceptPagesPreview = "application/vnd.github.switcheroo-preview+json"

	acceptBuildsPreview = "application/vnd.github.mister-fantastic-preview+json"
)

type (
	Client struct {
		httpClient    *http.Client
		logger        *zap.Logger
		baseURL       string
		username      string
		userAgent     string
		authorization string
	}

	// APIError carries the status line and the server's own message.
	APIError struct {
		Action     string
		Status     string
		Message    string
		StatusCode int
	}

	License struct {
		SPDXID string `json:"spdx_id"`
		URL    string `json:"url"`
	}

	repositoryRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Private     bool   `json:"private"`
		HasProjects bool   `json:"has_projects"`
	}

	pagesSource struct {
		Branch string `json:"branch"`
		Path   string `json:"path"`
	}

	pagesRequest struct {
		Source pagesSource `json:"source"`
	}
)

func (e *APIError) Error() string {
	return fmt.Sprintf("error %d: API request failed when %s: %s (%s)", e.StatusCode, e.Action, e.Status, e.Message)
}

// NewTokenClient authenticates every request with a stored OAuth token.
func NewTokenClient(baseURL, username, token string, logger *zap.Logger) *Client {
	return newClient(baseURL, username, "token "+token, logger)
}

// NewBasicClient authenticates with username and password.
// The header is assembled by hand so special characters survive intact.
func NewBasicClient(baseURL, username, password string, logger *zap.Logger) *Client {
	raw := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))

	return newClient(baseURL, username, "Basic "+raw, logger)
}

// NewAnonymousClient makes unauthenticated requests, enough for the public
// template endpoints.
func NewAnonymousClient(baseURL string, logger *zap.Logger) *Client {
	return newClient(baseURL, "", "", logger)
}

func newClient(baseURL, username, authorization string, logger *zap.Logger) *Client {
	userAgent := version.Signature()
	if username != "" {
		userAgent = fmt.Sprintf("%s using %s", username, version.Signature())
	}

	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
		baseURL:       baseURL,
		username:      username,
		userAgent:     userAgent,
		authorization: authorization,
	}
}

// Username returns the authenticated user the client was built for.
func (c *Client) Username() string {
	return c.username
}

func (c *Client) do(ctx context.Context, method, url, accept, action string, payload any) ([]byte, error) {
	var body io.Reader

	if payload != nil {
		contents, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize request body when %s: %w", action, err)
		}

		body = bytes.NewReader(contents)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s request to %q: %w", method, url, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed when %s: %w", action, err)
	}

	defer func() { _ = resp.Body.Close() }()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body when %s: %w", action, err)
	}

	c.logger.Debug("raw API response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", contents),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := APIError{
			Action:     action,
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
		}

		var serverMsg struct {
			Message string `json:"message"`
		}

		if json.Unmarshal(contents, &serverMsg) == nil {
			apiErr.Message = serverMsg.Message
		}

		return nil, &apiErr
	}

	return contents, nil
}

// CreateRepository creates a public remote repository and returns its final
// full name ("owner/name").
func (c *Client) CreateRepository(ctx context.Context, name, description string) (fullName string, err error) {
	payload := repositoryRequest{
		Name:        name,
		Description: description,
		Private:     false,
		HasProjects: false,
	}

	contents, err := c.do(ctx, http.MethodPost, c.baseURL+"/user/repos", acceptV3, "creating the remote repository", &payload)
	if err != nil {
		return "", err
	}

	var created struct {
		FullName string `json:"full_name"`
	}

	if err = json.Unmarshal(contents, &created); err != nil {
		return "", fmt.Errorf("failed to decode repository creation response: %w", err)
	}

	c.logger.Info("remote repository created", zap.String("full_name", created.FullName))

	return created.FullName, nil
}

// EnablePages turns on the Pages feature for the repository, serving from the
// master branch's /docs folder.
func (c *Client) EnablePages(ctx context.Context, fullName string) error {
	payload := pagesRequest{Source: pagesSource{Branch: "master", Path: "/docs"}}

	url := fmt.Sprintf("%s/repos/%s/pages", c.baseURL, fullName)

	_, err := c.do(ctx, http.MethodPost, url, acceptPagesPreview, "enabling gh-pages", &payload)
	if err != nil {
		return err
	}

	c.logger.Info("GitHub pages enabled", zap.String("full_name", fullName))

	return nil
}

// RequestPagesBuild asks the owner's personal blog repository
// ("<owner>.github.io") to rebuild its pages.
func (c *Client) RequestPagesBuild(ctx context.Context, owner string) error {
	blogRepo := owner + ".github.io"

	url := fmt.Sprintf("%s/repos/%s/%s/pages/builds", c.baseURL, owner, blogRepo)

	_, err := c.do(ctx, http.MethodPost, url, acceptBuildsPreview, "rebuilding gh-pages", nil)
	if err != nil {
		return err
	}

	c.logger.Info("personal blog pages rebuilt", zap.String("repository", blogRepo))

	return nil
}

// GitignoreTemplate fetches the raw contents of a named gitignore template.
func (c *Client) GitignoreTemplate(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/gitignore/templates/%s", c.baseURL, name)

	contents, err := c.do(ctx, http.MethodGet, url, acceptRaw, "getting the gitignore template", nil)
	if err != nil {
		return "", err
	}

	return string(contents), nil
}

// Licenses returns the commonly used licenses with their download URLs.
func (c *Client) Licenses(ctx context.Context) ([]License, error) {
	contents, err := c.do(ctx, http.MethodGet, c.baseURL+"/licenses", acceptV3, "getting license urls", nil)
	if err != nil {
		return nil, err
	}

	var licenses []License

	if err = json.Unmarshal(contents, &licenses); err != nil {
		return nil, fmt.Errorf("failed to decode license list: %w", err)
	}

	return licenses, nil
}

// LicenseBody fetches the full license text from a license URL.
func (c *Client) LicenseBody(ctx context.Context, url string) (string, error) {
	contents, err := c.do(ctx, http.MethodGet, url, acceptV3, "getting the license file", nil)
	if err != nil {
		return "", err
	}

	var license struct {
		Body string `json:"body"`
	}

	if err = json.Unmarshal(contents, &license); err != nil {
		return "", fmt.Errorf("failed to decode license body: %w", err)
	}

	return license.Body, nil
}
