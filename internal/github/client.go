package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// publicAPIURL is what the runner exports as GITHUB_API_URL on github.com.
const publicAPIURL = "https://api.github.com"

// ClientConfig holds the configuration for creating a GitHub API client.
type ClientConfig struct {
	// Token is a GitHub personal access token or GITHUB_TOKEN.
	// Falls back to GITHUB_TOKEN env var if empty.
	Token string

	// AppID is the GitHub App ID for app authentication.
	// Falls back to GH_APP_ID env var if zero.
	AppID int64

	// AppKey is the PEM content of a GitHub App private key.
	// Falls back to GH_APP_PRIVATE_KEY env var if empty.
	AppKey string

	// AppKeyPath is the path to a GitHub App private key PEM file.
	// Falls back to GH_APP_PRIVATE_KEY_PATH env var if empty. AppKey wins when both are set.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	// Falls back to GITHUB_API_URL env var if empty.
	BaseURL string

	// Owner is the repository owner, used for auto-detecting the app installation.
	Owner string
}

// NewClient creates an authenticated GitHub API client.
// Auth resolution order: Token flag → GITHUB_TOKEN env → App credentials → error.
func NewClient(cfg ClientConfig) (*gh.Client, error) {
	baseURL := ResolveBaseURL(cfg.BaseURL)

	// Try token auth first.
	token := resolveString(cfg.Token, "GITHUB_TOKEN")
	if token != "" {
		return newTokenClient(token, baseURL)
	}

	// Try GitHub App auth.
	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}

	if appID != 0 {
		if key := resolveString(cfg.AppKey, "GH_APP_PRIVATE_KEY"); key != "" {
			return newAppClient(appID, appKey{pem: []byte(key)}, cfg.Owner, baseURL)
		}
		if path := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY_PATH"); path != "" {
			return newAppClient(appID, appKey{path: path}, cfg.Owner, baseURL)
		}
	}

	return nil, errors.New("no GitHub authentication provided: set GITHUB_TOKEN, use --token, or provide --github-app-id and --github-app-key")
}

func newTokenClient(token, baseURL string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	if baseURL != "" {
		return gh.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
	}
	return gh.NewClient(httpClient), nil
}

// appKey is a private key given either inline or as a file path.
type appKey struct {
	pem  []byte
	path string
}

func (k appKey) appsTransport(appID int64) (*ghinstallation.AppsTransport, error) {
	if k.pem != nil {
		return ghinstallation.NewAppsTransport(http.DefaultTransport, appID, k.pem)
	}
	return ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, appID, k.path)
}

func (k appKey) installationTransport(appID, installationID int64) (*ghinstallation.Transport, error) {
	if k.pem != nil {
		return ghinstallation.New(http.DefaultTransport, appID, installationID, k.pem)
	}
	return ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, k.path)
}

func newAppClient(appID int64, key appKey, owner, baseURL string) (*gh.Client, error) {
	// Create an app-level transport to discover the installation ID.
	appTransport, err := key.appsTransport(appID)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = baseURL
	}

	// Find the installation for the target owner.
	appClient := gh.NewClient(&http.Client{Transport: appTransport})
	if baseURL != "" {
		appClient, err = appClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("setting enterprise URL: %w", err)
		}
	}

	installationID, err := findInstallation(appClient, owner)
	if err != nil {
		return nil, err
	}

	// Create an installation-level transport with the discovered ID.
	installTransport, err := key.installationTransport(appID, installationID)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	if baseURL != "" {
		installTransport.BaseURL = baseURL
	}

	client := gh.NewClient(&http.Client{Transport: installTransport})
	if baseURL != "" {
		return client.WithEnterpriseURLs(baseURL, baseURL)
	}
	return client, nil
}

// findInstallation finds the GitHub App installation for the given owner.
func findInstallation(client *gh.Client, owner string) (int64, error) {
	ctx := context.Background()
	opts := &gh.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}

		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// IsNotFoundError returns true if the error represents an HTTP 404 response
// from the GitHub API.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == 404
	}
	return false
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}

// ResolveBaseURL resolves the GitHub API base URL from the flag value or
// the GITHUB_API_URL environment variable. Returns empty string for github.com,
// including when the runner exports the public API URL.
func ResolveBaseURL(flagValue string) string {
	u := resolveString(flagValue, "GITHUB_API_URL")
	if strings.TrimRight(u, "/") == publicAPIURL {
		return ""
	}
	return u
}
