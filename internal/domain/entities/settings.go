package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr      = ":3000"
	defaultMaxBodyBytes    = 50 << 20
	defaultGitHubAPIURL    = "https://api.github.com/"
	defaultNetlifyAPIURL   = "https://api.netlify.com/api/v1"
	defaultVercelAPIURL    = "https://api.vercel.com"
	defaultBranch          = "main"
	defaultHTTPTimeout     = 30 * time.Second
	defaultRetryMax        = 2
	defaultRetryWaitMin    = 500 * time.Millisecond
	defaultRetryWaitMax    = 5 * time.Second
	defaultUploadWorkers   = 4
	defaultPollAttempts    = 5
	defaultPollInterval    = time.Second
	defaultPollMaxInterval = 8 * time.Second
	defaultHistoryPath     = "folio-history.db"
	defaultUserAgent       = "Portfolio-Generator"
)

// Settings is the top-level configuration for folio.
type Settings struct {
	Server  ServerSettings   `yaml:"server"`
	GitHub  GitHubSettings   `yaml:"github"`
	Netlify PlatformSettings `yaml:"netlify"`
	Vercel  PlatformSettings `yaml:"vercel"`
	HTTP    HTTPSettings     `yaml:"http"`
	Upload  UploadSettings   `yaml:"upload"`
	Pages   PagesSettings    `yaml:"pages"`
	History HistorySettings  `yaml:"history"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	ListenAddr     string   `yaml:"listen_addr"`
	APIToken       string   `yaml:"api_token"` // Inline, ${ENV_VAR}, or file path
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GitHubSettings configures the repository host.
type GitHubSettings struct {
	APIURL        string `yaml:"api_url"`
	Token         string `yaml:"token"` // used by the CLI when no token is passed
	DefaultBranch string `yaml:"default_branch"`
}

// PlatformSettings configures a hosting platform API.
type PlatformSettings struct {
	APIURL string `yaml:"api_url"`
	Token  string `yaml:"token"`
}

// HTTPSettings configures the outbound HTTP client shared by every provider.
type HTTPSettings struct {
	Timeout      time.Duration `yaml:"timeout"`
	RetryMax     int           `yaml:"retry_max"`
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max"`
	UserAgent    string        `yaml:"user_agent"`
}

type UploadSettings struct {
	Concurrency int `yaml:"concurrency"`
}

// PagesSettings bounds the wait for GitHub Pages provisioning.
type PagesSettings struct {
	PollAttempts    int           `yaml:"poll_attempts"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	PollMaxInterval time.Duration `yaml:"poll_max_interval"`
}

type HistorySettings struct {
	Path string `yaml:"path"` // SQLite file, or ":memory:"
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the configuration used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			ListenAddr:   defaultListenAddr,
			MaxBodyBytes: defaultMaxBodyBytes,
		},
		GitHub:  GitHubSettings{APIURL: defaultGitHubAPIURL, DefaultBranch: defaultBranch},
		Netlify: PlatformSettings{APIURL: defaultNetlifyAPIURL},
		Vercel:  PlatformSettings{APIURL: defaultVercelAPIURL},
		HTTP: HTTPSettings{
			Timeout:      defaultHTTPTimeout,
			RetryMax:     defaultRetryMax,
			RetryWaitMin: defaultRetryWaitMin,
			RetryWaitMax: defaultRetryWaitMax,
			UserAgent:    defaultUserAgent,
		},
		Upload: UploadSettings{Concurrency: defaultUploadWorkers},
		Pages: PagesSettings{
			PollAttempts:    defaultPollAttempts,
			PollInterval:    defaultPollInterval,
			PollMaxInterval: defaultPollMaxInterval,
		},
		History: HistorySettings{Path: defaultHistoryPath},
	}
}

// NewSettings loads .env, then the YAML file at path (when not empty), then
// environment overrides, and validates the result.
func NewSettings(path string) (*Settings, error) {
	// a missing .env is the normal case
	_ = godotenv.Load()

	settings := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	applyEnvOverrides(settings)

	settings.Server.APIToken = ResolveToken(settings.Server.APIToken)
	settings.GitHub.Token = ResolveToken(settings.GitHub.Token)
	settings.Netlify.Token = ResolveToken(settings.Netlify.Token)
	settings.Vercel.Token = ResolveToken(settings.Vercel.Token)

	if validateErr := validateSettings(settings); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".folio.yaml",
		".folio.yml",
		"folio.yaml",
		"folio.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// TokenFor returns the configured token for a platform.
func (s *Settings) TokenFor(platform Platform) string {
	switch platform {
	case PlatformPages:
		return s.GitHub.Token
	case PlatformNetlify:
		return s.Netlify.Token
	case PlatformVercel:
		return s.Vercel.Token
	default:
		return ""
	}
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("FOLIO_LISTEN_ADDR"); v != "" {
		s.Server.ListenAddr = v
	} else if port := os.Getenv("PORT"); port != "" {
		s.Server.ListenAddr = ":" + port
	}
	if v := os.Getenv("FOLIO_API_TOKEN"); v != "" {
		s.Server.APIToken = v
	}
	if v := os.Getenv("FOLIO_HISTORY_PATH"); v != "" {
		s.History.Path = v
	}
	if s.GitHub.Token == "" {
		s.GitHub.Token = firstEnv("GITHUB_TOKEN", "GH_TOKEN")
	}
	if s.Netlify.Token == "" {
		s.Netlify.Token = firstEnv("NETLIFY_TOKEN", "NETLIFY_AUTH_TOKEN")
	}
	if s.Vercel.Token == "" {
		s.Vercel.Token = firstEnv("VERCEL_TOKEN")
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func validateSettings(s *Settings) error {
	if s.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}
	if s.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	for name, apiURL := range map[string]string{
		"github.api_url":  s.GitHub.APIURL,
		"netlify.api_url": s.Netlify.APIURL,
		"vercel.api_url":  s.Vercel.APIURL,
	} {
		if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, apiURL)
		}
	}
	if s.GitHub.DefaultBranch == "" {
		return errors.New("github.default_branch is required")
	}
	if s.HTTP.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if s.HTTP.RetryMax < 0 {
		return errors.New("http.retry_max must not be negative")
	}
	if s.Upload.Concurrency < 1 {
		return errors.New("upload.concurrency must be at least 1")
	}
	if s.Pages.PollAttempts < 0 {
		return errors.New("pages.poll_attempts must not be negative")
	}
	return nil
}
