package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/visa-lookup/internal/app"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig   = "VISA_LOOKUP_CONFIG"
	envAPIURL   = "VISA_LOOKUP_API_URL"
	envTimeout  = "VISA_LOOKUP_TIMEOUT"
	envWidth    = "VISA_LOOKUP_WIDTH"
	envHeight   = "VISA_LOOKUP_HEIGHT"
	envFooter   = "VISA_LOOKUP_FOOTER"
	envTrace    = "VISA_LOOKUP_TRACE"
	envLogFile  = "VISA_LOOKUP_LOG_FILE"
	envPassport = "VISA_LOOKUP_PASSPORT"
	envCountry  = "VISA_LOOKUP_COUNTRY"
	envDays     = "VISA_LOOKUP_DAYS"
)

const defaultTimeout = 10 * time.Second

// fileConfig mirrors the optional YAML file. Pointer fields distinguish an
// explicit zero from an absent key.
type fileConfig struct {
	APIURL   string `yaml:"api-url"`
	Timeout  string `yaml:"timeout"`
	Width    *int   `yaml:"width"`
	Height   *int   `yaml:"height"`
	Footer   *bool  `yaml:"footer"`
	Trace    *bool  `yaml:"trace"`
	LogFile  string `yaml:"log-file"`
	Passport string `yaml:"passport"`
	Country  string `yaml:"country"`
	Days     string `yaml:"days"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// flag first, then environment, then the config file, then defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := scanConfigPath(args, envOrDefault(env, envConfig, ""))
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	fileTimeout := defaultTimeout
	if strings.TrimSpace(file.Timeout) != "" {
		fileTimeout, err = time.ParseDuration(file.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid timeout %q: %w", path, file.Timeout, err)
		}
	}

	fs := flag.NewFlagSet("visa-lookup", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to a YAML config file")
	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, file.APIURL), "base URL of the visa REST API")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, fileTimeout), "per-request timeout")
	width := fs.Int("width", envOrInt(env, envWidth, intOr(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, intOr(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, boolOr(file.Footer, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	passport := fs.String("passport", envOrDefault(env, envPassport, file.Passport), "passport country for a one-shot lookup")
	country := fs.String("country", envOrDefault(env, envCountry, file.Country), "destination country for a one-shot lookup")
	days := fs.String("days", envOrDefault(env, envDays, file.Days), "planned stay in days for a one-shot lookup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			APIURL:     strings.TrimSpace(*apiURL),
			Timeout:    *timeout,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Passport:   strings.TrimSpace(*passport),
			Country:    strings.TrimSpace(*country),
			Days:       strings.TrimSpace(*days),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"config":   path,
			"apiURL":   *apiURL,
			"timeout":  timeout.String(),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
			"passport": *passport,
			"country":  *country,
			"days":     *days,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanConfigPath finds --config ahead of the real parse so the file can
// seed the flag defaults.
func scanConfigPath(args []string, fallback string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return fallback
}

func readFile(path string) (fileConfig, error) {
	var file fileConfig
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("%s: invalid yaml (%s)", path, strings.TrimSpace(err.Error()))
	}
	return file, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.APIURL == "" {
		return fmt.Errorf("api-url is required (flag --api-url or %s)", envAPIURL)
	}
	u, err := url.Parse(cfg.App.APIURL)
	if err != nil {
		return fmt.Errorf("api-url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api-url must be an absolute http(s) URL (got %q)", cfg.App.APIURL)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout)
	}
	if (cfg.App.Passport == "") != (cfg.App.Country == "") {
		return errors.New("--passport and --country must be given together")
	}
	if cfg.App.Days != "" && cfg.App.Passport == "" {
		return errors.New("--days only applies together with --passport and --country")
	}
	return nil
}
