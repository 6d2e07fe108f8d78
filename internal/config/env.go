package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Registry modes
const (
	RegistryFake = "fake"
	RegistryHTTP = "http"
)

// Config contains all configuration parameters for the application.
// Note: when STATE_ENCRYPT is on and STATE_PASSPHRASE is empty the passphrase
// is prompted at runtime - use GetStatePassphraseBytes()
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	StateDir        string        `envconfig:"STATE_DIR" default:"./data"`
	StateEncrypt    bool          `envconfig:"STATE_ENCRYPT" default:"false"`
	StatePassphrase string        `envconfig:"STATE_PASSPHRASE"`
	RegistryMode    string        `envconfig:"REGISTRY_MODE" default:"fake"`
	BackendURL      string        `envconfig:"BACKEND_URL" default:"http://localhost:3001"`
	BackendTimeout  time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`
	DeployFallback  bool          `envconfig:"DEPLOY_FALLBACK" default:"true"`
	FakeSeed        uint64        `envconfig:"FAKE_SEED" default:"0"`
	SorobanRPCURL   string        `envconfig:"SOROBAN_RPC_URL" default:"https://soroban-testnet.stellar.org"`
	DefaultNetwork  string        `envconfig:"DEFAULT_NETWORK" default:"testnet"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	if cfg.StatePassphrase != "" {
		passphraseBytes = []byte(cfg.StatePassphrase)
		cfg.StatePassphrase = ""
	}
	return nil
}

// Load reads and validates configuration without touching the global instance
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	switch c.RegistryMode {
	case RegistryFake, RegistryHTTP:
	default:
		return nil, fmt.Errorf("REGISTRY_MODE must be %q or %q, got %q", RegistryFake, RegistryHTTP, c.RegistryMode)
	}
	switch c.DefaultNetwork {
	case "testnet", "mainnet":
	default:
		return nil, fmt.Errorf("DEFAULT_NETWORK must be testnet or mainnet, got %q", c.DefaultNetwork)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetLogLevel returns the log level from configuration
func GetLogLevel() string {
	return Get().LogLevel
}

// GetStateDir returns the state store directory
func GetStateDir() string {
	return Get().StateDir
}

// GetStateEncrypt reports whether stored values are sealed
func GetStateEncrypt() bool {
	return Get().StateEncrypt
}

// GetRegistryMode returns fake or http
func GetRegistryMode() string {
	return Get().RegistryMode
}

// GetBackendURL returns the contract backend base URL
func GetBackendURL() string {
	return Get().BackendURL
}

// GetBackendTimeout returns the HTTP timeout for backend and RPC calls
func GetBackendTimeout() time.Duration {
	return Get().BackendTimeout
}

// GetDeployFallback reports whether failed deployments fall back to mock ones
func GetDeployFallback() bool {
	return Get().DeployFallback
}

// GetFakeSeed returns the seed for the in-memory registry
func GetFakeSeed() uint64 {
	return Get().FakeSeed
}

// GetSorobanRPCURL returns Soroban RPC URL from configuration
func GetSorobanRPCURL() string {
	return Get().SorobanRPCURL
}

// GetDefaultNetwork returns the initial wallet network
func GetDefaultNetwork() string {
	return Get().DefaultNetwork
}

var passphraseBytes []byte

// PromptForPassphrase prompts for the state passphrase in the terminal.
// The passphrase is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassphrase(prompt string) error {
	raw, err := ReadPassphrase(prompt)
	if err != nil {
		return err
	}
	passphraseBytes = raw
	return nil
}

// ReadPassphrase reads a hidden line from the terminal. Caller must zero the result.
func ReadPassphrase(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively or set STATE_PASSPHRASE")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// HasStatePassphrase reports whether a passphrase is held in memory
func HasStatePassphrase() bool {
	return len(passphraseBytes) > 0
}

// GetStatePassphraseBytes returns the passphrase held in memory.
// Returns an error if the passphrase was not set.
// Caller must zero the returned slice after use for security.
func GetStatePassphraseBytes() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: set STATE_PASSPHRASE or call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}
