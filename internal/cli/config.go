package cli

import (
	"fmt"
	"os"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	AdminCode string
	Output    string
}

// DefaultConfig returns a Config with defaults taken from the environment
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BADAN_SERVER", "http://localhost:3000"),
		AdminCode: os.Getenv("BADAN_ADMIN_CODE"),
		Output:    OutputText,
	}
}

// Validate checks flag values
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid --output %q: must be text or json", c.Output)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("--server must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
