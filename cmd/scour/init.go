package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// configExample is the starter config written by `scour init`.
const configExample = `# scour configuration
discord:
  # Bot token. Leave empty to use the DISCORD_TOKEN environment variable.
  token: ""

search:
  # Minimum message length when /search omits the limit option.
  default_min_length: 80
  # How long pagination stays usable after the last click, in seconds.
  session_ttl_sec: 900

# debug, info, warn, or error
log_level: info
# text or json
log_format: text
`

// runInit initializes a scour working directory. It writes a starter
// config.yaml; an existing file is never overwritten.
func runInit(w io.Writer, dir string) error {
	fmt.Fprintf(w, "Initializing scour workspace in %s\n", dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(w, "  %s already exists, leaving it alone\n", configPath)
		return nil
	}

	// The config may hold a bot token, so keep it owner-readable only.
	if err := os.WriteFile(configPath, []byte(configExample), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}
	fmt.Fprintf(w, "  ✓ %s\n", configPath)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit config.yaml (or set DISCORD_TOKEN) and run: scour serve")
	return nil
}
