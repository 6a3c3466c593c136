package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  host: "0.0.0.0"
  port: 8080
logging:
  level: info
  format: text
  output: stdout
scheduler:
  interval_seconds: 60
  pairs: ["BTC/USD", "ETH/USD"]
storage:
  db_path: "./data/oracle"
price_fetcher:
  endpoint: "https://rates.example/v1"
ethereum:
  private_key: "deadbeef"
  gas_limit: 200000
  gas_price: "1000000000"
  min_balance: "100000000000000"
chains:
  - chain_id: 1
    name: mainnet
    rpc: "https://rpc.example"
    subscriptions:
      - address: "0xabc"
        contract_address: "0xcontract"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Scheduler.IntervalSeconds)
	assert.Equal(t, []string{"BTC/USD", "ETH/USD"}, cfg.Scheduler.Pairs)
	require.Len(t, cfg.Chains, 1)
	assert.Equal(t, uint64(1), cfg.Chains[0].ChainID)
}

func TestLoadAppliesFlagOverrides(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	cfg, err := Load([]string{"-c", path, "--port", "9090", "--log-level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
scheduler:
  interval_seconds: 60
storage:
  db_path: "./data"
`)

	_, err := Load([]string{"-c", path})
	assert.Error(t, err, "price_fetcher.endpoint is required")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load([]string{"-c", "/nonexistent/config.yaml"})
	assert.Error(t, err)
}
