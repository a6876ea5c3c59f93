package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Manager Pro Configuration

[grading]
# Correlation entries with fewer observations than this in either group
# are flagged low-confidence
min_samples = 5

# Position size per grade. A fixed "contracts" count wins; otherwise the
# size is drawdown_pct of the daily drawdown limit divided by the risk
# per contract. F must stay at zero.
[sizing.A]
drawdown_pct = 50.0
label = "Full Size"

[sizing.B]
drawdown_pct = 30.0
label = "Reduced"

[sizing.C]
drawdown_pct = 15.0
label = "Minimum"

[sizing.F]
drawdown_pct = 0.0
label = "NO TRADE"

[eligibility]
# Any alcohol in the last 24 hours blocks trading
block_on_alcohol = true
# Block when stress level is at or above this (1-10)
max_stress = 7
# Block when sleep quality is at or below this (1-10)
min_sleep = 4
# Caution when home stress is above this (1-10)
max_home_stress = 7
# Caution when stress level is at or above this (1-10)
moderate_stress = 5

[risk]
# Daily drawdown limit in account currency
daily_drawdown = 400.0
# Risk per contract in account currency (e.g. ES 8 ticks = 100)
risk_per_contract = 100.0

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true
max_size = 50
max_backups = 5
max_age = 30
`

// createTemplateConfig writes a starter config.toml to the config directory.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
