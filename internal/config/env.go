package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv applies RXTRACK_* overrides. Unparsable values are ignored.
func FromEnv(cfg *Config) {
	if v, ok := getEnvString("RXTRACK_DB"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := getEnvString("RXTRACK_DB_DRIVER"); ok {
		cfg.Storage.Driver = v
	}
	if v, ok := getEnvString("RXTRACK_TZ"); ok {
		cfg.Pharmacy.Timezone = v
	}
	if v, ok := getEnvString("RXTRACK_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvString("RXTRACK_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvInt("RXTRACK_ALERT_BUFFER"); ok && v > 0 {
		cfg.TUI.AlertBuffer = v
	}
	if v, ok := getEnvInt("RXTRACK_REFRESH_SECONDS"); ok && v >= 0 {
		cfg.TUI.RefreshSeconds = v
	}
	if v, ok := getEnvBool("RXTRACK_TREAT_MISSING_DATE_AS_FAILURE"); ok {
		cfg.Policy.TreatMissingDateAsFailure = v
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
