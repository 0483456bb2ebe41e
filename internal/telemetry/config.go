package telemetry

import (
	"strings"
	"time"
)

const (
	envPrefix      = "HEALSYNC_TRACE_OTEL_"
	envEndpoint    = envPrefix + "ENDPOINT"
	envInsecure    = envPrefix + "INSECURE"
	envHeaders     = envPrefix + "HEADERS"
	envService     = envPrefix + "SERVICE"
	envDialTimeout = envPrefix + "TIMEOUT"
)

// Config controls span export for a scaffold run. Export is off unless an
// endpoint is set.
type Config struct {
	Endpoint    string
	Insecure    bool
	Headers     map[string]string
	ServiceName string
	Version     string
	DialTimeout time.Duration
}

func Default() Config {
	return Config{
		ServiceName: "healsync-init",
		DialTimeout: 5 * time.Second,
	}
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ConfigFromEnv overlays HEALSYNC_TRACE_OTEL_* variables on Default.
// Malformed values are ignored rather than failing the run.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Default()
	if getenv == nil {
		return cfg
	}
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := get(envEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if b, ok := parseBool(get(envInsecure)); ok {
		cfg.Insecure = b
	}
	if v := get(envService); v != "" {
		cfg.ServiceName = v
	}
	if d, err := time.ParseDuration(get(envDialTimeout)); err == nil && d > 0 {
		cfg.DialTimeout = d
	}
	cfg.Headers = ParseHeaders(get(envHeaders))
	return cfg
}

// ParseHeaders converts "k=v,k2=v2" into a map, skipping blank keys.
func ParseHeaders(spec string) map[string]string {
	var headers map[string]string
	for entry := range strings.SplitSeq(spec, ",") {
		key, val, _ := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if headers == nil {
			headers = make(map[string]string)
		}
		headers[key] = strings.TrimSpace(val)
	}
	return headers
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
