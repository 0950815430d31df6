package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".mnctl"
	configFileName = "config.yaml"
)

// ReservedParamKey is injected per cluster by the send pipeline and must
// never come from config defaults or operator flags.
const ReservedParamKey = "CLUSTER_UUID"

type Config struct {
	OCM        OCMConfig        `yaml:"ocm" json:"ocm"`
	Osdctl     OsdctlConfig     `yaml:"osdctl" json:"osdctl"`
	ServiceLog ServiceLogConfig `yaml:"servicelog" json:"servicelog"`
	Output     OutputConfig     `yaml:"output" json:"output"`
}

// OCMConfig describes how to reach the cluster inventory CLI.
type OCMConfig struct {
	Binary         string `yaml:"binary" json:"binary"`
	CaptureTimeout string `yaml:"captureTimeout" json:"captureTimeout"`
}

// OsdctlConfig describes how to reach the notification CLI.
type OsdctlConfig struct {
	Binary string `yaml:"binary" json:"binary"`
}

type ServiceLogConfig struct {
	// PlaceholderUUID substitutes for CLUSTER_UUID during dry-run previews.
	PlaceholderUUID string `yaml:"placeholderUUID" json:"placeholderUUID"`
	// DefaultParams are merged under operator-supplied -p params.
	DefaultParams map[string]string `yaml:"defaultParams" json:"defaultParams"`
}

type OutputConfig struct {
	Colors bool `yaml:"colors" json:"colors"`
}

func Default() *Config {
	return &Config{
		OCM: OCMConfig{
			Binary:         "ocm",
			CaptureTimeout: "30s",
		},
		Osdctl: OsdctlConfig{
			Binary: "osdctl",
		},
		ServiceLog: ServiceLogConfig{
			PlaceholderUUID: "00000000-0000-0000-0000-000000000000",
			DefaultParams:   map[string]string{},
		},
		Output: OutputConfig{
			Colors: true,
		},
	}
}

func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func Load() (*Config, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return Default(), nil
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func EnsureExists() (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := Save(Default()); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.OCM.Binary) == "" {
		return fmt.Errorf("ocm.binary cannot be empty")
	}
	if _, err := parsePositiveDuration(c.OCM.CaptureTimeout, "ocm.captureTimeout"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Osdctl.Binary) == "" {
		return fmt.Errorf("osdctl.binary cannot be empty")
	}
	if strings.TrimSpace(c.ServiceLog.PlaceholderUUID) == "" {
		return fmt.Errorf("servicelog.placeholderUUID cannot be empty")
	}
	for k, v := range c.ServiceLog.DefaultParams {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("servicelog.defaultParams contains empty key")
		}
		if strings.TrimSpace(k) == ReservedParamKey {
			return fmt.Errorf("servicelog.defaultParams must not set %s; it is injected per cluster", ReservedParamKey)
		}
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("servicelog.defaultParams.%s cannot be empty", k)
		}
	}
	return nil
}

// CaptureTimeoutDuration returns the parsed capture timeout, falling back to
// 30s when unset or invalid.
func (c *Config) CaptureTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.OCM.CaptureTimeout))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) SetByKey(key, value string) error {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return fmt.Errorf("key cannot be empty")
	}
	v := strings.TrimSpace(value)
	switch {
	case k == "ocm.binary":
		c.OCM.Binary = v
	case k == "ocm.capturetimeout", k == "ocm.capture_timeout":
		c.OCM.CaptureTimeout = v
	case k == "osdctl.binary":
		c.Osdctl.Binary = v
	case k == "servicelog.placeholderuuid", k == "servicelog.placeholder_uuid":
		c.ServiceLog.PlaceholderUUID = v
	case strings.HasPrefix(k, "servicelog.defaultparams."):
		name := paramKeyFrom(key)
		if name == "" {
			return fmt.Errorf("default param name is required")
		}
		if c.ServiceLog.DefaultParams == nil {
			c.ServiceLog.DefaultParams = map[string]string{}
		}
		if v == "" {
			delete(c.ServiceLog.DefaultParams, name)
		} else {
			c.ServiceLog.DefaultParams[name] = value
		}
	case k == "output.colors":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("output.colors must be true or false")
		}
		c.Output.Colors = b
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
	c.normalize()
	return c.Validate()
}

func (c *Config) GetByKey(key string) (any, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	switch {
	case k == "ocm.binary":
		return c.OCM.Binary, nil
	case k == "ocm.capturetimeout", k == "ocm.capture_timeout":
		return c.OCM.CaptureTimeout, nil
	case k == "osdctl.binary":
		return c.Osdctl.Binary, nil
	case k == "servicelog.placeholderuuid", k == "servicelog.placeholder_uuid":
		return c.ServiceLog.PlaceholderUUID, nil
	case strings.HasPrefix(k, "servicelog.defaultparams."):
		name := paramKeyFrom(key)
		if name == "" {
			return nil, fmt.Errorf("default param name is required")
		}
		return c.ServiceLog.DefaultParams[name], nil
	case k == "output.colors":
		return c.Output.Colors, nil
	default:
		return nil, fmt.Errorf("unsupported key %q", key)
	}
}

func (c *Config) ToYAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Config) ToJSON() (string, error) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DefaultParamKeys returns the configured default param names, sorted.
func (c *Config) DefaultParamKeys() []string {
	out := make([]string, 0, len(c.ServiceLog.DefaultParams))
	for k := range c.ServiceLog.DefaultParams {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Config) normalize() {
	if c.ServiceLog.DefaultParams == nil {
		c.ServiceLog.DefaultParams = map[string]string{}
	}
	c.OCM.Binary = strings.TrimSpace(c.OCM.Binary)
	c.OCM.CaptureTimeout = strings.TrimSpace(c.OCM.CaptureTimeout)
	c.Osdctl.Binary = strings.TrimSpace(c.Osdctl.Binary)
	c.ServiceLog.PlaceholderUUID = strings.TrimSpace(c.ServiceLog.PlaceholderUUID)
	for name, v := range c.ServiceLog.DefaultParams {
		clean := strings.TrimSpace(name)
		if clean == "" {
			delete(c.ServiceLog.DefaultParams, name)
			continue
		}
		if clean != name {
			delete(c.ServiceLog.DefaultParams, name)
			c.ServiceLog.DefaultParams[clean] = v
		}
	}
}

// paramKeyFrom preserves the case of the param name after the lowercase
// "servicelog.defaultparams." prefix; template param keys are case-sensitive.
func paramKeyFrom(key string) string {
	trimmed := strings.TrimSpace(key)
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	return strings.TrimSpace(trimmed[idx+1:])
}

func parsePositiveDuration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return d, nil
}
