package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/funnelkit/internal/paths"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyCatalogFile = "catalog_file"

	envPrefix = "FUNNELKIT"

	defaultLogLevel = "info"
)

// configFile is the structure written to config.yaml on first run.
type configFile struct {
	Backend     string `yaml:"backend"`
	DataDir     string `yaml:"data_dir,omitempty"`
	LogLevel    string `yaml:"log_level"`
	CatalogFile string `yaml:"catalog_file,omitempty"`
}

// loadConfig reads config.yaml from configDir with Viper, creating the
// directory and a default file on first run. log_level and catalog_file may
// be overridden by FUNNELKIT_LOG_LEVEL and FUNNELKIT_CATALOG_FILE; data_dir
// is resolved separately so that config.yaml wins over the environment.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir), configFile{}); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyLogLevel, cfgKeyCatalogFile} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// writeConfigIfMissing writes cfg to path unless the file exists. Empty
// fields take their defaults.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if cfg.Backend == "" {
		cfg.Backend = types.BackendSQLite
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# funnelkit configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// resolveDataDir applies flag > config.yaml > env > default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.cfg.GetString(cfgKeyDataDir))
}

// catalogFile returns the configured catalog extension file, relative paths
// being resolved against the config directory.
func (a *app) catalogFile() string {
	f := a.cfg.GetString(cfgKeyCatalogFile)
	if f == "" || filepath.IsAbs(f) {
		return f
	}
	return filepath.Join(a.configDir, f)
}
