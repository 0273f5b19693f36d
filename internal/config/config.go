// Package config loads solver settings from config.yaml, GOCUBE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "GOCUBE"
	// EnvHome overrides the configuration and data directory.
	EnvHome = "GOCUBE_HOME"

	defaultDirName = ".gocube_solver"
)

// Config keys. Flags with the same name, dashes for underscores, override
// them.
const (
	KeyTablesDir   = "tables_dir"
	KeyDB          = "db"
	KeyMemoryLimit = "memory_limit"
	KeyWorkers     = "workers"
	KeyWidth       = "width"
	KeyEdgeGroups  = "edge_groups"
	KeyMaxDepth    = "max_depth"
	KeyAlgorithm   = "algorithm"
	KeyLogLevel    = "log_level"
)

var keys = []string{
	KeyTablesDir, KeyDB, KeyMemoryLimit, KeyWorkers, KeyWidth,
	KeyEdgeGroups, KeyMaxDepth, KeyAlgorithm, KeyLogLevel,
}

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# gocube-solver configuration

# Where pattern database files are kept (default: <config dir>/tables)
# tables_dir:

# SQLite catalog and solve history (default: <config dir>/gocube.db)
# db:

# Memory ceiling for building tables
memory_limit: 2GiB

# Goroutines expanding a frontier (0: one per CPU)
workers: 0

# Bits per stored distance, 4 or 8
width: 4

# Sizes of the edge groups, 6,6 is Korf's split
edge_groups: [6, 6]

# Longest solution searched for
max_depth: 20

# idastar, astar, bfs or iddfs
algorithm: idastar

log_level: info
`

// Config holds the resolved settings.
type Config struct {
	Dir         string
	TablesDir   string
	DBPath      string
	MemoryLimit uint64
	Workers     int
	Width       uint8
	EdgeGroups  []int
	MaxDepth    int
	Algorithm   string
	LogLevel    string
}

// DefaultDir returns $GOCUBE_HOME, or ~/.gocube_solver.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// Load reads the configuration in dir, creating the directory and a default
// config.yaml on first run. Flags in flags that match a key are bound so
// that, when set, they take precedence. flags may be nil.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyTablesDir, filepath.Join(dir, "tables"))
	v.SetDefault(KeyDB, filepath.Join(dir, "gocube.db"))
	v.SetDefault(KeyMemoryLimit, "2GiB")
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyWidth, 4)
	v.SetDefault(KeyEdgeGroups, []int{6, 6})
	v.SetDefault(KeyMaxDepth, 20)
	v.SetDefault(KeyAlgorithm, "idastar")
	v.SetDefault(KeyLogLevel, "info")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for _, key := range keys {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	return decode(v, dir)
}

func decode(v *viper.Viper, dir string) (*Config, error) {
	limit, err := humanize.ParseBytes(v.GetString(KeyMemoryLimit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyMemoryLimit, err)
	}
	width := v.GetInt(KeyWidth)
	if width != 4 && width != 8 {
		return nil, fmt.Errorf("%s: must be 4 or 8, got %d", KeyWidth, width)
	}
	workers := v.GetInt(KeyWorkers)
	if workers < 0 {
		return nil, fmt.Errorf("%s: must not be negative, got %d", KeyWorkers, workers)
	}
	groups, err := parseGroups(v.Get(KeyEdgeGroups))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyEdgeGroups, err)
	}

	return &Config{
		Dir:         dir,
		TablesDir:   v.GetString(KeyTablesDir),
		DBPath:      v.GetString(KeyDB),
		MemoryLimit: limit,
		Workers:     workers,
		Width:       uint8(width),
		EdgeGroups:  groups,
		MaxDepth:    v.GetInt(KeyMaxDepth),
		Algorithm:   v.GetString(KeyAlgorithm),
		LogLevel:    v.GetString(KeyLogLevel),
	}, nil
}

// parseGroups accepts a YAML list or a comma separated string such as
// "7,5", as given by an environment variable or a flag.
func parseGroups(raw any) ([]int, error) {
	var fields []string
	switch val := raw.(type) {
	case []int:
		return val, nil
	case []any:
		for _, x := range val {
			fields = append(fields, fmt.Sprint(x))
		}
	case []string:
		fields = val
	case string:
		fields = strings.Split(strings.Trim(val, "[]"), ",")
	default:
		return nil, fmt.Errorf("unsupported value %v", raw)
	}

	groups := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		groups = append(groups, n)
	}
	return groups, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
