package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/config"
	"github.com/matzehuels/roadnet/pkg/criteria"
	roadio "github.com/matzehuels/roadnet/pkg/io"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "roadnet"

	// configFile is looked up in the config directory when --config is unset.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Network Loading
// =============================================================================

// network is an imported road system with its configured criteria active.
type network struct {
	path     string
	rs       *roadsys.RoadSystem
	manager  *criteria.CriteriaManager
	criteria []criteria.Criterion
}

// violations returns every violation currently held, in detection order.
func (n *network) violations() []*criteria.Violation {
	return n.manager.ViolationManager().Violations()
}

// loadConfig reads the config at path. An empty path falls back to the
// user config file, then to the built-in defaults.
func (c *CLI) loadConfig(path string) (config.Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return config.Default(), nil
		}
		path = filepath.Join(dir, configFile)
		if _, err := os.Stat(path); err != nil {
			c.Logger.Debug("using built-in config")
			return config.Default(), nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", path, "criteria", len(cfg.Criteria))
	return cfg, nil
}

// openNetwork builds an empty road system from cfg, activates the
// configured criteria and then imports path into it, so the criteria see
// the network grow one element at a time.
func (c *CLI) openNetwork(path string, cfg config.Config) (*network, error) {
	ranges, err := cfg.ValueRanges()
	if err != nil {
		return nil, err
	}

	rs := roadsys.New(roadsys.NewSegmentFactory(cfg.SegmentDefaults()), c.Logger)
	m := criteria.NewCriteriaManager(rs, criteria.NewViolationManager(), criteria.NewFactory(ranges), c.Logger)
	crits, err := cfg.BuildCriteria(m)
	if err != nil {
		return nil, err
	}

	if err := roadio.Import(path, rs); err != nil {
		return nil, err
	}
	c.Logger.Debug("imported network", "path", path,
		"segments", len(rs.Segments()), "connections", len(rs.Connections()))

	return &network{path: path, rs: rs, manager: m, criteria: crits}, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/roadnet/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
