package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/atelierhq/atelier/internal/constants"
)

// Workspace describes one managed mockup directory and its presentation
// settings. A config file can hold several workspaces; exactly one is
// active at a time.
type Workspace struct {
	DesignsDir     string   `yaml:"designsdir"      json:"designs_dir"`
	ArchiveDir     string   `yaml:"archivedir"      json:"archive_dir"`
	Extension      string   `yaml:"extension"       json:"extension"`
	CoalesceMillis int      `yaml:"coalesce_ms"     json:"coalesce_ms"`
	RendererCap    int      `yaml:"renderer_cap"    json:"renderer_cap"`
	PreviewTheme   string   `yaml:"preview_theme"   json:"preview_theme"`
	ServerPort     int      `yaml:"server_port"     json:"server_port"`
	ExportDir      string   `yaml:"exportdir"       json:"export_dir"`
	DefaultFilters []string `yaml:"default_filters" json:"default_filters"`
}

type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"        json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`

	active *Workspace `yaml:"-"`
}

const defaultWorkspaceName = "default"

func newWorkspace() *Workspace {
	return &Workspace{
		ArchiveDir:     constants.ArchiveDirName,
		Extension:      constants.DesignExtension,
		CoalesceMillis: 250,
		RendererCap:    3,
		PreviewTheme:   "dracula",
		ServerPort:     4777,
	}
}

func (ws *Workspace) ensureDefaults() {
	if strings.TrimSpace(ws.ArchiveDir) == "" {
		ws.ArchiveDir = constants.ArchiveDirName
	}
	if strings.TrimSpace(ws.Extension) == "" {
		ws.Extension = constants.DesignExtension
	}
	if !strings.HasPrefix(ws.Extension, ".") {
		ws.Extension = "." + ws.Extension
	}
	if ws.CoalesceMillis <= 0 {
		ws.CoalesceMillis = 250
	}
	// Each live rendering is a heavyweight execution context; the cap is
	// part of the design, not a tunable to raise freely.
	if ws.RendererCap <= 0 || ws.RendererCap > 3 {
		ws.RendererCap = 3
	}
	if ws.PreviewTheme == "" {
		ws.PreviewTheme = "dracula"
	}
	if ws.ServerPort <= 0 {
		ws.ServerPort = 4777
	}
}

// ArchivePath returns the sibling directory holding relocated designs.
func (ws *Workspace) ArchivePath() string {
	return filepath.Join(ws.DesignsDir, ws.ArchiveDir)
}

// MetadataPath returns the location of the persisted metadata table for
// this workspace.
func (ws *Workspace) MetadataPath() string {
	return filepath.Join(ws.DesignsDir, ".atelier", constants.MetadataFile)
}

// SessionPath returns the location of the lightweight view-state mirror.
func (ws *Workspace) SessionPath() string {
	return filepath.Join(ws.DesignsDir, ".atelier", constants.SessionFile)
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) != 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if cfg.CurrentWorkspace == "" {
		if len(cfg.Workspaces) == 0 {
			cfg.Workspaces[defaultWorkspaceName] = newWorkspace()
			cfg.CurrentWorkspace = defaultWorkspaceName
		} else {
			for name := range cfg.Workspaces {
				cfg.CurrentWorkspace = name
				break
			}
		}
	}

	return cfg.setActiveWorkspace(cfg.CurrentWorkspace)
}

func (cfg *Config) setActiveWorkspace(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	ws, ok := cfg.Workspaces[name]
	if !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if ws == nil {
		ws = newWorkspace()
		cfg.Workspaces[name] = ws
	}

	ws.ensureDefaults()
	cfg.CurrentWorkspace = name
	cfg.active = ws

	cfg.syncViperWithActiveWorkspace()

	return nil
}

func (cfg *Config) syncViperWithActiveWorkspace() {
	if cfg.active == nil {
		return
	}

	viper.Set("designsdir", cfg.active.DesignsDir)
	viper.Set("archivedir", cfg.active.ArchiveDir)
	viper.Set("extension", cfg.active.Extension)
	viper.Set("renderer_cap", cfg.active.RendererCap)
	viper.Set("preview_theme", cfg.active.PreviewTheme)
	viper.Set("server_port", cfg.active.ServerPort)
}

func (cfg *Config) ActiveWorkspace() (*Workspace, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentWorkspace == "" {
		return nil, fmt.Errorf("no workspace is currently selected")
	}

	if err := cfg.setActiveWorkspace(cfg.CurrentWorkspace); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) ActivateWorkspace(name string) error {
	return cfg.setActiveWorkspace(name)
}

func (cfg *Config) SwitchWorkspace(name string) error {
	if err := cfg.setActiveWorkspace(name); err != nil {
		return err
	}
	return cfg.Save()
}

func (cfg *Config) AddWorkspace(name string, ws *Workspace, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}

	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if _, exists := cfg.Workspaces[trimmed]; exists {
		return fmt.Errorf("workspace %q already exists", trimmed)
	}

	if ws == nil {
		ws = newWorkspace()
	}
	ws.ensureDefaults()
	cfg.Workspaces[trimmed] = ws

	if cfg.CurrentWorkspace == "" || makeCurrent {
		if err := cfg.setActiveWorkspace(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(cfg.Workspaces))
	for name := range cfg.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cfg *Config) GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) Save() error {
	cfg.syncViperWithActiveWorkspace()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func GetConfigPath(home string) string {
	return filepath.Join(
		home,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func EnsureConfigExists(home string) error {
	dir := filepath.Join(home, constants.ConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := GetConfigPath(home)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		return file.Close()
	}

	return nil
}
