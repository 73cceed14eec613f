package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/atelierhq/atelier/internal/bridge"
	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/constants"
	"github.com/atelierhq/atelier/internal/export"
	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/server"
	"github.com/atelierhq/atelier/internal/watcher"
)

// State wires the host side of the application together: one store, one
// file handler, one monitor, one catalog builder, and the bridge every
// presentation surface talks through.
type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	WorkspaceName string
	Home          string
	Designs       string

	Store    *metadata.Store
	Handler  *handler.FileHandler
	Builder  *catalog.Builder
	Monitor  *watcher.Monitor
	Bridge   *bridge.Bridge
	Host     *bridge.Host
	Exporter *export.Exporter
	Server   *server.Server

	cancelHost context.CancelFunc
}

func NewState(workspaceOverride string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if workspaceOverride != "" {
		if err := cfg.ActivateWorkspace(workspaceOverride); err != nil {
			return nil, err
		}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	designs := ws.DesignsDir
	if designs == "" {
		designs, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve designs directory: %w", err)
		}
	}
	if err := os.MkdirAll(designs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create designs directory: %w", err)
	}
	ws.DesignsDir = designs

	h := handler.NewFileHandler(designs, ws.ArchivePath(), ws.Extension)
	store := metadata.NewStore(ws.MetadataPath())
	builder := catalog.NewBuilder(h, store)

	window := time.Duration(ws.CoalesceMillis) * time.Millisecond
	monitor, err := watcher.NewMonitor(designs, ws.Extension, window)
	if err != nil {
		return nil, fmt.Errorf("failed to create design monitor: %w", err)
	}

	if _, err := monitor.Reconcile(store); err != nil {
		monitor.Close()
		return nil, fmt.Errorf("failed to reconcile designs: %w", err)
	}

	b := bridge.New()
	host := bridge.NewHost(store, h, builder, b)

	return &State{
		Config:        cfg,
		Workspace:     ws,
		WorkspaceName: cfg.CurrentWorkspace,
		Home:          home,
		Designs:       designs,
		Store:         store,
		Handler:       h,
		Builder:       builder,
		Monitor:       monitor,
		Bridge:        b,
		Host:          host,
		Exporter:      export.NewExporter(h, store),
		Server:        server.New(ws.ServerPort, designs, ws.ArchivePath(), builder),
	}, nil
}

// StartHost runs the host event loop in the background. Call once per
// interactive session; headless commands talk to the store and handler
// directly.
func (s *State) StartHost() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelHost = cancel
	go s.Host.Run(ctx, s.Monitor.Events())
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases the watcher and the bridge. Safe on a nil state.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.cancelHost != nil {
		s.cancelHost()
		s.cancelHost = nil
	}
	if s.Monitor != nil {
		if err := s.Monitor.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Monitor = nil
	}
	if s.Bridge != nil {
		s.Bridge.Close()
		s.Bridge = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
