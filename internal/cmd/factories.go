package cmd

import (
	"fmt"

	"tideline/internal/adapters/remote"
	"tideline/internal/adapters/simulator"
	"tideline/internal/adapters/storage"
	"tideline/internal/config"
	"tideline/internal/logging"
	"tideline/internal/paths"
	"tideline/internal/ports"
	"tideline/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	GameService *services.GameService

	// Adapters
	Provider ports.ScenarioProvider
	Store    ports.SessionStore
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(cfg config.Config) (*Container, error) {
	store, err := storage.NewSQLiteStore(paths.GetDBPath())
	if err != nil {
		return nil, err
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	gameService := services.NewGameService(store, provider, services.GameServiceOptions{
		CallTimeout: cfg.ProviderTimeout,
	})

	return &Container{
		GameService: gameService,
		Provider:    provider,
		Store:       store,
	}, nil
}

// NewProvider builds the scenario provider selected by cfg
func NewProvider(cfg config.Config) (ports.ScenarioProvider, error) {
	switch cfg.Provider {
	case config.ProviderLocal, "":
		logging.Logger.Debug("Using local simulator", "latency", cfg.SimulatorLatency)
		return simulator.NewSimulator(simulator.DefaultCatalog(), cfg.SimulatorLatency), nil
	case config.ProviderRemote:
		logging.Logger.Debug("Using remote provider", "url", cfg.ProviderURL, "timeout", cfg.ProviderTimeout)
		return remote.NewClient(cfg.ProviderURL, cfg.ProviderTimeout), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
