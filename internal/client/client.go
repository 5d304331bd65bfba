// Package client assembles the planner core for a UI to embed: prefs,
// identity, the gateway transport chosen by config, and the cache.
package client

import (
	"fmt"

	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/config"
	"plan2read/internal/db"
	"plan2read/internal/gateway"
	"plan2read/internal/identity"
	"plan2read/internal/plan"
	"plan2read/internal/planner"
	"plan2read/internal/prefs"
)

type Client struct {
	UserID string
	Prefs  prefs.Store
	State  *planner.State

	Planner    *planner.Repository
	Community  *planner.Community
	Discussion *planner.Discussion

	close func() error
}

func New(cfg config.Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := openPrefs(cfg.PrefsPath)
	if err != nil {
		return nil, err
	}

	ids := identity.Generator{}
	userID, err := identity.Provider{Prefs: store, IDs: ids}.UserID()
	if err != nil {
		return nil, err
	}

	transport, closeFn, err := newTransport(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("planner client ready",
		zap.String("gateway", cfg.GatewayMode),
		zap.String("user_id", userID))

	remote := gateway.New(transport, log)
	state := planner.NewState()
	repo := &planner.Repository{
		Remote: remote,
		State:  state,
		Prefs:  store,
		IDs:    ids,
		UserID: userID,
		Log:    log,
	}

	return &Client{
		UserID:    userID,
		Prefs:     store,
		State:     state,
		Planner:   repo,
		Community: &planner.Community{Repo: repo},
		Discussion: &planner.Discussion{
			Remote: remote,
			State:  state,
			IDs:    ids,
			UserID: userID,
			Log:    log,
		},
		close: closeFn,
	}, nil
}

func (c *Client) Theme() prefs.Theme { return prefs.LoadTheme(c.Prefs) }

func (c *Client) ToggleTheme() (prefs.Theme, error) { return prefs.ToggleTheme(c.Prefs) }

// Close releases the embedded database, if one was opened.
func (c *Client) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

func openPrefs(path string) (prefs.Store, error) {
	if path == "" {
		return prefs.NewMemory(), nil
	}
	f, err := prefs.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func newTransport(cfg config.Config, log *zap.Logger) (gateway.Transport, func() error, error) {
	switch cfg.GatewayMode {
	case config.GatewayHTTP:
		return gateway.NewHTTPTransport(cfg.GatewayURL, cfg.GatewayTimeout), nil, nil

	case config.GatewayEmbedded:
		if cfg.DatabaseURL == "" {
			return &gateway.EmbeddedTransport{
				Dispatcher: &api.Dispatcher{Store: plan.NewMemoryStore(), Log: log},
			}, nil, nil
		}
		gdb, err := db.Connect(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrateAndIndexes(gdb); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return &gateway.EmbeddedTransport{
			Dispatcher: &api.Dispatcher{Store: &plan.PostgresStore{DB: gdb}, Log: log},
		}, sqlDB.Close, nil

	case config.GatewayMemory:
		return gateway.NewMemoryTransport(log), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown gateway mode %q", cfg.GatewayMode)
}
