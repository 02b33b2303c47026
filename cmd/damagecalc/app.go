package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/config"
	"github.com/cory-johannsen/damagecalc/internal/format"
	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
	"github.com/cory-johannsen/damagecalc/internal/game/intake"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
	"github.com/cory-johannsen/damagecalc/internal/observability"
	"github.com/cory-johannsen/damagecalc/internal/storage"
	"github.com/cory-johannsen/damagecalc/internal/storage/postgres"
	"github.com/cory-johannsen/damagecalc/internal/storage/redis"
)

// storeOpener connects the configured storage backend. The returned func
// releases it.
type storeOpener func(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, func(), error)

// app carries state shared by every subcommand.
type app struct {
	out        io.Writer
	configPath string
	lang       string
	openStore  storeOpener

	cfg    config.Config
	logger *zap.Logger
	fmt    *format.Formatter
}

func newApp(out io.Writer) *app {
	return &app{out: out, openStore: openStore}
}

// setup loads configuration and builds the logger. It runs before every subcommand.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.fmt = format.ForLanguage(a.lang)
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

// monsters returns the reference table plus any configured extra monsters.
func (a *app) monsters(dir string) (*monster.Database, error) {
	if dir == "" {
		dir = a.cfg.Monsters.Dir
	}
	db, err := monster.LoadDatabase(dir)
	if err != nil {
		return nil, fmt.Errorf("loading monsters: %w", err)
	}
	return db, nil
}

// loadoutSource names where a command reads its loadout from. At most one
// field is set; none means the demonstration loadout.
type loadoutSource struct {
	file  string
	image string
	saved string
}

func (l *loadoutSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&l.file, "loadout", "", "YAML or JSON loadout file")
	cmd.Flags().StringVar(&l.image, "image", "", "equipment screenshot passed to the intake provider")
	cmd.Flags().StringVar(&l.saved, "saved", "", "key of a loadout saved with 'loadout save'")
	cmd.MarkFlagsMutuallyExclusive("loadout", "image", "saved")
}

func (a *app) loadout(ctx context.Context, src loadoutSource) (equipment.Set, error) {
	var (
		set equipment.Set
		err error
	)
	switch {
	case src.file != "":
		set, err = readLoadoutFile(src.file)
	case src.image != "":
		var image []byte
		image, err = os.ReadFile(src.image)
		if err != nil {
			return equipment.Set{}, fmt.Errorf("reading image: %w", err)
		}
		set, err = intake.NewFixed(intake.SampleLoadout()).Detect(ctx, image)
	case src.saved != "":
		var (
			store   storage.Store
			closeFn func()
		)
		if err = a.requirePersistentStore(); err != nil {
			return equipment.Set{}, err
		}
		store, closeFn, err = a.openStore(ctx, a.cfg, a.logger)
		if err != nil {
			return equipment.Set{}, err
		}
		defer closeFn()
		set, err = storage.GetJSON[equipment.Set](ctx, store, src.saved)
	default:
		set = intake.SampleLoadout()
	}
	if err != nil {
		return equipment.Set{}, err
	}
	intake.WarnMismatches(a.logger, set)
	return set, nil
}

// errVolatileStore is returned when a command needs saved loadouts to outlive
// the process but the memory backend is configured.
var errVolatileStore = errors.New("the memory storage backend does not outlive a single command; configure storage.backend as redis or postgres")

func (a *app) requirePersistentStore() error {
	if a.cfg.Storage.Backend == config.BackendMemory {
		return errVolatileStore
	}
	return nil
}

func readLoadoutFile(path string) (equipment.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return equipment.Set{}, fmt.Errorf("reading loadout: %w", err)
	}
	set, err := intake.ParseLoadout(data)
	if err != nil {
		return equipment.Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func (a *app) printLines(lines []format.Line) {
	for _, l := range lines {
		fmt.Fprintf(a.out, "%-20s %s\n", l.Label+":", l.Value)
	}
}

// openStore connects the backend named by cfg.Storage.Backend.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	ns := cfg.Storage.Namespace
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store := redis.NewStore(client, ns)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("storage ready", zap.String("backend", "redis"), zap.String("namespace", ns))
		return store, func() { _ = store.Close() }, nil
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database health check: %w", err)
		}
		logger.Debug("storage ready", zap.String("backend", "postgres"), zap.String("namespace", ns))
		return pool.Store(ns), pool.Close, nil
	default:
		logger.Debug("storage ready", zap.String("backend", "memory"), zap.String("namespace", ns))
		return storage.NewMemory().Namespace(ns), func() {}, nil
	}
}
