package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/lentil/internal/bootstrap"
	config "github.com/mwantia/lentil/internal/config/server"
	"github.com/mwantia/lentil/internal/tagging"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
)

type LentilAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg   *config.BaseServerConfig
	sc    *container.ServiceContainer
	log   log.LoggerService
	store store.MetadataStore
}

func NewAgent(cfg *config.BaseServerConfig) *LentilAgent {
	return &LentilAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("lentil", cfg.Log),
	}
}

func (la *LentilAgent) setupStore(ctx context.Context) error {
	la.log.Debug("Opening '%s' metadata store...", la.cfg.Metadata.Type)

	st, err := bootstrap.OpenMigratedStore(ctx, la.cfg.Metadata, la.log)
	if err != nil {
		return err
	}

	la.store = st
	return nil
}

func (la *LentilAgent) setupServices() error {
	errs := container.Errors{}

	la.sc.AddTagProcessor(log.NewLoggerTagProcessor())

	la.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[*log.LoggerServiceImpl](la.sc,
		container.With[log.LoggerService](),
		container.WithInstance(la.log)))

	la.log.Debug("Registering 'BaseServerConfig'...")
	errs.Add(container.Register[*config.BaseServerConfig](la.sc,
		container.WithInstance(la.cfg)))

	la.log.Debug("Registering 'MetadataStore'...")
	errs.Add(container.Register[*store.GormStore](la.sc,
		container.With[store.MetadataStore](),
		container.With[tagging.Store](),
		container.WithInstance(la.store)))

	la.log.Debug("Registering 'TaggingService'...")
	errs.Add(container.Register[*tagging.Service](la.sc,
		container.With[HarvestSource]()))

	la.log.Debug("Registering 'HarvestScanner'...")
	errs.Add(container.Register[*HarvestScanner](la.sc,
		container.AsSingleton()))

	return errs.Errors()
}

// resolveScanner builds the harvest scanner with its source, logger and config injected
func (la *LentilAgent) resolveScanner(ctx context.Context) (*HarvestScanner, error) {
	return container.Resolve[*HarvestScanner](ctx, la.sc)
}

func (la *LentilAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	la.mutex.Lock()

	if err := la.setupStore(ctx); err != nil {
		la.mutex.Unlock()
		return err
	}

	if err := la.setupServices(); err != nil {
		la.mutex.Unlock()
		la.store.Close()
		return fmt.Errorf("failed to register services: %w", err)
	}

	scanner, err := la.resolveScanner(ctx)
	if err != nil {
		la.mutex.Unlock()
		la.store.Close()
		return fmt.Errorf("failed to resolve harvest scanner: %w", err)
	}

	la.wait.Add(1)
	go func() {
		defer la.wait.Done()
		scanner.Run(ctx)
	}()

	la.mutex.Unlock()
	la.log.Info("Agent started (store: %s, harvest interval: %s)", la.cfg.Metadata.Type, scanner.Interval())
	<-ctx.Done()

	timeout, err := time.ParseDuration(la.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	la.wait.Wait()

	if err := la.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if err := la.store.Close(); err != nil {
		return fmt.Errorf("failed to close metadata store: %w", err)
	}

	la.log.Info("Agent stopped")
	return nil
}
