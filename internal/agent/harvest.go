package agent

import (
	"context"
	"strings"
	"time"

	config "github.com/mwantia/lentil/internal/config/server"
	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/mwantia/lentil/pkg/log"
)

const defaultHarvestInterval = 5 * time.Minute

// HarvestSource lists the tags that are currently due for harvesting
type HarvestSource interface {
	HarvestableTags(ctx context.Context) ([]models.Tag, error)
}

// HarvestScanner periodically reports the harvestable tag set.
// When resolved from the service container its fields are injected and
// Init derives the interval from the configured harvest_interval.
type HarvestScanner struct {
	Source HarvestSource            `fabric:"inject"`
	Log    log.LoggerService        `fabric:"logger:harvest"`
	Config *config.BaseServerConfig `fabric:"inject"`

	interval time.Duration
}

func NewHarvestScanner(source HarvestSource, l log.LoggerService, interval time.Duration) *HarvestScanner {
	return &HarvestScanner{
		Source:   source,
		Log:      l,
		interval: interval,
	}
}

func (hs *HarvestScanner) Init(ctx context.Context) error {
	if hs.interval > 0 {
		return nil
	}

	hs.interval = defaultHarvestInterval
	if hs.Config == nil {
		return nil
	}

	interval, err := time.ParseDuration(hs.Config.HarvestInterval)
	if err != nil || interval <= 0 {
		hs.Log.Warn("Invalid harvest interval '%s', using %s", hs.Config.HarvestInterval, defaultHarvestInterval)
		return nil
	}

	hs.interval = interval
	return nil
}

func (hs *HarvestScanner) Cleanup(ctx context.Context) error {
	return nil
}

// Interval returns the time between two scans
func (hs *HarvestScanner) Interval() time.Duration {
	return hs.interval
}

// Run scans once immediately and then on every tick until ctx is cancelled
func (hs *HarvestScanner) Run(ctx context.Context) {
	if hs.interval <= 0 {
		hs.Init(ctx)
	}

	ticker := time.NewTicker(hs.interval)
	defer ticker.Stop()

	for {
		if _, err := hs.Scan(ctx); err != nil && ctx.Err() == nil {
			hs.Log.Error("Harvest scan failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Scan fetches the harvestable tags and logs them
func (hs *HarvestScanner) Scan(ctx context.Context) ([]models.Tag, error) {
	tags, err := hs.Source.HarvestableTags(ctx)
	if err != nil {
		return nil, err
	}

	if len(tags) == 0 {
		hs.Log.Info("No harvestable tags found")
		return tags, nil
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	hs.Log.Info("Found %d harvestable tags: %s", len(tags), strings.Join(names, ", "))

	return tags, nil
}
