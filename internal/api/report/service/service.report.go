// Package reportsvc builds the dashboard reporting pipeline: remote
// fetch, normalization, session-scoped snapshot caching, filtering,
// aggregation and export.
package reportsvc

import (
	"fmt"
	"time"

	"treesure/internal/common"
	"treesure/internal/global"
	"treesure/internal/utility"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReportService reads the raw collections and serves normalized,
// aggregated views of them.
type ReportService struct {
	users        *mongo.Collection
	trees        *mongo.Collection
	applications *mongo.Collection
	uploads      *mongo.Collection
	comments     *mongo.Collection
	appointments *mongo.Collection

	cache           *utility.Cache
	fanoutLimit     int
	recencySize     int
	trendWindowDays int
}

// NewReportService resolves the registered collections and wires the
// snapshot cache from the server configuration.
func NewReportService() (*ReportService, error) {
	names := []string{
		global.ColNames.Users,
		global.ColNames.TreeInventory,
		global.ColNames.Applications,
		global.ColNames.Uploads,
		global.ColNames.Comments,
		global.ColNames.Appointments,
	}
	colls := make(map[string]*mongo.Collection, len(names))
	for _, name := range names {
		coll, exist := global.RegistryCollections.Get(name)
		if !exist {
			return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
		}
		colls[name] = coll
	}

	cfg := global.ServerConfig
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	sweep := time.Duration(cfg.CacheSweepMinutes) * time.Minute

	return &ReportService{
		users:           colls[global.ColNames.Users],
		trees:           colls[global.ColNames.TreeInventory],
		applications:    colls[global.ColNames.Applications],
		uploads:         colls[global.ColNames.Uploads],
		comments:        colls[global.ColNames.Comments],
		appointments:    colls[global.ColNames.Appointments],
		cache:           utility.NewCache(ttl, sweep),
		fanoutLimit:     cfg.FetchFanoutLimit,
		recencySize:     cfg.RecencyFeedSize,
		trendWindowDays: cfg.TrendWindowDays,
	}, nil
}

// Close releases the cache janitor.
func (s *ReportService) Close() {
	s.cache.Stop()
}
