// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormMarketplaceMetricsProvider implements MarketplaceMetricsProvider using GORM.
// It queries the vendor_profiles and listings tables directly for aggregated metrics.
type GormMarketplaceMetricsProvider struct {
	db *gorm.DB
}

// NewGormMarketplaceMetricsProvider creates a new GormMarketplaceMetricsProvider.
func NewGormMarketplaceMetricsProvider(db *gorm.DB) *GormMarketplaceMetricsProvider {
	return &GormMarketplaceMetricsProvider{db: db}
}

// GetPendingApplicationCount returns the number of vendor profiles awaiting review.
func (p *GormMarketplaceMetricsProvider) GetPendingApplicationCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("vendor_profiles").
		Where("status = ?", "pending").
		Count(&count).Error

	return count, err
}

// GetActiveListingCountByEntry returns the number of active listings per catalog entry.
func (p *GormMarketplaceMetricsProvider) GetActiveListingCountByEntry(ctx context.Context) (map[string]int64, error) {
	type result struct {
		EntryID string `gorm:"column:entry_id"`
		Count   int64  `gorm:"column:count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("listings").
		Select("entry_id, COUNT(*) as count").
		Where("status = ?", "active").
		Group("entry_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[string]int64, len(results))
	for _, r := range results {
		m[r.EntryID] = r.Count
	}

	return m, nil
}
