// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the marketplace.
// It tracks order creation, payment outcomes, subscription activity and the
// health of the vendor pipeline (pending applications, live listings).
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderCreatedTotal      *Counter
	orderAmountTotal       *Counter
	paymentTotal           *Counter
	subscriptionTotal      *Counter
	listingPublishedTotal  *Counter
	onboardingStepTotal    *Counter

	// Gauge metrics (point-in-time values)
	pendingApplications *Gauge
	activeListings      *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	marketplaceProvider MarketplaceMetricsProvider
}

// MarketplaceMetricsProvider provides marketplace state for periodic metrics
// collection. This interface allows the telemetry layer to query the vendor
// pipeline without depending on the domain packages directly.
type MarketplaceMetricsProvider interface {
	// GetPendingApplicationCount returns the number of vendor profiles awaiting review
	GetPendingApplicationCount(ctx context.Context) (int64, error)

	// GetActiveListingCountByEntry returns the number of active listings per catalog entry
	GetActiveListingCountByEntry(ctx context.Context) (map[string]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter               metric.Meter
	Logger              *zap.Logger
	CollectInterval     time.Duration // Default: 5 minutes
	MarketplaceProvider MarketplaceMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:               cfg.Meter,
		logger:              logger,
		stopChan:            make(chan struct{}),
		marketplaceProvider: cfg.MarketplaceProvider,
	}

	// Initialize counter metrics
	var err error

	// Order metrics
	bm.orderCreatedTotal, err = NewCounter(
		cfg.Meter,
		"markethub_order_created_total",
		"Total number of orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderAmountTotal, err = NewCounter(
		cfg.Meter,
		"markethub_order_amount_total",
		"Total order amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Payment metrics
	bm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"markethub_payment_total",
		"Total number of payment transactions",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	// Subscription metrics
	bm.subscriptionTotal, err = NewCounter(
		cfg.Meter,
		"markethub_subscription_total",
		"Total number of subscriptions activated",
		"{subscriptions}",
	)
	if err != nil {
		return nil, err
	}

	// Listing metrics
	bm.listingPublishedTotal, err = NewCounter(
		cfg.Meter,
		"markethub_listing_published_total",
		"Total number of listings published",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	// Onboarding metrics
	bm.onboardingStepTotal, err = NewCounter(
		cfg.Meter,
		"markethub_onboarding_step_total",
		"Total number of onboarding step submissions",
		"{submissions}",
	)
	if err != nil {
		return nil, err
	}

	// Vendor pipeline gauge metrics
	bm.pendingApplications, err = NewGauge(
		cfg.Meter,
		"markethub_pending_applications",
		"Number of vendor applications awaiting review",
		"{applications}",
	)
	if err != nil {
		return nil, err
	}

	bm.activeListings, err = NewGauge(
		cfg.Meter,
		"markethub_active_listings",
		"Number of active listings per catalog entry",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderCreated records an order creation event.
// This should be called from the application layer when an order is created.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, vendorID uuid.UUID, entryID string) {
	bm.orderCreatedTotal.Inc(ctx,
		AttrVendorID.String(vendorID.String()),
		AttrEntryID.String(entryID),
	)
}

// RecordOrderAmount records the order amount.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordOrderAmount(ctx context.Context, vendorID uuid.UUID, amountCents int64) {
	bm.orderAmountTotal.Add(ctx, amountCents,
		AttrVendorID.String(vendorID.String()),
	)
}

// RecordOrderWithAmount is a convenience method that records both order count and amount.
func (bm *BusinessMetrics) RecordOrderWithAmount(ctx context.Context, vendorID uuid.UUID, entryID string, amount decimal.Decimal) {
	bm.RecordOrderCreated(ctx, vendorID, entryID)

	// Convert to cents (multiply by 100)
	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordOrderAmount(ctx, vendorID, amountCents)
}

// =============================================================================
// Payment Metrics
// =============================================================================

// PaymentOutcome represents the outcome of a payment for metrics labeling.
type PaymentOutcome string

const (
	PaymentOutcomeSettled  PaymentOutcome = "settled"
	PaymentOutcomeFailed   PaymentOutcome = "failed"
	PaymentOutcomeRefunded PaymentOutcome = "refunded"
)

// RecordPayment records a payment transition.
// This should be called when a payment settles, fails or is refunded.
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, outcome PaymentOutcome) {
	bm.paymentTotal.Inc(ctx,
		AttrPaymentStatus.String(string(outcome)),
	)
}

// =============================================================================
// Subscription Metrics
// =============================================================================

// RecordSubscription records a subscription activation.
func (bm *BusinessMetrics) RecordSubscription(ctx context.Context, tier, cycle string) {
	bm.subscriptionTotal.Inc(ctx,
		AttrPlanTier.String(tier),
		AttrBillingCycle.String(cycle),
	)
}

// =============================================================================
// Listing Metrics
// =============================================================================

// RecordListingPublished records a listing publication.
func (bm *BusinessMetrics) RecordListingPublished(ctx context.Context, entryID string) {
	bm.listingPublishedTotal.Inc(ctx,
		AttrEntryID.String(entryID),
	)
}

// =============================================================================
// Onboarding Metrics
// =============================================================================

// RecordOnboardingStep records a successful onboarding step submission.
func (bm *BusinessMetrics) RecordOnboardingStep(ctx context.Context, step int) {
	bm.onboardingStepTotal.Inc(ctx,
		AttrOnboardingStep.Int(step),
	)
}

// =============================================================================
// Vendor Pipeline Gauges
// =============================================================================

// RecordPendingApplications records the number of vendor applications awaiting review.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordPendingApplications(ctx context.Context, count int64) {
	bm.pendingApplications.Record(ctx, count)
}

// RecordActiveListings records the number of active listings for a catalog entry.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordActiveListings(ctx context.Context, entryID string, count int64) {
	bm.activeListings.Record(ctx, count,
		AttrEntryID.String(entryID),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects vendor pipeline metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectPipelineMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectPipelineMetrics(ctx)
		}
	}
}

// collectPipelineMetrics collects vendor pipeline gauge metrics.
func (bm *BusinessMetrics) collectPipelineMetrics(ctx context.Context) {
	if bm.marketplaceProvider == nil {
		bm.logger.Debug("No marketplace provider configured, skipping pipeline metrics collection")
		return
	}

	pending, err := bm.marketplaceProvider.GetPendingApplicationCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get pending application count", zap.Error(err))
	} else {
		bm.RecordPendingApplications(ctx, pending)
	}

	activeByEntry, err := bm.marketplaceProvider.GetActiveListingCountByEntry(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get active listing counts", zap.Error(err))
	} else {
		for entryID, count := range activeByEntry {
			bm.RecordActiveListings(ctx, entryID, count)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
