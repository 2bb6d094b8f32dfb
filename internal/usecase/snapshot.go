package usecase

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/fetcher"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
	"github.com/nguyentranbao-ct/price-bot/pkg/util"
)

// Snapshot is the current name and price of one watched product, or the reason
// they could not be read.
type Snapshot struct {
	Product models.Product
	Details retailer.Details
	Err     error
}

type snapshotter struct {
	fetcher        fetcher.Fetcher
	extractor      ProductExtractor
	maxConcurrency int
	fetchTimeout   time.Duration
	fetchDuration  *prometheus.HistogramVec
}

func newSnapshotter(pageFetcher fetcher.Fetcher, extractor ProductExtractor, maxConcurrency int, fetchTimeout time.Duration) (*snapshotter, error) {
	hist, err := util.GetHistogramVec("product_fetch_duration_seconds", "status", "retailer")
	if err != nil {
		return nil, err
	}
	return &snapshotter{
		fetcher:        pageFetcher,
		extractor:      extractor,
		maxConcurrency: max(maxConcurrency, 1),
		fetchTimeout:   fetchTimeout,
		fetchDuration:  hist,
	}, nil
}

// Collect snapshots every product with at most maxConcurrency fetches in flight.
// Results keep the order of products.
func (s *snapshotter) Collect(ctx context.Context, products []models.Product) []Snapshot {
	snapshots := make([]Snapshot, len(products))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, p := range products {
		g.Go(func() error {
			snapshots[i] = s.snapshot(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return snapshots
}

func (s *snapshotter) snapshot(ctx context.Context, p models.Product) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	details, err := s.read(ctx, p)
	status := "success"
	if err != nil {
		status = "error"
		log.Warnw(ctx, "could not read product", "product_id", p.ProductID, "url", p.URL(), "error", err)
	}
	s.fetchDuration.WithLabelValues(status, p.Retailer.String()).Observe(time.Since(start).Seconds())

	return Snapshot{Product: p, Details: details, Err: err}
}

func (s *snapshotter) read(ctx context.Context, p models.Product) (retailer.Details, error) {
	body, err := s.fetcher.Fetch(ctx, p.URL())
	if err != nil {
		return retailer.Details{}, err
	}
	return s.extractor.Extract(p.Retailer, body)
}
