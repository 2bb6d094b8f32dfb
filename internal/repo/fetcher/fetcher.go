// Package fetcher downloads retailer product pages.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/cache"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
	"github.com/nguyentranbao-ct/price-bot/pkg/util"
	"golang.org/x/sync/singleflight"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

type Fetcher interface {
	// Fetch returns the page body at url.
	Fetch(ctx context.Context, url string) (string, error)
}

type pageFetcher struct {
	client *resty.Client
	cache  cache.PageCache
	group  singleflight.Group
}

func NewPageFetcher(conf *config.Config, pageCache cache.PageCache) Fetcher {
	client := util.NewRestyClient(util.RestyOptions{
		Timeout:    conf.Scraper.FetchTimeout,
		RetryCount: conf.Scraper.RetryCount,
		UserAgent:  conf.Scraper.UserAgent,
	})
	client.SetHeaders(map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-IN,en;q=0.9",
	})
	return newPageFetcher(client, pageCache)
}

func newPageFetcher(client *resty.Client, pageCache cache.PageCache) *pageFetcher {
	if pageCache == nil {
		pageCache = cache.NewNopCache()
	}
	return &pageFetcher{
		client: client,
		cache:  pageCache,
	}
}

// Fetch collapses concurrent requests for the same url into one download.
// Each caller still waits no longer than its own context allows.
func (f *pageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if body, ok, err := f.cache.Get(ctx, url); err != nil {
		log.Warnw(ctx, "page cache read failed", "url", url, "error", err)
	} else if ok {
		return body, nil
	}

	ch := f.group.DoChan(url, func() (any, error) {
		return f.download(context.WithoutCancel(ctx), url)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// download runs on behalf of every waiter, so ctx is detached from the first
// caller's cancellation and only the client timeout bounds each attempt.
func (f *pageFetcher) download(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	body := resp.String()
	if err := f.cache.Set(ctx, url, body); err != nil {
		log.Warnw(ctx, "page cache write failed", "url", url, "error", err)
	}
	return body, nil
}
