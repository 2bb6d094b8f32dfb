package retailer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
)

const schemePrefix = "https://"

var (
	ErrMissingScheme   = errors.New("url must start with " + schemePrefix)
	ErrUnknownRetailer = errors.New("url does not belong to a supported retailer")
)

// Classification is the outcome of recognising a product URL.
type Classification struct {
	Retailer models.Retailer
	// Path is the part after scheme and host, query string included.
	Path string
}

// Product builds the watchlist entry for this classification.
func (c Classification) Product(id int) models.Product {
	return models.Product{
		ProductID: id,
		Retailer:  c.Retailer,
		BaseURL:   Lookup(c.Retailer).BaseURL,
		Path:      c.Path,
	}
}

type Classifier struct {
	strict bool
}

// NewClassifier returns a classifier. With strict set, the URL host must belong to the
// retailer's domain; otherwise the retailer name anywhere in the URL is enough.
func NewClassifier(strict bool) *Classifier {
	return &Classifier{strict: strict}
}

func (c *Classifier) Classify(raw string) (Classification, error) {
	if !strings.HasPrefix(raw, schemePrefix) {
		return Classification{}, ErrMissingScheme
	}

	r, err := c.detect(raw)
	if err != nil {
		return Classification{}, err
	}

	return Classification{
		Retailer: r,
		Path:     productPath(raw),
	}, nil
}

func (c *Classifier) detect(raw string) (models.Retailer, error) {
	if !c.strict {
		// flipkart wins when both names appear
		for _, r := range models.Retailers {
			if strings.Contains(raw, r.String()) {
				return r, nil
			}
		}
		return 0, ErrUnknownRetailer
	}

	u, err := url.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnknownRetailer, err)
	}
	host := strings.ToLower(u.Hostname())
	for _, r := range models.Retailers {
		domain := Lookup(r).Domain()
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: host %q", ErrUnknownRetailer, host)
}

// productPath drops "https:", the empty segment and the host.
func productPath(raw string) string {
	parts := strings.SplitN(raw, "/", 4)
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}
