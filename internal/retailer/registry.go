// Package retailer holds the per-site knowledge: where a retailer lives, how its
// URLs are recognised and where product fields sit on its pages.
package retailer

import (
	"net/url"
	"strings"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
)

// SelectorSet describes how to read a product page of one retailer.
type SelectorSet struct {
	BaseURL       string
	NameSelector  string
	PriceSelector string
}

// Host returns the host part of BaseURL.
func (s SelectorSet) Host() string {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Domain returns the registrable domain of BaseURL, e.g. flipkart.com.
func (s SelectorSet) Domain() string {
	return strings.TrimPrefix(s.Host(), "www.")
}

var selectors = [len(models.Retailers)]SelectorSet{
	models.RetailerFlipkart: {
		BaseURL:       "https://www.flipkart.com/",
		NameSelector:  `span[class="B_NuCI"]`,
		PriceSelector: `div[class="_30jeq3 _16Jk6d"]`,
	},
	models.RetailerReliance: {
		BaseURL:       "https://www.reliancedigital.in/",
		NameSelector:  `h1[class="pdp__title mb__20"]`,
		PriceSelector: `span[class="pdp__offerPrice"] span:nth-child(2)`,
	},
}

// Lookup returns the selector profile of r. Retailer values are only produced by
// models.ParseRetailer and the classifier, so r is always in range.
func Lookup(r models.Retailer) SelectorSet {
	return selectors[r]
}
