package retailer

import (
	"testing"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	c := NewClassifier(false)

	tests := []struct {
		name     string
		raw      string
		retailer models.Retailer
		path     string
		err      error
	}{
		{
			name:     "flipkart product",
			raw:      "https://www.flipkart.com/p/itm123",
			retailer: models.RetailerFlipkart,
			path:     "p/itm123",
		},
		{
			name:     "reliance product with query",
			raw:      "https://www.reliancedigital.in/apple-iphone/p/491?utm=1",
			retailer: models.RetailerReliance,
			path:     "apple-iphone/p/491?utm=1",
		},
		{
			name:     "both names resolve to flipkart",
			raw:      "https://www.reliancedigital.in/p/1?ref=flipkart",
			retailer: models.RetailerFlipkart,
			path:     "p/1?ref=flipkart",
		},
		{
			name:     "name in query string counts",
			raw:      "https://example.com/item?from=reliance",
			retailer: models.RetailerReliance,
			path:     "item?from=reliance",
		},
		{
			name:     "no path",
			raw:      "https://www.flipkart.com",
			retailer: models.RetailerFlipkart,
			path:     "",
		},
		{name: "http scheme", raw: "http://www.flipkart.com/p/itm123", err: ErrMissingScheme},
		{name: "no scheme", raw: "www.flipkart.com/p/itm123", err: ErrMissingScheme},
		{name: "upper case scheme", raw: "HTTPS://www.flipkart.com/p/1", err: ErrMissingScheme},
		{name: "empty", raw: "", err: ErrMissingScheme},
		{name: "unknown retailer", raw: "https://www.amazon.in/dp/B0", err: ErrUnknownRetailer},
		{name: "case sensitive", raw: "https://www.FLIPKART.com/p/1", err: ErrUnknownRetailer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(tt.raw)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.retailer, got.Retailer)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestClassifyStrict(t *testing.T) {
	t.Parallel()
	c := NewClassifier(true)

	got, err := c.Classify("https://www.flipkart.com/p/itm123")
	require.NoError(t, err)
	assert.Equal(t, models.RetailerFlipkart, got.Retailer)

	got, err = c.Classify("https://dl.flipkart.com/s/abc")
	require.NoError(t, err)
	assert.Equal(t, models.RetailerFlipkart, got.Retailer)
	assert.Equal(t, "s/abc", got.Path)

	got, err = c.Classify("https://reliancedigital.in/p/1")
	require.NoError(t, err)
	assert.Equal(t, models.RetailerReliance, got.Retailer)

	_, err = c.Classify("https://example.com/item?from=reliance")
	assert.ErrorIs(t, err, ErrUnknownRetailer)

	_, err = c.Classify("https://notflipkart.com/p/1")
	assert.ErrorIs(t, err, ErrUnknownRetailer)

	_, err = c.Classify("http://www.flipkart.com/p/1")
	assert.ErrorIs(t, err, ErrMissingScheme)
}

func TestClassificationProduct(t *testing.T) {
	t.Parallel()
	got, err := NewClassifier(false).Classify("https://www.flipkart.com/p/itm123")
	require.NoError(t, err)

	p := got.Product(4242)
	assert.Equal(t, models.Product{
		ProductID: 4242,
		Retailer:  models.RetailerFlipkart,
		BaseURL:   "https://www.flipkart.com/",
		Path:      "p/itm123",
	}, p)
	assert.Equal(t, "https://www.flipkart.com/p/itm123", p.URL())
}

func TestLookup(t *testing.T) {
	t.Parallel()
	for _, r := range models.Retailers {
		set := Lookup(r)
		assert.NotEmpty(t, set.BaseURL, r.String())
		assert.NotEmpty(t, set.NameSelector, r.String())
		assert.NotEmpty(t, set.PriceSelector, r.String())
	}
	assert.Equal(t, "www.reliancedigital.in", Lookup(models.RetailerReliance).Host())
	assert.Equal(t, "flipkart.com", Lookup(models.RetailerFlipkart).Domain())
}
