package retailer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nguyentranbao-ct/price-bot/internal/models"
)

var (
	ErrNameNotFound  = errors.New("product name not found")
	ErrPriceNotFound = errors.New("product price not found")
)

// ExtractionError reports which selector missed on which retailer page.
type ExtractionError struct {
	Retailer models.Retailer
	Selector string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v (selector %s)", e.Retailer, e.Err, e.Selector)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Details are the fields read from a product page.
type Details struct {
	Name  string
	Price string
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the product name and price from page markup of retailer r.
func (x *Extractor) Extract(r models.Retailer, markup string) (Details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Details{}, fmt.Errorf("parse %s page: %w", r, err)
	}

	set := Lookup(r)
	name, ok := selectText(doc, set.NameSelector)
	if !ok {
		return Details{}, &ExtractionError{Retailer: r, Selector: set.NameSelector, Err: ErrNameNotFound}
	}
	price, ok := selectText(doc, set.PriceSelector)
	if !ok {
		return Details{}, &ExtractionError{Retailer: r, Selector: set.PriceSelector, Err: ErrPriceNotFound}
	}

	return Details{Name: name, Price: price}, nil
}

func selectText(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}
