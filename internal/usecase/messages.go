package usecase

import (
	"context"
	"errors"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/fetcher"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
	"github.com/nguyentranbao-ct/price-bot/pkg/tmplx"
)

const (
	welcomeText = `
*Welcome to Price scraper service bot*
_We currently only fetch product prices from Flipkart and Reliance Digital._

Choose the commands:

*/add <product-url>* -- To add the product for monitoring the price
*/list* -- To list all your products
*/reliance* -- To list all your products added from reliance
*/flipkart* -- To list all your products added from flipkart
`

	linkErrorText = `
*An error occured while getting the link of the product.*
The error can usually occur due to the following reasons:

1) _The link was not provided in a proper format_
2) _The link provided was not of Flipkart or Reliance Digital_
`

	botErrorText = `
*An error occurred in the bot* :/
Please try again
`

	addedText         = "Product details added successfully ✓"
	deleteErrorText   = "*Product could not be deleted!*\n_Check the command properly_"
	notMonitoredText  = "Product is already not monitored."
	ignoredText       = "Product is ignored from monitoring."
	emptyListText     = "Product list is empty"
	allProductsHeader = "*Your products*"
)

var productListTemplate = tmplx.MustParse("product_list", `{{.Header}}
 -------------------------------------
{{range $i, $s := .Snapshots}}{{inc $i}}) Website: {{$s.Product.Retailer}}
{{if $s.Err}}Could not fetch product details ({{reason $s.Err}})
Link: {{markdown $s.Product.URL}}{{else}}Product name: [{{linkText $s.Details.Name}}]({{linkURL $s.Product.URL}})
Price: {{markdown $s.Details.Price}}{{end}}

To Ignore the product, Type: /ignore#{{$s.Product.ProductID}}

{{end}}`, tmplx.WithTemplateFunc("reason", failureReason))

var retailerHeaderTemplate = tmplx.MustParse("retailer_header",
	`*Your products added from {{.}}:*`)

type productListData struct {
	Header    string
	Snapshots []Snapshot
}

func renderProductList(filter *models.Retailer, snapshots []Snapshot) (string, error) {
	header := allProductsHeader
	if filter != nil {
		h, err := retailerHeaderTemplate.Render(filter.String())
		if err != nil {
			return "", err
		}
		header = h
	}
	return productListTemplate.Render(productListData{
		Header:    header,
		Snapshots: snapshots,
	})
}

// failureReason is the short explanation shown next to a product that could not be read.
func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, fetcher.ErrUnexpectedStatus):
		return "page unavailable"
	case errors.Is(err, retailer.ErrNameNotFound):
		return "name not found"
	case errors.Is(err, retailer.ErrPriceNotFound):
		return "price not found"
	default:
		return "request failed"
	}
}
