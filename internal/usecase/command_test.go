package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Command
	}{
		{"plain text", "hello", Command{Kind: CommandHelp}},
		{"empty", "", Command{Kind: CommandHelp}},
		{"unknown command", "/start", Command{Kind: CommandHelp}},
		{"list", "/list", Command{Kind: CommandList}},
		{"list with mention", "/list@PriceBot", Command{Kind: CommandList}},
		{"list surrounded by spaces", "  /list\n", Command{Kind: CommandList}},
		{"flipkart", "/flipkart", Command{Kind: CommandRetailerList, Retailer: models.RetailerFlipkart}},
		{"reliance with mention", "/reliance@PriceBot", Command{Kind: CommandRetailerList, Retailer: models.RetailerReliance}},
		{"add", "/add https://www.flipkart.com/p/1", Command{Kind: CommandAdd, URL: "https://www.flipkart.com/p/1"}},
		{"add extra spaces", "/add   https://www.flipkart.com/p/1  trailing", Command{Kind: CommandAdd, URL: "https://www.flipkart.com/p/1"}},
		{"add with mention", "/add@PriceBot https://x.reliance.in/a", Command{Kind: CommandAdd, URL: "https://x.reliance.in/a"}},
		{"add without url", "/add", Command{Kind: CommandAdd, Malformed: true}},
		{"add with blank url", "/add   ", Command{Kind: CommandAdd, Malformed: true}},
		{"ignore", "/ignore#1234", Command{Kind: CommandIgnore, ProductID: 1234}},
		{"ignore with mention", "/ignore@PriceBot#1234", Command{Kind: CommandIgnore, ProductID: 1234}},
		{"ignore without id", "/ignore", Command{Kind: CommandIgnore, Malformed: true}},
		{"ignore non integer", "/ignore#abc", Command{Kind: CommandIgnore, Malformed: true}},
		{"ignore empty id", "/ignore#", Command{Kind: CommandIgnore, Malformed: true}},
		{"ignore extra segments", "/ignore#12#3", Command{Kind: CommandIgnore, ProductID: 12}},
		{"ignore empty first segment", "/ignore##3", Command{Kind: CommandIgnore, Malformed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.text))
		})
	}
}
