package usecase

import (
	"strconv"
	"strings"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
)

type CommandKind int

const (
	CommandHelp CommandKind = iota
	CommandAdd
	CommandList
	CommandRetailerList
	CommandIgnore
)

// Command is a parsed user message. Malformed is set when the command name is
// recognised but its argument is missing or unusable.
type Command struct {
	Kind      CommandKind
	URL       string
	Retailer  models.Retailer
	ProductID int
	Malformed bool
}

// ParseCommand never fails: unrecognised text becomes CommandHelp.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{Kind: CommandHelp}
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	name, arg, hasArg := strings.Cut(head, "#")
	name, _, _ = strings.Cut(name, "@")

	switch name {
	case "add":
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return Command{Kind: CommandAdd, Malformed: true}
		}
		return Command{Kind: CommandAdd, URL: fields[0]}
	case "list":
		return Command{Kind: CommandList}
	case "ignore":
		// Anything after a second '#' is ignored.
		arg, _, _ = strings.Cut(arg, "#")
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if !hasArg || err != nil {
			return Command{Kind: CommandIgnore, Malformed: true}
		}
		return Command{Kind: CommandIgnore, ProductID: id}
	}

	for _, r := range models.Retailers {
		if name == r.String() {
			return Command{Kind: CommandRetailerList, Retailer: r}
		}
	}
	return Command{Kind: CommandHelp}
}
