package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/fetcher"
	"github.com/nguyentranbao-ct/price-bot/internal/repository"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

// maxAddAttempts bounds re-allocation when a concurrent add claims the drawn id.
const maxAddAttempts = 3

type CommandUsecase interface {
	// HandleMessage turns one user message into the notifications to send back.
	// On infrastructure failure it still returns the generic error notification
	// together with the error.
	HandleMessage(ctx context.Context, msg models.IncomingMessage) ([]models.Notification, error)
	// Inspect classifies and snapshots a single product url without storing it.
	Inspect(ctx context.Context, rawURL string) (Snapshot, error)
}

type commandUsecase struct {
	repo       repository.WatchlistRepository
	classifier URLClassifier
	allocator  IDAllocator
	snapshots  *snapshotter
}

func NewCommandUsecase(
	conf *config.Config,
	repo repository.WatchlistRepository,
	pageFetcher fetcher.Fetcher,
	classifier URLClassifier,
	extractor ProductExtractor,
	allocator IDAllocator,
) (CommandUsecase, error) {
	snapshots, err := newSnapshotter(pageFetcher, extractor, conf.Scraper.MaxConcurrency, conf.Scraper.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshotter: %w", err)
	}
	return &commandUsecase{
		repo:       repo,
		classifier: classifier,
		allocator:  allocator,
		snapshots:  snapshots,
	}, nil
}

func (uc *commandUsecase) HandleMessage(ctx context.Context, msg models.IncomingMessage) ([]models.Notification, error) {
	ctx = log.WithFields(ctx, "sender_id", msg.SenderID)
	cmd := ParseCommand(msg.Text)

	var (
		texts []string
		err   error
	)
	switch cmd.Kind {
	case CommandAdd:
		texts, err = uc.add(ctx, msg, cmd)
	case CommandList:
		texts, err = uc.list(ctx, msg.SenderID, nil)
	case CommandRetailerList:
		texts, err = uc.list(ctx, msg.SenderID, &cmd.Retailer)
	case CommandIgnore:
		texts, err = uc.ignore(ctx, msg.SenderID, cmd)
	default:
		texts = []string{welcomeText}
	}
	if err != nil {
		return []models.Notification{models.NewNotification(msg.SenderID, botErrorText)}, err
	}

	notifications := make([]models.Notification, 0, len(texts))
	for _, text := range texts {
		notifications = append(notifications, models.NewNotification(msg.SenderID, text))
	}
	return notifications, nil
}

func (uc *commandUsecase) add(ctx context.Context, msg models.IncomingMessage, cmd Command) ([]string, error) {
	if cmd.Malformed {
		return []string{linkErrorText}, nil
	}

	class, err := uc.classifier.Classify(cmd.URL)
	if errors.Is(err, retailer.ErrMissingScheme) || errors.Is(err, retailer.ErrUnknownRetailer) {
		log.Infow(ctx, "rejected product link", "url", cmd.URL, "reason", err)
		return []string{linkErrorText}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to classify url: %w", err)
	}

	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		existing, err := uc.existingIDs(ctx, msg.SenderID)
		if err != nil {
			return nil, err
		}

		id, err := uc.allocator.Allocate(existing)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate product id: %w", err)
		}

		err = uc.repo.UpsertProduct(ctx, msg.SenderID, msg.SenderName, class.Product(id))
		if errors.Is(err, models.ErrProductIDTaken) {
			log.Debugw(ctx, "product id claimed concurrently, retrying", "product_id", id, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to add product: %w", err)
		}

		log.Infow(ctx, "product added", "product_id", id, "retailer", class.Retailer.String())
		return []string{addedText, welcomeText}, nil
	}
	return nil, fmt.Errorf("failed to add product after %d attempts: %w", maxAddAttempts, models.ErrProductIDTaken)
}

func (uc *commandUsecase) existingIDs(ctx context.Context, userID string) (map[int]struct{}, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return map[int]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ProductIDs(), nil
}

func (uc *commandUsecase) list(ctx context.Context, userID string, filter *models.Retailer) ([]string, error) {
	products, err := uc.repo.ListProducts(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if len(products) == 0 {
		return []string{emptyListText}, nil
	}

	text, err := renderProductList(filter, uc.snapshots.Collect(ctx, products))
	if err != nil {
		return nil, fmt.Errorf("failed to render product list: %w", err)
	}
	return []string{text}, nil
}

func (uc *commandUsecase) ignore(ctx context.Context, userID string, cmd Command) ([]string, error) {
	if cmd.Malformed {
		return []string{deleteErrorText}, nil
	}

	removed, err := uc.repo.RemoveProduct(ctx, userID, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove product: %w", err)
	}
	if removed == 0 {
		return []string{notMonitoredText}, nil
	}

	log.Infow(ctx, "product removed", "product_id", cmd.ProductID)
	return []string{ignoredText}, nil
}

func (uc *commandUsecase) Inspect(ctx context.Context, rawURL string) (Snapshot, error) {
	class, err := uc.classifier.Classify(rawURL)
	if err != nil {
		return Snapshot{}, err
	}
	snap := uc.snapshots.snapshot(ctx, class.Product(0))
	return snap, snap.Err
}
