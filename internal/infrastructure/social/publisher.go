package social

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxPostLength is the post length limit imposed by the platform
const MaxPostLength = 280

// Publisher posts marketplace announcements to a social platform.
// Implementations are injected into the catalog services, so tests
// swap in fakes and the adapter is never reached through a global.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

// NopPublisher drops posts, logging at debug level. Used when the
// integration is disabled in configuration.
type NopPublisher struct {
	logger *zap.Logger
}

// NewNopPublisher creates a publisher that discards posts
func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

// Publish logs and drops the post
func (p *NopPublisher) Publish(ctx context.Context, message string) error {
	p.logger.Debug("social posting disabled, dropping post", zap.String("message", message))
	return nil
}

// ProductListedPost composes the announcement for a new listing,
// trimmed to the platform limit.
func ProductListedPost(storeName, productName string, price decimal.Decimal) string {
	return TruncatePost(fmt.Sprintf("New on SwiftBasket: %s now sells %s for R %s!",
		storeName, productName, price.StringFixed(2)))
}

// StoreOpenedPost composes the announcement for a new store,
// trimmed to the platform limit.
func StoreOpenedPost(storeName string) string {
	return TruncatePost(fmt.Sprintf("%s just opened a store on SwiftBasket. Come take a look!", storeName))
}

// TruncatePost cuts a message down to MaxPostLength runes
func TruncatePost(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxPostLength {
		return message
	}
	return string(runes[:MaxPostLength])
}

var _ Publisher = (*NopPublisher)(nil)
