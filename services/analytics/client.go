package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/mixpanel/mixpanel-go"
	"go.uber.org/zap"
)

// MixpanelClient sends events to Mixpanel asynchronously. Delivery failures
// are logged and dropped.
type MixpanelClient struct {
	mp     *mixpanel.ApiClient
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewMixpanelClient builds the Mixpanel-backed analytics client.
func NewMixpanelClient(token string, logger *zap.Logger) *MixpanelClient {
	return &MixpanelClient{
		mp:     mixpanel.NewApiClient(token),
		logger: logger,
	}
}

// Track dispatches an event in the background.
func (c *MixpanelClient) Track(_ context.Context, event, distinctID string, props map[string]any) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ev := c.mp.NewEvent(event, distinctID, props)
		if err := c.mp.Track(ctx, []*mixpanel.Event{ev}); err != nil {
			c.logger.Warn("analytics event dropped",
				zap.String("event", event), zap.Error(err))
		}
	}()
}

// TrackPageView records a page view.
func (c *MixpanelClient) TrackPageView(ctx context.Context, page, distinctID string) {
	c.Track(ctx, "page_view", distinctID, map[string]any{"page": page})
}

// Dispose drains in-flight dispatches.
func (c *MixpanelClient) Dispose() {
	c.wg.Wait()
}

// Noop discards everything; used in tests and when no token is configured.
type Noop struct{}

func (Noop) Track(context.Context, string, string, map[string]any) {}
func (Noop) TrackPageView(context.Context, string, string)         {}
func (Noop) Dispose()                                              {}
