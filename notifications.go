package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// NotificationPoller periodically refreshes the notification list and unread
// counter for an authenticated user. A refresh failure keeps the previous
// list; the next tick tries again.
type NotificationPoller struct {
	api      *Client
	interval time.Duration
	log      zerolog.Logger
	poke     chan struct{}

	mu    sync.Mutex
	items []Notification
}

// NewNotificationPoller constructs a poller. interval must be positive.
func NewNotificationPoller(api *Client, interval time.Duration, logger zerolog.Logger) *NotificationPoller {
	if interval <= 0 {
		panic("notification interval must be > 0")
	}
	return &NotificationPoller{
		api:      api,
		interval: interval,
		log:      logger.With().Str("component", "notifications").Logger(),
		poke:     make(chan struct{}, 1),
	}
}

// Run refreshes immediately, then on every tick or Poke, until ctx is done.
func (p *NotificationPoller) Run(ctx context.Context) {
	p.refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.poke:
		}
		p.refresh(ctx)
	}
}

// Poke requests an out-of-band refresh, e.g. when a realtime event arrives.
// Never blocks; pokes coalesce.
func (p *NotificationPoller) Poke() {
	select {
	case p.poke <- struct{}{}:
	default:
	}
}

// Refresh fetches the list once, outside the Run loop.
func (p *NotificationPoller) Refresh(ctx context.Context) error {
	return p.refresh(ctx)
}

func (p *NotificationPoller) refresh(ctx context.Context) error {
	list, err := p.api.ListNotifications(ctx)
	if err != nil {
		notificationRefreshesTotal.WithLabelValues("error").Inc()
		p.log.Warn().Err(err).Msg("notification refresh failed, keeping previous list")
		return err
	}
	notificationRefreshesTotal.WithLabelValues("ok").Inc()
	p.mu.Lock()
	p.items = list
	p.mu.Unlock()
	return nil
}

// Notifications returns a copy of the current list.
func (p *NotificationPoller) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.items))
	copy(out, p.items)
	return out
}

// UnreadCount counts notifications not yet marked read.
func (p *NotificationPoller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, item := range p.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// MarkRead marks one notification read on the server, then locally.
func (p *NotificationPoller) MarkRead(ctx context.Context, notificationID string) error {
	if err := p.api.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}
	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == notificationID {
			p.items[i].IsRead = true
			break
		}
	}
	p.mu.Unlock()
	return nil
}

// MarkAllRead marks every notification read on the server, then locally.
func (p *NotificationPoller) MarkAllRead(ctx context.Context) error {
	if err := p.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	for i := range p.items {
		p.items[i].IsRead = true
	}
	p.mu.Unlock()
	return nil
}
