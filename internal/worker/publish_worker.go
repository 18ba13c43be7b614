// Package worker periodically rebuilds chart bundles and publishes them.
package worker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"budgetcharts/internal/cache"
	"budgetcharts/internal/charts"
	blog "budgetcharts/internal/log"
	"budgetcharts/internal/source"
)

const (
	// An unchanged bundle is republished at least this often, so that
	// consumers that started late still receive it.
	DefaultResendAfter = time.Hour
	sentCacheSize      = 64
)

// BundlePublisher sends a finished bundle to its consumers.
type BundlePublisher interface {
	PublishBundle(ctx context.Context, b charts.Bundle) error
}

// PublishWorker reads page data, builds the chart bundle and publishes it
// when it differs from what was last sent for the same period.
type PublishWorker struct {
	reader     source.PageDataReader
	publisher  BundlePublisher
	appearance charts.Appearance
	accountID  int64
	sent       *cache.LRUCache[string]
	now        func() time.Time
}

func NewPublishWorker(reader source.PageDataReader, publisher BundlePublisher, appearance charts.Appearance, accountID int64, resendAfter time.Duration) *PublishWorker {
	if resendAfter <= 0 {
		resendAfter = DefaultResendAfter
	}
	return &PublishWorker{
		reader:     reader,
		publisher:  publisher,
		appearance: appearance,
		accountID:  accountID,
		sent:       cache.NewLRUCache[string](sentCacheSize, resendAfter),
		now:        time.Now,
	}
}

// PublishOnce builds the bundle for q and publishes it unless an identical
// bundle was sent recently. It reports whether a message went out.
func (w *PublishWorker) PublishOnce(ctx context.Context, q source.Query) (bool, error) {
	fields := blog.NewFields().WithOperation(blog.OpPublish)

	page, err := w.reader.ReadPageData(ctx, q)
	if err != nil {
		return false, fmt.Errorf("read page data: %w", err)
	}
	bundle, err := charts.Build(page, w.appearance)
	if err != nil {
		return false, fmt.Errorf("build bundle: %w", err)
	}

	key := fmt.Sprintf("%s/%d/%02d", bundle.AccountID, bundle.Year, bundle.Month)
	sum, err := fingerprint(bundle)
	if err != nil {
		return false, err
	}
	if last, ok := w.sent.Get(key); ok && last == sum {
		blog.FromContext(ctx).DebugContext(ctx, "Bundle unchanged, skipping publish",
			fields.WithPeriod(bundle.AccountID, bundle.Year, bundle.Month).ToSlice()...)
		return false, nil
	}

	if err := w.publisher.PublishBundle(ctx, bundle); err != nil {
		// The broker may still have taken the message, so whatever was
		// sent before is no longer known to be the consumers' copy.
		w.sent.Delete(key)
		return false, fmt.Errorf("publish bundle: %w", err)
	}
	w.sent.Set(key, sum)
	return true, nil
}

// Run publishes the current month immediately and then on every tick until
// ctx is cancelled. Failed rounds are logged and retried on the next tick.
func (w *PublishWorker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.round(ctx)
	for {
		select {
		case <-ctx.Done():
			blog.FromContext(ctx).InfoContext(ctx, "Stopping publish worker", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			w.round(ctx)
			if n := w.sent.CleanExpired(); n > 0 {
				blog.FromContext(ctx).DebugContext(ctx, "Expired bundle fingerprints",
					"removed", n, "cached", w.sent.Size())
			}
		}
	}
}

func (w *PublishWorker) round(ctx context.Context) {
	q := source.CurrentQuery(w.accountID, w.now())
	fields := blog.NewFields().
		WithPeriod(strconv.FormatInt(q.AccountID, 10), q.Year, q.Month)

	published, err := w.PublishOnce(ctx, q)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		blog.LogError(ctx, "Publish round failed", err, blog.OpPublish, fields)
		return
	}
	blog.FromContext(ctx).InfoContext(ctx, "Publish round complete", append(fields.ToSlice(), "published", published)...)
}

func fingerprint(b charts.Bundle) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
