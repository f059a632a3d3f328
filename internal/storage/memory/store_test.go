package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentpacks-registry/internal/model"
	packRepo "agentpacks-registry/internal/pack/repository"
	reviewRepo "agentpacks-registry/internal/review/repository"
	"agentpacks-registry/internal/storage/memory"
	webhookRepo "agentpacks-registry/internal/webhook/repository"
)

func seedPack(t *testing.T, s *memory.Store, name, author string) model.Pack {
	t.Helper()
	p, _, err := s.UpsertFromPublish(context.Background(), packRepo.UpsertFromPublishOptions{
		Name:    name,
		Author:  author,
		Version: "1.0.0",
	})
	require.NoError(t, err)
	return p
}

func rate(t *testing.T, s *memory.Store, pack, user string, rating int) {
	t.Helper()
	_, err := s.UpsertReview(context.Background(), reviewRepo.UpsertReviewOptions{
		PackName: pack, Username: user, Rating: rating,
	})
	require.NoError(t, err)
}

func TestUpsertFromPublish(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	p := seedPack(t, s, "demo", "alice")
	assert.Equal(t, "alice", p.AuthorName)
	assert.Equal(t, "1.0.0", p.LatestVersion)
	assert.Equal(t, 0, p.ReviewCount)
	assert.Nil(t, p.AverageRating)

	_, _, err := s.UpsertFromPublish(ctx, packRepo.UpsertFromPublishOptions{Name: "demo", Author: "alice", Version: "1.0.0"})
	assert.ErrorIs(t, err, packRepo.ErrVersionExists)

	_, _, err = s.UpsertFromPublish(ctx, packRepo.UpsertFromPublishOptions{Name: "demo", Author: "mallory", Version: "2.0.0"})
	assert.ErrorIs(t, err, packRepo.ErrAuthorMismatch)

	p, _, err = s.UpsertFromPublish(ctx, packRepo.UpsertFromPublishOptions{Name: "demo", Author: "alice", Version: "0.9.0", Description: "older"})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", p.LatestVersion, "older version must not become latest")
	assert.Equal(t, "older", p.Description)

	versions, err := s.ListVersions(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "0.9.0", versions[0].Version)
}

func TestReviewCacheFollowsEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedPack(t, s, "demo", "alice")

	rate(t, s, "demo", "bob", 4)
	rate(t, s, "demo", "carol", 2)

	p, _ := s.GetPack(ctx, "demo")
	require.NotNil(t, p.AverageRating)
	assert.Equal(t, 30, *p.AverageRating)
	assert.Equal(t, 2, p.ReviewCount)

	// carol changes her mind: {4, 5}
	rate(t, s, "demo", "carol", 5)
	p, _ = s.GetPack(ctx, "demo")
	assert.Equal(t, 45, *p.AverageRating)
	assert.Equal(t, 2, p.ReviewCount)

	deleted, err := s.DeleteReview(ctx, "demo", "bob")
	require.NoError(t, err)
	assert.True(t, deleted)
	p, _ = s.GetPack(ctx, "demo")
	assert.Equal(t, 50, *p.AverageRating)
	assert.Equal(t, 1, p.ReviewCount)

	deleted, err = s.DeleteReview(ctx, "demo", "bob")
	require.NoError(t, err)
	assert.False(t, deleted)

	s.DeleteReview(ctx, "demo", "carol")
	p, _ = s.GetPack(ctx, "demo")
	assert.Nil(t, p.AverageRating)
	assert.Equal(t, 0, p.ReviewCount)
}

func TestUpsertReviewRequiresPack(t *testing.T) {
	s := memory.New()
	_, err := s.UpsertReview(context.Background(), reviewRepo.UpsertReviewOptions{PackName: "ghost", Username: "bob", Rating: 3})
	assert.ErrorIs(t, err, reviewRepo.ErrPackMissing)
}

func TestListReviewsPagination(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := memory.New(memory.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	seedPack(t, s, "demo", "alice")
	for i := 0; i < 5; i++ {
		rate(t, s, "demo", fmt.Sprintf("user%d", i), 1+i%5)
	}

	page, stats, err := s.ListReviews(ctx, reviewRepo.ListReviewsOptions{PackName: "demo", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, 15, stats.Sum)
	require.Len(t, page, 2)
	assert.Equal(t, "user1", page[0].Username)
	assert.Equal(t, "user2", page[1].Username)

	page, stats, _ = s.ListReviews(ctx, reviewRepo.ListReviewsOptions{PackName: "demo", Limit: 10, Offset: 10})
	assert.Equal(t, 5, stats.Count, "stats cover the pack even past the last page")
	assert.Empty(t, page)
}

func TestConcurrentReviewsKeepCacheConsistent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedPack(t, s, "demo", "alice")

	const users = 50
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user%d", i)
			for r := 1; r <= 5; r++ {
				s.UpsertReview(ctx, reviewRepo.UpsertReviewOptions{PackName: "demo", Username: user, Rating: r})
			}
			if i%2 == 0 {
				s.DeleteReview(ctx, "demo", user)
			}
		}(i)
	}
	wg.Wait()

	_, stats, err := s.ListReviews(ctx, reviewRepo.ListReviewsOptions{PackName: "demo"})
	require.NoError(t, err)
	assert.Equal(t, users/2, stats.Count)
	assert.Equal(t, 5*users/2, stats.Sum)

	p, _ := s.GetPack(ctx, "demo")
	assert.Equal(t, stats.Count, p.ReviewCount)
	require.NotNil(t, p.AverageRating)
	assert.Equal(t, 50, *p.AverageRating)
}

func TestSetDeprecation(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedPack(t, s, "demo", "alice")

	msg := "use demo2"
	p, err := s.SetDeprecation(ctx, packRepo.SetDeprecationOptions{Name: "demo", Deprecated: true, Message: &msg})
	require.NoError(t, err)
	assert.True(t, p.Deprecated)
	require.NotNil(t, p.DeprecationMessage)
	assert.Equal(t, msg, *p.DeprecationMessage)

	p, err = s.SetDeprecation(ctx, packRepo.SetDeprecationOptions{Name: "demo", Deprecated: false, Message: &msg})
	require.NoError(t, err)
	assert.False(t, p.Deprecated)
	assert.Nil(t, p.DeprecationMessage)

	p, err = s.SetDeprecation(ctx, packRepo.SetDeprecationOptions{Name: "ghost", Deprecated: true})
	require.NoError(t, err)
	assert.False(t, p.Exists())
}

func TestWebhookRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	w, err := s.CreateWebhook(ctx, webhookRepo.CreateWebhookOptions{
		PackName: "demo",
		URL:      "https://example.com/hook",
		Events:   []model.WebhookEvent{model.EventPublish},
		Active:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, w.ID)

	list, err := s.ListWebhooks(ctx, webhookRepo.ListWebhooksOptions{PackName: "demo"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, w.ID, list[0].ID)

	_, err = s.CreateDelivery(ctx, webhookRepo.CreateDeliveryOptions{WebhookID: w.ID, Event: model.EventPublish})
	require.NoError(t, err)

	deleted, err := s.DeleteWebhook(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	list, _ = s.ListWebhooks(ctx, webhookRepo.ListWebhooksOptions{PackName: "demo"})
	assert.Empty(t, list)

	deliveries, _ := s.ListDeliveries(ctx, webhookRepo.ListDeliveriesOptions{WebhookID: w.ID})
	assert.Empty(t, deliveries)

	deleted, err = s.DeleteWebhook(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListWebhooksFilters(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	mk := func(pack string, active bool, events ...model.WebhookEvent) {
		_, err := s.CreateWebhook(ctx, webhookRepo.CreateWebhookOptions{
			PackName: pack, URL: "https://example.com", Events: events, Active: active,
		})
		require.NoError(t, err)
	}
	mk("demo", true, model.EventPublish)
	mk("demo", true, model.EventUpdate)
	mk("demo", false, model.EventPublish)
	mk("other", true, model.EventPublish)

	list, err := s.ListWebhooks(ctx, webhookRepo.ListWebhooksOptions{
		PackName: "demo", ActiveOnly: true, Event: model.EventPublish,
	})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	all, _ := s.ListWebhooks(ctx, webhookRepo.ListWebhooksOptions{PackName: "demo"})
	assert.Len(t, all, 3)
}

func TestListDeliveriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	w, _ := s.CreateWebhook(ctx, webhookRepo.CreateWebhookOptions{PackName: "demo", URL: "https://example.com", Active: true})

	for i := 0; i < 3; i++ {
		status := 200 + i
		_, err := s.CreateDelivery(ctx, webhookRepo.CreateDeliveryOptions{WebhookID: w.ID, Event: model.EventPublish, ResponseStatus: &status})
		require.NoError(t, err)
	}

	list, err := s.ListDeliveries(ctx, webhookRepo.ListDeliveriesOptions{WebhookID: w.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 202, *list[0].ResponseStatus)
	assert.Equal(t, 201, *list[1].ResponseStatus)

	_, err = s.CreateDelivery(ctx, webhookRepo.CreateDeliveryOptions{WebhookID: "missing"})
	assert.ErrorIs(t, err, webhookRepo.ErrFailedToInsert)
}
