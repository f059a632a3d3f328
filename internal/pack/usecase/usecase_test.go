package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"agentpacks-registry/internal/auth"
	authUC "agentpacks-registry/internal/auth/usecase"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack"
	"agentpacks-registry/internal/pack/usecase"
	"agentpacks-registry/internal/storage/memory"
	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/pkg/ratelimit"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockBlobs struct {
	mu        sync.Mutex
	puts      map[string][]byte
	fail      bool
	beforePut func(key string)
}

func (m *mockBlobs) get(ref string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts[strings.TrimPrefix(ref, "mem://")]
}

func (m *mockBlobs) Put(ctx context.Context, key string, data []byte) (string, error) {
	if hook := m.beforePut; hook != nil {
		m.beforePut = nil
		hook(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", errors.New("disk full")
	}
	if m.puts == nil {
		m.puts = map[string][]byte{}
	}
	m.puts[key] = data
	return "mem://" + key, nil
}

type mockDispatcher struct {
	calls chan webhook.DispatchInput
}

func (m *mockDispatcher) Dispatch(ctx context.Context, input webhook.DispatchInput) (int, error) {
	m.calls <- input
	return 1, nil
}

func (m *mockDispatcher) next(t *testing.T) webhook.DispatchInput {
	t.Helper()
	select {
	case in := <-m.calls:
		return in
	case <-time.After(2 * time.Second):
		t.Fatal("expected a dispatch")
		return webhook.DispatchInput{}
	}
}

func (m *mockDispatcher) none(t *testing.T) {
	t.Helper()
	select {
	case in := <-m.calls:
		t.Fatalf("unexpected dispatch: %+v", in)
	case <-time.After(50 * time.Millisecond):
	}
}

type fixture struct {
	uc         pack.UseCase
	store      *memory.Store
	blobs      *mockBlobs
	dispatcher *mockDispatcher
	limiter    *ratelimit.Limiter
	tokens     map[string]string
}

const maxBytes = 1024

func newFixture(t *testing.T, publishMax int) fixture {
	t.Helper()
	store := memory.New()
	auc := authUC.New(&mockLogger{}, store, authUC.Config{})

	tokens := map[string]string{}
	for _, u := range []struct{ name, scope string }{
		{"alice", model.ScopePublish},
		{"bob", model.ScopePublish},
		{"reader", "read"},
	} {
		out, err := auc.Issue(context.Background(), auth.IssueInput{Username: u.name, Scope: u.scope})
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		tokens[u.name] = out.Token
	}

	limiter := ratelimit.New(ratelimit.Config{Class: ratelimit.ClassPublish, Window: time.Minute, Max: publishMax})
	blobs := &mockBlobs{}
	dispatcher := &mockDispatcher{calls: make(chan webhook.DispatchInput, 16)}

	uc := usecase.New(&mockLogger{}, usecase.Deps{
		Repo:           store,
		Auth:           auc,
		PublishLimiter: limiter,
		Blobs:          blobs,
		Dispatcher:     dispatcher,
	}, usecase.Config{MaxTarballBytes: maxBytes})

	return fixture{uc: uc, store: store, blobs: blobs, dispatcher: dispatcher, limiter: limiter, tokens: tokens}
}

func (f fixture) publish(user, name, version string, size int) (pack.PublishOutput, error) {
	return f.uc.Publish(context.Background(), pack.PublishInput{
		Token:   f.tokens[user],
		Tarball: bytes.Repeat([]byte{'x'}, size),
		Name:    name,
		Version: version,
	})
}

func (f fixture) publishBytes(user, name, version string, b []byte) (pack.PublishOutput, error) {
	return f.uc.Publish(context.Background(), pack.PublishInput{
		Token:   f.tokens[user],
		Tarball: b,
		Name:    name,
		Version: version,
	})
}

func scopeOf(name string) model.Scope {
	return model.Scope{Username: name, TokenScope: model.ScopePublish}
}

func TestPublishCreatesPackAndNotifies(t *testing.T) {
	f := newFixture(t, 10)

	out, err := f.publish("alice", "my-cool-pack", "1.0.0", 10)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if out.Pack.AuthorName != "alice" || out.Pack.ReviewCount != 0 || out.Pack.AverageRating != nil {
		t.Errorf("unexpected pack: %+v", out.Pack)
	}
	if out.Pack.LatestVersion != "1.0.0" {
		t.Errorf("expected latest 1.0.0, got %s", out.Pack.LatestVersion)
	}
	if !strings.HasPrefix(out.Version.Integrity, "sha512-") || out.Version.SizeBytes != 10 {
		t.Errorf("unexpected version: %+v", out.Version)
	}
	if ref := out.Version.TarballRef; !strings.HasPrefix(ref, "mem://my-cool-pack/my-cool-pack-1.0.0-") || !strings.HasSuffix(ref, ".tgz") {
		t.Errorf("unexpected tarball ref %s", out.Version.TarballRef)
	}
	if out.RateLimit == nil || out.RateLimit.Remaining != 9 {
		t.Errorf("expected rate limit info with 9 remaining, got %+v", out.RateLimit)
	}

	in := f.dispatcher.next(t)
	if in.Event != model.EventPublish || in.PackName != "my-cool-pack" || in.Version != "1.0.0" {
		t.Errorf("unexpected dispatch %+v", in)
	}
}

func TestPublishSizeBoundary(t *testing.T) {
	f := newFixture(t, 10)

	if _, err := f.publish("alice", "sized", "1.0.0", maxBytes-1); err != nil {
		t.Errorf("max-1 bytes should succeed: %v", err)
	}
	if _, err := f.publish("alice", "sized", "1.0.1", maxBytes); err != nil {
		t.Errorf("exactly max bytes should succeed: %v", err)
	}
	if _, err := f.publish("alice", "sized", "1.0.2", maxBytes+1); !errors.Is(err, pack.ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
	if _, err := f.publish("alice", "sized", "1.0.3", 0); !errors.Is(err, pack.ErrMissingTarball) {
		t.Errorf("expected ErrMissingTarball, got %v", err)
	}
}

func TestPublishGateOrder(t *testing.T) {
	f := newFixture(t, 10)

	// Auth is checked before everything else.
	if _, err := f.publish("nobody", "AB", "x", maxBytes+1); !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
	_, err := f.uc.Publish(context.Background(), pack.PublishInput{Token: "bogus", Tarball: []byte("x"), Name: "ok-name", Version: "1.0.0"})
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := f.publish("reader", "ok-name", "1.0.0", 1); !errors.Is(err, pack.ErrInsufficientScope) {
		t.Errorf("expected ErrInsufficientScope, got %v", err)
	}
	// Size before name policy.
	if _, err := f.publish("alice", "A", "1.0.0", maxBytes+1); !errors.Is(err, pack.ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
	if len(f.blobs.puts) != 0 {
		t.Errorf("rejected publishes must not write blobs")
	}
}

func TestPublishNamePolicy(t *testing.T) {
	f := newFixture(t, 100)

	cases := map[string]error{
		"agentpacks":   pack.ErrNameReserved,
		"a":            pack.ErrNameTooShort,
		"MyPack":       pack.ErrNameInvalid,
		"my-cool-pack": nil,
	}
	for name, want := range cases {
		_, err := f.publish("alice", name, "1.0.0", 1)
		if !errors.Is(err, want) {
			t.Errorf("%s: expected %v, got %v", name, want, err)
		}
	}
}

func TestPublishRateLimit(t *testing.T) {
	f := newFixture(t, 2)

	f.publish("alice", "pack-one", "1.0.0", 1)
	f.publish("alice", "pack-one", "1.0.1", 1)
	out, err := f.publish("alice", "pack-one", "1.0.2", 1)
	if !errors.Is(err, pack.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if out.RateLimit == nil || out.RateLimit.Allowed || out.RateLimit.Remaining != 0 {
		t.Errorf("expected exhausted rate limit, got %+v", out.RateLimit)
	}

	// Limits are per user.
	if _, err := f.publish("bob", "pack-two", "1.0.0", 1); err != nil {
		t.Errorf("bob should not be limited: %v", err)
	}

	f.limiter.Clear()
	if _, err := f.publish("alice", "pack-one", "1.0.2", 1); err != nil {
		t.Errorf("after Clear publish should succeed: %v", err)
	}
}

func TestPublishOwnershipAndDuplicates(t *testing.T) {
	f := newFixture(t, 100)

	if _, err := f.publish("alice", "owned", "1.0.0", 1); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := f.publish("bob", "owned", "2.0.0", 1); !errors.Is(err, pack.ErrNotAuthor) {
		t.Errorf("expected ErrNotAuthor, got %v", err)
	}
	if _, err := f.publish("alice", "owned", "1.0.0", 1); !errors.Is(err, pack.ErrVersionExists) {
		t.Errorf("expected ErrVersionExists, got %v", err)
	}
	if _, err := f.publish("alice", "owned", "1.0", 1); !errors.Is(err, pack.ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestPublishValidatesManifest(t *testing.T) {
	f := newFixture(t, 100)
	publish := func(version string, manifest string) (pack.PublishOutput, error) {
		return f.uc.Publish(context.Background(), pack.PublishInput{
			Token: f.tokens["alice"], Tarball: []byte("x"), Name: "with-manifest", Version: version,
			Manifest: json.RawMessage(manifest),
		})
	}

	out, err := publish("1.0.0", `{"name":"with-manifest","version":"1.0.0","displayName":"With Manifest","description":"d"}`)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if out.Pack.DisplayName != "With Manifest" || out.Pack.Description != "d" {
		t.Errorf("manifest fields not applied: %+v", out.Pack)
	}

	if _, err := publish("1.0.1", `{"name":"someone-else"}`); !errors.Is(err, pack.ErrInvalidManifest) {
		t.Errorf("expected ErrInvalidManifest for name mismatch, got %v", err)
	}
	if _, err := publish("1.0.1", `{"keywords":"not-an-array"}`); !errors.Is(err, pack.ErrInvalidManifest) {
		t.Errorf("expected ErrInvalidManifest for schema violation, got %v", err)
	}
}

func TestDeprecation(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()
	f.publish("alice", "old-pack", "1.0.0", 1)
	f.dispatcher.next(t)

	msg := "use new-pack"
	p, err := f.uc.Deprecate(ctx, scopeOf("alice"), pack.DeprecateInput{Name: "old-pack", Deprecated: true, Message: &msg})
	if err != nil {
		t.Fatalf("Deprecate: %v", err)
	}
	if !p.Deprecated || p.DeprecationMessage == nil || *p.DeprecationMessage != msg {
		t.Errorf("unexpected pack %+v", p)
	}
	if in := f.dispatcher.next(t); in.Event != model.EventUpdate {
		t.Errorf("expected update event, got %s", in.Event)
	}

	p, err = f.uc.Deprecate(ctx, scopeOf("alice"), pack.DeprecateInput{Name: "old-pack", Deprecated: false, Message: &msg})
	if err != nil {
		t.Fatalf("Deprecate: %v", err)
	}
	if p.Deprecated || p.DeprecationMessage != nil {
		t.Errorf("un-deprecating must clear the message: %+v", p)
	}
	f.dispatcher.next(t)

	if _, err := f.uc.Deprecate(ctx, scopeOf("bob"), pack.DeprecateInput{Name: "old-pack", Deprecated: true}); !errors.Is(err, pack.ErrNotAuthor) {
		t.Errorf("expected ErrNotAuthor, got %v", err)
	}
	if _, err := f.uc.Deprecate(ctx, model.Scope{}, pack.DeprecateInput{Name: "ghost", Deprecated: true}); !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken before existence check, got %v", err)
	}
	if _, err := f.uc.Deprecate(ctx, scopeOf("alice"), pack.DeprecateInput{Name: "ghost", Deprecated: true}); !errors.Is(err, pack.ErrPackNotFound) {
		t.Errorf("expected ErrPackNotFound, got %v", err)
	}
	f.dispatcher.none(t)
}

func TestVersionsAndYank(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()
	f.publish("alice", "versioned", "1.0.0", 1)
	f.publish("alice", "versioned", "1.1.0", 1)
	f.dispatcher.next(t)
	f.dispatcher.next(t)

	versions, err := f.uc.ListVersions(ctx, "versioned")
	if err != nil || len(versions) != 2 {
		t.Fatalf("ListVersions: %v %d", err, len(versions))
	}
	if _, err := f.uc.ListVersions(ctx, "ghost"); !errors.Is(err, pack.ErrPackNotFound) {
		t.Errorf("expected ErrPackNotFound, got %v", err)
	}

	if _, err := f.uc.Yank(ctx, scopeOf("bob"), pack.YankInput{Name: "versioned", Version: "1.0.0"}); !errors.Is(err, pack.ErrNotAuthor) {
		t.Errorf("expected ErrNotAuthor, got %v", err)
	}
	if _, err := f.uc.Yank(ctx, scopeOf("alice"), pack.YankInput{Name: "versioned", Version: "9.9.9"}); !errors.Is(err, pack.ErrVersionNotFound) {
		t.Errorf("expected ErrVersionNotFound, got %v", err)
	}

	v, err := f.uc.Yank(ctx, scopeOf("alice"), pack.YankInput{Name: "versioned", Version: "1.0.0"})
	if err != nil || !v.Yanked {
		t.Fatalf("Yank: %+v %v", v, err)
	}
	if in := f.dispatcher.next(t); in.Event != model.EventDelete || in.Version != "1.0.0" {
		t.Errorf("unexpected dispatch %+v", in)
	}

	if _, err := f.uc.Yank(ctx, scopeOf("alice"), pack.YankInput{Name: "versioned", Version: "1.0.0"}); err != nil {
		t.Errorf("second yank should be a no-op: %v", err)
	}
	f.dispatcher.none(t)
}

func TestPublishBlobFailureWritesNothing(t *testing.T) {
	f := newFixture(t, 100)
	f.blobs.fail = true

	if _, err := f.publish("alice", "broken", "1.0.0", 1); err == nil {
		t.Fatal("expected error")
	}
	p, _ := f.store.GetPack(context.Background(), "broken")
	if p.Exists() {
		t.Error("pack must not exist after failed blob write")
	}
	f.dispatcher.none(t)
}

func TestPublishLosingRaceKeepsCommittedBlob(t *testing.T) {
	f := newFixture(t, 10)
	mine := []byte("alice-bytes")
	theirs := []byte("bob-bytes")

	// bob's publish slips in after alice passed the pre-checks but before
	// alice's bytes reach the blob store.
	var bobOut pack.PublishOutput
	var bobErr error
	f.blobs.beforePut = func(string) {
		bobOut, bobErr = f.publishBytes("bob", "contested", "1.0.0", theirs)
	}

	if _, err := f.publishBytes("alice", "contested", "1.0.0", mine); !errors.Is(err, pack.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor for the losing publish, got %v", err)
	}
	if bobErr != nil {
		t.Fatalf("winning publish: %v", bobErr)
	}

	v, err := f.store.GetVersion(context.Background(), "contested", "1.0.0")
	if err != nil || !v.Exists() {
		t.Fatalf("GetVersion: %+v %v", v, err)
	}
	if v.TarballRef != bobOut.Version.TarballRef {
		t.Errorf("committed ref changed: %s vs %s", v.TarballRef, bobOut.Version.TarballRef)
	}
	if got := f.blobs.get(v.TarballRef); !bytes.Equal(got, theirs) {
		t.Errorf("committed blob was replaced: got %q", got)
	}
	if len(f.blobs.puts) != 2 {
		t.Errorf("expected the losing write under its own key, got %d keys", len(f.blobs.puts))
	}
}
