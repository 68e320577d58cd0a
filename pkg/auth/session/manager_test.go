package session

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/habistudio/habi-backend/pkg/enums"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeStore) AccessSessionKey(accessID string) string {
	return "habi:session:access:" + accessID
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr, err := NewManager(newFakeStore(), time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	ok, err := mgr.Has(ctx, "jti-1")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if ok {
		t.Fatalf("expected no session before create")
	}

	if err := mgr.Create(ctx, "jti-1", enums.RoleCustomer); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err = mgr.Has(ctx, "jti-1")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if !ok {
		t.Fatalf("expected live session after create")
	}

	if err := mgr.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err = mgr.Has(ctx, "jti-1")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if ok {
		t.Fatalf("expected session gone after revoke")
	}
}

func TestManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, time.Hour); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := NewManager(newFakeStore(), 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}

	mgr, err := NewManager(newFakeStore(), time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := mgr.Create(context.Background(), "", enums.RoleAdmin); err == nil {
		t.Fatalf("expected error for empty access id")
	}
	if err := mgr.Create(context.Background(), "jti", "ghost"); err == nil {
		t.Fatalf("expected error for invalid role")
	}
}
