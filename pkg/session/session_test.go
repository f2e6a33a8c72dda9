package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
)

func newKitchen(t *testing.T) *kitchen.Configurator {
	t.Helper()
	k, err := kitchen.NewDefault(nil)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	s, err := store.Create(ctx, newKitchen(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.ID) != 36 {
		t.Errorf("id = %q, want a uuid", s.ID)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get after Delete = %v", err)
	}
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Errorf("second Delete = %v", err)
	}
}

func TestGetInvalidID(t *testing.T) {
	store := NewMemoryStore(0)
	for _, id := range []string{"", "nope", "../etc/passwd"} {
		if _, err := store.Get(context.Background(), id); !errors.Is(err, errors.ErrCodeSessionNotFound) {
			t.Errorf("Get(%q) = %v", id, err)
		}
	}
}

func TestCreateNil(t *testing.T) {
	if _, err := NewMemoryStore(0).Create(context.Background(), nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Create(nil) = %v", err)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)

	a, _ := store.Create(ctx, newKitchen(t))
	store.Create(ctx, newKitchen(t))
	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get = %v", err)
	}
	n, err := store.Cleanup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || store.Len() != 0 {
		t.Errorf("Cleanup removed %d, %d left", n, store.Len())
	}
}

func TestDoExtendsLifetime(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	s, _ := store.Create(context.Background(), newKitchen(t))

	before := s.ExpiresAt()
	time.Sleep(2 * time.Millisecond)
	s.Do(func(*kitchen.Configurator) error { return nil })
	if !s.ExpiresAt().After(before) {
		t.Error("Do should extend the session")
	}
}

func TestConcurrentDo(t *testing.T) {
	store := NewMemoryStore(0)
	s, _ := store.Create(context.Background(), newKitchen(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(k *kitchen.Configurator) error { return k.Add("drawer40") })
		}()
	}
	wg.Wait()

	if got := len(s.Snapshot().Run.Plan.Modules()); got != 24 {
		t.Errorf("modules = %d, want 24", got)
	}
}
