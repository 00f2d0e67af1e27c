package dedup

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
)

func exerciseStore(t *testing.T, store ports.DedupStore) {
	t.Helper()
	ctx := context.Background()

	seen, err := store.Seen(ctx, "key-a")
	if err != nil {
		t.Fatalf("seen on empty store: %v", err)
	}
	if seen {
		t.Fatal("empty store reported a key as seen")
	}

	added, err := store.Record(ctx, "key-a")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !added {
		t.Fatal("first record of a key should report newly added")
	}

	added, err = store.Record(ctx, "key-a")
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if added {
		t.Fatal("recording a key twice should not report newly added")
	}

	seen, err = store.Seen(ctx, "key-a")
	if err != nil {
		t.Fatalf("seen after record: %v", err)
	}
	if !seen {
		t.Fatal("recorded key should be seen")
	}

	if err := store.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()
	exerciseStore(t, store)
}

func TestMemoryStoreConcurrentRecordSingleWinner(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added, err := store.Record(context.Background(), "contested")
			if err != nil {
				t.Errorf("record: %v", err)
				return
			}
			wins <- added
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for added := range wins {
		if added {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("exactly one worker should win the record, got %d", winners)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seen.db")

	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	seen, err := reopened.Seen(context.Background(), "key-a")
	if err != nil {
		t.Fatalf("seen after reopen: %v", err)
	}
	if !seen {
		t.Fatal("recorded key should survive a reopen")
	}
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	server := miniredis.RunT(t)

	store := NewRedisStore(server.Addr(), 0)
	defer store.Close()
	exerciseStore(t, store)

	// Keys are namespaced so other users of the instance are untouched.
	if !server.Exists(redisKeyPrefix + "key-a") {
		t.Fatal("record should write under the store's key prefix")
	}
}
