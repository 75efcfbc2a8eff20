package app

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
)

type fakeReader struct {
	mu      sync.Mutex
	calls   []domain.Filter
	started chan domain.Filter
	release map[string]chan struct{}
	pages   map[string]domain.Page
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		started: make(chan domain.Filter, 16),
		release: map[string]chan struct{}{},
		pages:   map[string]domain.Page{},
	}
}

func (f *fakeReader) List(ctx context.Context, filter domain.Filter) (domain.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filter)
	gate := f.release[filter.Query]
	page := f.pages[filter.Query]
	f.mu.Unlock()

	f.started <- filter
	if gate != nil {
		<-gate
	}
	return page, nil
}

func (f *fakeReader) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{ID: id}, nil
}

func (f *fakeReader) RecordSearch(ctx context.Context, userID, keyword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, domain.Filter{Query: keyword, UserID: userID})
	return nil
}

func (f *fakeReader) listCalls() []domain.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Filter(nil), f.calls...)
}

type fakeSession struct {
	mu  sync.Mutex
	uid string
}

func (s *fakeSession) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid, s.uid != ""
}

type fakeSink struct {
	mu       sync.Mutex
	replaced [][]domain.Product
	totals   []int
}

func (s *fakeSink) ReplaceProducts(items []domain.Product, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, items)
	s.totals = append(s.totals, total)
}

func (s *fakeSink) pages() [][]domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]domain.Product(nil), s.replaced...)
}

func newBrowseService(reader *fakeReader, quiet time.Duration) (*Service, *fakeSink) {
	sink := &fakeSink{}
	svc := NewService(reader, &fakeSession{}, sink, &notice.Recorder{}, slog.Default(), quiet, 12)
	return svc, sink
}

func TestPaginationResetsBeforeFetch(t *testing.T) {
	reader := newFakeReader()
	// Long quiet period: no fetch resolves during the test.
	svc, _ := newBrowseService(reader, time.Hour)
	svc.Start(context.Background())

	svc.SetPage(3)
	if got := svc.Filter().Page; got != 3 {
		t.Fatalf("expected page 3, got %d", got)
	}

	t.Run("category change resets page", func(t *testing.T) {
		svc.SetCategory("food")
		if got := svc.Filter().Page; got != 1 {
			t.Fatalf("expected page 1 after category change, got %d", got)
		}
	})

	t.Run("search change resets page", func(t *testing.T) {
		svc.SetPage(5)
		svc.SetSearchTerm("leash")
		if got := svc.Filter().Page; got != 1 {
			t.Fatalf("expected page 1 after search change, got %d", got)
		}
	})

	if calls := reader.listCalls(); len(calls) != 0 {
		t.Fatalf("no fetch should have fired yet, got %d", len(calls))
	}
}

func TestDebounceCoalescesRapidInput(t *testing.T) {
	reader := newFakeReader()
	svc, _ := newBrowseService(reader, 40*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	// Two edits inside the quiet period: only the later survives.
	svc.SetSearchTerm("ca")
	time.Sleep(10 * time.Millisecond)
	svc.SetSearchTerm("cat toy")

	select {
	case f := <-reader.started:
		if f.Query != "cat toy" {
			t.Fatalf("expected fetch for %q, got %q", "cat toy", f.Query)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced fetch never fired")
	}

	time.Sleep(100 * time.Millisecond)
	calls := reader.listCalls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one fetch, got %d: %+v", len(calls), calls)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	reader := newFakeReader()
	releaseA := make(chan struct{})
	reader.release["slow"] = releaseA
	reader.pages["slow"] = domain.Page{Items: []domain.Product{{ID: "stale"}}, Total: 1}
	reader.pages["fast"] = domain.Page{Items: []domain.Product{{ID: "fresh"}}, Total: 1}

	svc, sink := newBrowseService(reader, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	<-reader.started // initial fetch

	svc.SetSearchTerm("slow")
	<-reader.started // query A in flight, blocked

	svc.SetSearchTerm("fast")
	<-reader.started // query B in flight

	// B resolves first, then A resolves late.
	time.Sleep(20 * time.Millisecond)
	close(releaseA)
	time.Sleep(20 * time.Millisecond)

	pages := sink.pages()
	for _, page := range pages {
		for _, p := range page {
			if p.ID == "stale" {
				t.Fatalf("stale response was published: %+v", pages)
			}
		}
	}
	last := pages[len(pages)-1]
	if len(last) != 1 || last[0].ID != "fresh" {
		t.Fatalf("expected final state from the newer query, got %+v", last)
	}
}

func TestRefreshIncludesSessionIdentity(t *testing.T) {
	reader := newFakeReader()
	session := &fakeSession{uid: "u1"}
	sink := &fakeSink{}
	svc := NewService(reader, session, sink, &notice.Recorder{}, slog.Default(), time.Millisecond, 12)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	f := <-reader.started
	if f.UserID != "u1" {
		t.Fatalf("expected user_id on listing query, got %q", f.UserID)
	}
}

func TestSubmitSearchSkipsSignedOut(t *testing.T) {
	reader := newFakeReader()
	svc, _ := newBrowseService(reader, time.Hour)
	svc.Start(context.Background())
	svc.SetSearchTerm("treats")

	svc.SubmitSearch(context.Background())
	if calls := reader.listCalls(); len(calls) != 0 {
		t.Fatalf("signed-out submit must not issue a request, got %+v", calls)
	}
}
