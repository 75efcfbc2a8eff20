package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

// Service drives catalog browsing. Filter changes do not fetch
// immediately: a fetch fires once the filter has been stable for the
// quiet period, and only the most recently scheduled fetch may publish
// its result. Responses to superseded filters are discarded, so a slow
// response for an old query can never overwrite a newer one.
type Service struct {
	products ProductReader
	session  Session
	sink     Sink
	notify   notice.Notifier
	log      *slog.Logger

	quiet time.Duration

	mu     sync.Mutex
	ctx    context.Context
	filter domain.Filter
	timer  *time.Timer
	latest string // request id of the fetch allowed to publish
}

func NewService(products ProductReader, session Session, sink Sink, notify notice.Notifier, log *slog.Logger, quiet time.Duration, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &Service{
		products: products,
		session:  session,
		sink:     sink,
		notify:   notify,
		log:      log,
		quiet:    quiet,
		filter:   domain.Filter{Page: 1, Size: pageSize},
	}
}

// Start binds the browsing lifetime and schedules the initial fetch.
// Cancelling ctx stops pending timers and abandons in-flight fetches.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
	s.scheduleLocked()
}

// SetSearchTerm updates the search query and resets paging to page 1
// before any fetch is issued.
func (s *Service) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Query = term
	s.filter.Page = 1
	s.scheduleLocked()
}

// SetCategory updates the category filter and resets paging to page 1.
// An empty category means the whole catalog.
func (s *Service) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Category = category
	s.filter.Page = 1
	s.scheduleLocked()
}

func (s *Service) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Page = page
	s.scheduleLocked()
}

// Refresh re-issues the current query, picking up a changed session
// identity (the backend personalizes listings by user_id).
func (s *Service) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked()
}

// Filter returns the current listing query.
func (s *Service) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Service) scheduleLocked() {
	if s.ctx == nil {
		return // not started yet; Start issues the first fetch
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	f := s.filter
	if uid, ok := s.session.CurrentUserID(); ok {
		f.UserID = uid
	} else {
		f.UserID = ""
	}

	id := uuid.NewString()
	s.latest = id
	ctx := s.ctx
	s.timer = time.AfterFunc(s.quiet, func() {
		s.fetch(ctx, id, f)
	})
}

func (s *Service) fetch(ctx context.Context, id string, f domain.Filter) {
	if ctx.Err() != nil {
		return
	}

	page, err := s.products.List(ctx, f)
	if err != nil {
		s.log.Error("list products", slog.Any("err", err), slog.String("query", f.Query))
		s.notify.Error("Could not reach the store, please try again")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != id {
		// A newer filter was scheduled while this fetch was in flight.
		s.log.Debug("discarding stale product response", slog.String("query", f.Query))
		return
	}
	s.sink.ReplaceProducts(page.Items, page.Total)
}

// FetchProduct loads a single product, bypassing the debounce. Used for
// deep links and detail refreshes.
func (s *Service) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// SubmitSearch records the current search term in the user's search
// history. Best effort: signed-out users and empty terms are skipped,
// failures are logged but never surfaced.
func (s *Service) SubmitSearch(ctx context.Context) {
	s.mu.Lock()
	term := s.filter.Query
	s.mu.Unlock()

	uid, ok := s.session.CurrentUserID()
	if !ok || term == "" {
		return
	}
	if err := s.products.RecordSearch(ctx, uid, term); err != nil {
		s.log.Warn("record search history", slog.Any("err", err))
	}
}
