// Package catalog holds the state behind the food catalog: the user's filter
// selection and the incremental page loader.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

// Phase is the loader state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseLoaded
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseFetching:
		return "FETCHING"
	case PhaseLoaded:
		return "LOADED"
	case PhaseErrored:
		return "ERRORED"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// UnknownTotal marks a total page count that has not been reported yet
const UnknownTotal = -1

var (
	ErrInvalidTransition = errors.New("invalid loader transition")
	ErrEmptyResponse     = errors.New("empty page response")
)

// Tag identifies the selection generation and page a request was issued for
type Tag struct {
	Generation uint64
	Page       int
}

// Request is a page fetch the caller must perform and report back with Apply or Fail
type Request struct {
	Tag    Tag
	Filter models.FoodFilter
}

// Loader accumulates pages of foods for the current selection.
//
// At most one page request is outstanding at a time. Changing the selection bumps
// the generation, so results of requests issued before the change are dropped.
// A Loader is owned by a single event loop and is not safe for concurrent use.
type Loader struct {
	pageSize   int
	selection  Selection
	generation uint64
	phase      Phase
	inFlight   Tag

	items       []models.Food
	currentPage int
	totalItems  int
	totalPages  int
	err         error

	log *slog.Logger
}

// NewLoader creates a loader for sel with nothing loaded
func NewLoader(pageSize int, sel Selection, log *slog.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}
	return &Loader{
		pageSize:   pageSize,
		selection:  sel,
		phase:      PhaseIdle,
		totalPages: UnknownTotal,
		log:        log,
	}
}

func isAllowedTransition(from, to Phase) bool {
	switch from {
	case PhaseIdle, PhaseLoaded:
		return to == PhaseFetching || to == PhaseIdle
	case PhaseFetching:
		return to == PhaseLoaded || to == PhaseErrored || to == PhaseIdle
	case PhaseErrored:
		return to == PhaseIdle
	default:
		return false
	}
}

func (l *Loader) transition(to Phase) error {
	if !isAllowedTransition(l.phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.phase, to)
	}
	l.phase = to
	return nil
}

// Next starts fetching the page after the last loaded one.
//
// It returns false, and changes nothing, while a fetch is in flight, after an
// error (see Retry) or once the results are exhausted. Triggers are ignored, not queued.
func (l *Loader) Next() (Request, bool) {
	if l.Exhausted() {
		return Request{}, false
	}
	if err := l.transition(PhaseFetching); err != nil {
		return Request{}, false
	}

	l.inFlight = Tag{Generation: l.generation, Page: l.currentPage + 1}
	l.log.Debug("fetching page", "page", l.inFlight.Page, "generation", l.generation)

	return Request{
		Tag:    l.inFlight,
		Filter: l.selection.Filter(l.inFlight.Page, l.pageSize),
	}, true
}

// Apply merges the response to the request tagged tag.
// It reports false when the response is stale and was dropped.
func (l *Loader) Apply(tag Tag, page *models.FoodPage) bool {
	if !l.current(tag) {
		l.log.Debug("dropping stale page", "page", tag.Page, "generation", tag.Generation)
		return false
	}
	if page == nil {
		return l.Fail(tag, ErrEmptyResponse)
	}

	if tag.Page == 1 {
		l.items = append([]models.Food(nil), page.Foods...)
	} else {
		l.items = append(l.items, page.Foods...)
	}
	l.currentPage = tag.Page
	l.totalItems = page.TotalItems
	l.totalPages = page.TotalPages
	if l.totalPages <= 0 {
		l.totalPages = models.TotalPages(page.TotalItems, l.pageSize)
	}

	_ = l.transition(PhaseLoaded)
	l.log.Debug("page loaded",
		"page", l.currentPage,
		"total_pages", l.totalPages,
		"items", len(l.items),
	)
	return true
}

// Fail records the error for the request tagged tag.
// It reports false when the failure is stale and was dropped.
func (l *Loader) Fail(tag Tag, err error) bool {
	if !l.current(tag) {
		return false
	}
	l.err = err
	_ = l.transition(PhaseErrored)
	l.log.Warn("page load failed", "page", tag.Page, "error", err)
	return true
}

// Retry clears a recorded error so Next may request the failed page again
func (l *Loader) Retry() bool {
	if l.phase != PhaseErrored {
		return false
	}
	l.err = nil
	_ = l.transition(PhaseIdle)
	return true
}

// SetSelection replaces the selection and discards every loaded item.
// Any request still in flight becomes stale.
func (l *Loader) SetSelection(sel Selection) {
	l.selection = sel
	l.Reset()
}

// Reset discards loaded items and restarts paging at page 1
func (l *Loader) Reset() {
	l.generation++
	l.items = nil
	l.currentPage = 0
	l.totalItems = 0
	l.totalPages = UnknownTotal
	l.err = nil
	l.inFlight = Tag{}
	_ = l.transition(PhaseIdle)
}

func (l *Loader) current(tag Tag) bool {
	return l.phase == PhaseFetching && tag == l.inFlight
}

// Exhausted reports whether the last known page has been loaded
func (l *Loader) Exhausted() bool {
	return l.totalPages != UnknownTotal && l.currentPage >= l.totalPages
}

// NearBottom reports whether cursor is within threshold rows of the last loaded item
func (l *Loader) NearBottom(cursor, threshold int) bool {
	return len(l.items)-1-cursor < threshold
}

// ShouldPrefetch reports whether a scroll to cursor should trigger Next
func (l *Loader) ShouldPrefetch(cursor, threshold int) bool {
	switch l.phase {
	case PhaseIdle, PhaseLoaded:
		return !l.Exhausted() && l.NearBottom(cursor, threshold)
	default:
		return false
	}
}

func (l *Loader) Items() []models.Food { return l.items }
func (l *Loader) Len() int { return len(l.items) }
func (l *Loader) Phase() Phase { return l.phase }
func (l *Loader) Fetching() bool { return l.phase == PhaseFetching }
func (l *Loader) Err() error { return l.err }
func (l *Loader) CurrentPage() int { return l.currentPage }
func (l *Loader) TotalPages() int { return l.totalPages }
func (l *Loader) TotalItems() int { return l.totalItems }
func (l *Loader) PageSize() int { return l.pageSize }
func (l *Loader) Selection() Selection { return l.selection }
func (l *Loader) Generation() uint64 { return l.generation }
