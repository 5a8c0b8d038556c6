// Package detail tracks the state of a single food listing view and its
// add-to-cart action.
package detail

import (
	"errors"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// DefaultNoticeDuration is how long the "added to cart" notice stays visible
const DefaultNoticeDuration = 3 * time.Second

var ErrNotAdded = errors.New("food was not added to cart")

// Status of the detail view
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "LOADING"
	case StatusLoaded:
		return "LOADED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Controller holds the detail view state for one food id at a time.
// Every Load issues a new tag; results carrying an older tag are ignored.
type Controller struct {
	noticeDuration time.Duration

	id     int64
	tag    uint64
	status Status
	food   *models.Food
	err    error

	adding      bool
	noticeUntil time.Time
}

// NewController creates a detail controller; a non-positive noticeDuration
// falls back to DefaultNoticeDuration
func NewController(noticeDuration time.Duration) *Controller {
	if noticeDuration <= 0 {
		noticeDuration = DefaultNoticeDuration
	}
	return &Controller{noticeDuration: noticeDuration}
}

// Load starts loading food id and returns the tag of the request to issue
func (c *Controller) Load(id int64) uint64 {
	c.tag++
	c.id = id
	c.status = StatusLoading
	c.food = nil
	c.err = nil
	c.adding = false
	c.noticeUntil = time.Time{}
	return c.tag
}

// ApplyFood records the loaded food. It reports false for a stale tag.
func (c *Controller) ApplyFood(tag uint64, food *models.Food) bool {
	if tag != c.tag || c.status != StatusLoading {
		return false
	}
	if food == nil {
		c.status = StatusFailed
		c.err = errors.New("food not found")
		return true
	}
	c.food = food
	c.status = StatusLoaded
	return true
}

// FailLoad records a load failure. It reports false for a stale tag.
func (c *Controller) FailLoad(tag uint64, err error) bool {
	if tag != c.tag || c.status != StatusLoading {
		return false
	}
	c.status = StatusFailed
	c.err = err
	return true
}

// BeginAddToCart marks an add-to-cart request as pending and returns the food id
// and tag to issue it with. A trigger while one is pending, or before the food
// has loaded, is ignored.
func (c *Controller) BeginAddToCart() (int64, uint64, bool) {
	if c.status != StatusLoaded || c.adding {
		return 0, 0, false
	}
	c.adding = true
	return c.id, c.tag, true
}

// ApplyAddToCart records the add-to-cart outcome. A true result shows the notice
// until now+noticeDuration; false or an error moves the view to StatusFailed.
func (c *Controller) ApplyAddToCart(tag uint64, added bool, err error, now time.Time) bool {
	if tag != c.tag || !c.adding {
		return false
	}
	c.adding = false

	switch {
	case err != nil:
		c.status = StatusFailed
		c.err = err
	case !added:
		c.status = StatusFailed
		c.err = ErrNotAdded
	default:
		c.noticeUntil = now.Add(c.noticeDuration)
	}
	return true
}

// NoticeVisible reports whether the "added to cart" notice shows at now
func (c *Controller) NoticeVisible(now time.Time) bool {
	return !c.noticeUntil.IsZero() && now.Before(c.noticeUntil)
}

// Dismiss hides the notice before it expires
func (c *Controller) Dismiss() {
	c.noticeUntil = time.Time{}
}

func (c *Controller) ID() int64 { return c.id }
func (c *Controller) Tag() uint64 { return c.tag }
func (c *Controller) Status() Status { return c.status }
func (c *Controller) Food() *models.Food { return c.food }
func (c *Controller) Err() error { return c.err }
func (c *Controller) Adding() bool { return c.adding }
func (c *Controller) NoticeDuration() time.Duration { return c.noticeDuration }
