// Package tui is the terminal storefront: a paginated catalog with filters,
// a food detail view with add-to-cart, the provider's own listings and the
// create-listing form.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/detail"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/foodapi"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/listing"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// API is the part of the food API the storefront calls
type API interface {
	ListFoods(ctx context.Context, filter models.FoodFilter) (*models.FoodPage, error)
	GetFood(ctx context.Context, id int64) (*models.Food, error)
	AddToCart(ctx context.Context, id int64) (bool, error)
	CreateFood(ctx context.Context, req models.CreateFoodRequest) (*models.Food, error)
	LoadReferences(ctx context.Context) (*foodapi.References, error)
}

// Options configures the storefront
type Options struct {
	PageSize       int
	NoticeDuration time.Duration
	ProviderID     int64 // default provider for new listings
	Logger         *slog.Logger
}

// prefetchThreshold is how close to the last loaded row the cursor gets before
// the next page is requested
const prefetchThreshold = 3

type screen int

const (
	screenCatalog screen = iota
	screenDetail
	screenForm
	screenManage
)

// App is the root bubbletea model
type App struct {
	api  API
	log  *slog.Logger
	now  func() time.Time
	keys keyMap

	screen screen
	back   screen // where detail and form return to
	width  int
	height int

	loader  *catalog.Loader
	cursor  int
	refs    foodapi.References
	refsErr error
	panel   filterPanel

	// listings of the configured provider
	mine       *catalog.Loader
	mineCursor int
	mineErr    error

	detail *detail.Controller

	providerID int64
	form       *listing.Form
	inputs     []textinput.Model
	focus      int

	spinner spinner.Model
	help    help.Model
}

// New creates the storefront app
func New(api API, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 15
	}
	if opts.ProviderID <= 0 {
		opts.ProviderID = 1
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &App{
		api:        api,
		log:        log,
		now:        time.Now,
		keys:       keys,
		loader:     catalog.NewLoader(opts.PageSize, catalog.NewSelection(), log),
		mine:       catalog.NewLoader(opts.PageSize, catalog.NewSelection(), log.With("list", "mine")),
		panel:      newFilterPanel(),
		detail:     detail.NewController(opts.NoticeDuration),
		providerID: opts.ProviderID,
		spinner:    s,
		help:       help.New(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(loadReferencesCmd(a.api), a.fetchNext(a.loader))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case referencesMsg:
		if msg.err != nil {
			a.log.Warn("failed to load filter choices", "error", msg.err)
			a.refsErr = msg.err
			return a, nil
		}
		a.refs = *msg.refs
		a.refsErr = nil
		if a.screen == screenManage && a.mineErr != nil {
			return a, a.openManage()
		}
		return a, nil

	case pageMsg:
		return a, a.applyPage(msg)

	case foodMsg:
		if msg.err != nil {
			a.detail.FailLoad(msg.tag, msg.err)
		} else {
			a.detail.ApplyFood(msg.tag, msg.food)
		}
		return a, nil

	case addedMsg:
		if !a.detail.ApplyAddToCart(msg.tag, msg.added, msg.err, a.now()) {
			return a, nil
		}
		a.log.Info("add to cart", "food_id", a.detail.ID(), "added", msg.added, "error", msg.err)
		if a.detail.NoticeVisible(a.now()) {
			return a, noticeTimerCmd(a.detail.NoticeDuration(), msg.tag)
		}
		return a, nil

	case noticeExpiredMsg:
		// timers from an earlier food must not touch the current one
		if msg.tag == a.detail.Tag() && !a.detail.NoticeVisible(a.now()) {
			a.detail.Dismiss()
		}
		return a, nil

	case createdMsg:
		return a, a.applyCreated(msg)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch a.screen {
		case screenDetail:
			return a, a.updateDetail(msg)
		case screenForm:
			return a, a.updateForm(msg)
		case screenManage:
			return a, a.updateManage(msg)
		default:
			return a, a.updateCatalog(msg)
		}
	}

	return a, a.updateInputs(msg)
}

func (a *App) View() string {
	var body string
	var km help.KeyMap
	switch a.screen {
	case screenDetail:
		body, km = a.detailView(), a.keys.detailHelp()
	case screenForm:
		body, km = a.formView(), a.keys.formHelp()
	case screenManage:
		body, km = a.manageView(), a.keys.manageHelp()
	default:
		body = a.catalogView()
		km = a.keys.catalogHelp()
		if a.panel.open {
			km = a.keys.panelHelp()
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, helpStyle.Render(a.help.View(km)))
}

// busy reports whether any request the user is waiting on is outstanding
func (a *App) busy() bool {
	return a.loader.Fetching() || a.mine.Fetching() ||
		(a.screen == screenDetail && (a.detail.Status() == detail.StatusLoading || a.detail.Adding())) ||
		(a.form != nil && a.form.Status() == listing.StatusSubmitting)
}

// withSpinner batches cmd with a spinner tick so the spinner animates while it runs
func (a *App) withSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, a.spinner.Tick)
}
