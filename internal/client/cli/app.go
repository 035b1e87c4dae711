package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/agrismart/agrismart-cli/internal/client/api"
	"github.com/agrismart/agrismart-cli/internal/client/chat"
	"github.com/agrismart/agrismart-cli/internal/client/config"
	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/client/prefs"
	"github.com/agrismart/agrismart-cli/internal/client/session"
	"github.com/agrismart/agrismart-cli/internal/client/storage"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
)

// backend is the slice of the REST adapter the views consume. The real
// api.Client satisfies it; tests provide a stub.
type backend interface {
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) error
	Weather(ctx context.Context, location string) (models.WeatherReport, error)
	DetectDisease(ctx context.Context, filename string, image []byte) (models.Detection, error)
	DiseaseHistory(ctx context.Context) ([]models.DetectionRecord, error)
	Products(ctx context.Context, category, search string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.NewProduct) (int64, error)
	Tips(ctx context.Context, category, language string) ([]models.Tip, error)
	Schemes(ctx context.Context, category, state string) ([]models.Scheme, error)
	ForumPosts(ctx context.Context, category string) ([]models.ForumPost, error)
	CreateForumPost(ctx context.Context, p models.NewForumPost) (int64, error)
	Comments(ctx context.Context, postID int64) ([]models.ForumComment, error)
	AddComment(ctx context.Context, postID int64, content string) error
	AskAI(ctx context.Context, question, language string) (models.ChatExchange, error)
	ChatHistory(ctx context.Context) ([]models.ChatExchange, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
	Speak(ctx context.Context, text string) ([]byte, bool, error)
}

// messenger is the slice of the live chat client the connect view consumes.
type messenger interface {
	Activate(ctx context.Context, room string) error
	Deactivate(ctx context.Context) error
	Send(ctx context.Context, body string) error
	Typing(ctx context.Context)
	Messages() []models.Message
	State() chat.State
	Room() string
	TypingPeer() (string, bool)
	Seed(msgs []models.Message)
	Subscribe(fn func())
}

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	session  *session.Store
	prefs    *prefs.Store
	guard    *guard.Guard
	backend  backend
	chat     messenger
	fallback *api.Fallback

	reader *bufio.Reader
	out    io.Writer

	// route is where the client currently "is"; forced redirects land here.
	route guard.Route
	dark  bool

	// chat printer state, see ensureChatPrinter. chatMu serializes the
	// printer callback, which fires on whichever goroutine mutated the
	// chat client (the socket reader for inbound frames, the REPL for
	// sends).
	chatMu        sync.Mutex
	chatPrinterOn bool
	chatSeen      int
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing local storage: %w", err)
	}

	app := &App{
		config: c,
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		route:  guard.RouteLanding,
	}

	repo := storage.NewSQLiteRepository(db)
	app.session = session.NewStore(repo, log)
	app.prefs = prefs.NewStore(repo, app.applyTheme, log)

	if err := app.session.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if err := app.prefs.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restoring preferences: %w", err)
	}
	app.prefs.InitTheme()

	app.guard = guard.New(app.session, app.navigate)
	app.backend = api.New(c.ServerURL, app.session, app.navigate, c.RequestTimeout, log)
	app.chat = chat.New(c.SocketURL, chat.Dial, app.session, log)
	app.fallback = api.NewFallback()

	return app, nil
}

// navigate is the terminal rendition of a client-side redirect: the current
// route changes and the user is told where they ended up.
func (a *App) navigate(r guard.Route) {
	if a.route == r {
		return
	}
	a.route = r
	if r == guard.RouteLogin && !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, a.tr("redirected_login"))
	}
}

func (a *App) applyTheme(dark bool) {
	a.dark = dark
}

// visit gates a command behind the route guard. Denied visits already
// printed the redirect notice.
func (a *App) visit(r guard.Route) bool {
	if !a.guard.Allow(r) {
		return false
	}
	a.route = r
	return true
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// reportErr prints a page-level failure, except for the forced-logout path:
// a 401 already cleared the session and printed the login notice, so the
// view stays silent about it.
func (a *App) reportErr(prefix string, err error) error {
	if !errors.Is(err, common.ErrUnauthorized) {
		fmt.Fprintln(a.out, prefix, err)
	}
	return err
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.chat.State() != chat.StateDisconnected {
		_ = a.chat.Deactivate(context.Background())
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing local storage", "err", err)
	}
}
