package wayfarer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type App struct {
	config  *Config
	db      *core.SQLiteDB
	context context.Context
	server  *http.Server
	logger  *slog.Logger
	router  *router.Router

	exit chan int

	userStore        core.UserStore
	locationStore    core.LocationStore
	destinationStore core.DestinationStore
	hazardStore      core.HazardStore
	messageStore     core.MessageStore
	groupStore       core.GroupStore

	auth *core.AuthService

	cleanupFuncs []func(context.Context)
}

// DefaultRoutePolicy is the deployed access policy: auth, search, weather and
// location endpoints are public, everything else needs a verified token.
// Order matters only among overlapping patterns; unmatched paths are
// protected.
func DefaultRoutePolicy() (*core.RoutePolicy, error) {
	return core.NewRoutePolicy(
		core.RouteRule{Pattern: "/api/auth/**", Access: core.Public},
		core.RouteRule{Pattern: "/api/search/**", Access: core.Public},
		core.RouteRule{Pattern: "/api/weather/**", Access: core.Public},
		core.RouteRule{Pattern: "/api/locations/**", Access: core.Public},
	)
}

func New(ctx context.Context, config *Config) *App {
	var err error
	app := &App{
		exit: make(chan int),
	}
	if ctx == nil {
		ctx, _ = signal.NotifyContext(
			context.Background(),
			syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	}
	app.context = ctx

	if config == nil {
		config, err = LoadConfig()
		if err != nil {
			failed(1, "failed to load config: %v\n", err)
		}
	}
	if err := config.Validate(); err != nil {
		failed(1, "invalid config:\n%s\n", FormatValidationErrors(err))
	}
	app.config = config

	app.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}))

	sqliteOptions := &core.SQLiteDBOption{
		Mode:        "rwc",
		Cache:       "shared",
		JournalMode: "WAL",
	}
	app.db, err = core.NewSQLiteDB(app.config.SQLite.File, app.config.SQLite.Migrations, sqliteOptions)
	if err != nil {
		failed(1, "failed to open database: %v\n", err)
	}
	app.AddCleanupFunc(func(ctx context.Context) {
		app.db.Close()
	})
	if err := app.db.Migrate(); err != nil {
		failed(1, "failed to migrate database: %v\n", err)
	}

	app.userStore = core.NewSQLiteUserStore(app.db.DB)
	app.locationStore = core.NewSQLiteLocationStore(app.db.DB)
	app.destinationStore = core.NewSQLiteDestinationStore(app.db.DB)
	app.hazardStore = core.NewSQLiteHazardStore(app.db.DB)
	app.messageStore = core.NewSQLiteMessageStore(app.db.DB)
	app.groupStore = core.NewSQLiteGroupStore(app.db.DB)

	codec := core.NewTokenCodec(app.config.Auth.Secret)
	hasher := core.NewBcryptHasher(app.config.Auth.BcryptCost)
	app.auth = core.NewAuthService(app.userStore, hasher, codec, app.config.Auth.TokenTTL)

	policy, err := DefaultRoutePolicy()
	if err != nil {
		failed(1, "failed to build route policy: %v\n", err)
	}

	api := newAPIRouter(apiDeps{
		auth:         app.auth,
		codec:        codec,
		policy:       policy,
		users:        app.userStore,
		locations:    app.locationStore,
		destinations: app.destinationStore,
		hazards:      app.hazardStore,
		messages:     app.messageStore,
		groups:       app.groupStore,
		search:       core.NewSearchService(app.locationStore, app.userStore, app.hazardStore),
		weather:      core.NewStaticWeatherProvider(),
	}, app.logger)

	app.router = router.New(router.WithLogger(app.logger))
	app.router.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	app.router.Mount("/api", api)

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", app.config.Hostname, app.config.Port),
		Handler: app.router.Router,
		BaseContext: func(listener net.Listener) context.Context {
			return app.context
		},
	}

	return app
}

type apiDeps struct {
	auth         *core.AuthService
	codec        *core.TokenCodec
	policy       *core.RoutePolicy
	users        core.UserStore
	locations    core.LocationStore
	destinations core.DestinationStore
	hazards      core.HazardStore
	messages     core.MessageStore
	groups       core.GroupStore
	search       *core.SearchService
	weather      core.WeatherProvider
}

// newAPIRouter builds the /api router: error mappings for the expected
// domain failures, the auth gate in front of everything, then the resource
// routes.
func newAPIRouter(deps apiDeps, logger *slog.Logger) *router.Router {
	api := router.New(router.WithLogger(logger))

	api.RegisterErrorMapper(core.ErrDuplicateUser, func(error) router.Error {
		return router.NewJsonError(http.StatusBadRequest, "Username already exists.")
	})
	api.RegisterErrorMapper(core.ErrInvalidCredentials, func(error) router.Error {
		return router.NewJsonError(http.StatusUnauthorized, "Invalid credentials.")
	})
	api.RegisterErrorMapper(core.ErrUserNotFound, func(error) router.Error {
		return router.NewJsonError(http.StatusNotFound, "User not found")
	})
	api.RegisterErrorMapper(core.ErrUnknownSearchKind, func(error) router.Error {
		return router.NewJsonError(http.StatusBadRequest, "unknown search type")
	})

	api.Use(core.AuthGate(deps.policy, deps.codec))

	authHandler := NewAuthHandler(deps.auth)
	api.Route("/auth", func(r *router.Router) {
		r.Post("/register", authHandler.RegisterHandler)
		r.Post("/login", authHandler.LoginHandler)
		r.Get("/me", authHandler.MeHandler)
	})

	userHandler := NewUserHandler(deps.users)
	api.Route("/users", func(r *router.Router) {
		r.Get("/me", userHandler.MeHandler)
		r.Get("/{username}", userHandler.GetUserByUsernameHandler)
	})

	locationHandler := NewLocationHandler(deps.locations)
	api.Route("/locations", func(r *router.Router) {
		r.Get("/", locationHandler.ListLocationsHandler)
		r.Post("/", locationHandler.CreateLocationHandler)
		r.Get("/{locationID}", locationHandler.GetLocationHandler)
		r.Put("/{locationID}", locationHandler.UpdateLocationHandler)
		r.Delete("/{locationID}", locationHandler.DeleteLocationHandler)
	})

	searchHandler := NewSearchHandler(deps.search)
	api.Post("/search", searchHandler.SearchHandler)

	weatherHandler := NewWeatherHandler(deps.weather)
	api.Get("/weather", weatherHandler.GetWeatherHandler)

	hazardHandler := NewHazardHandler(deps.hazards)
	api.Route("/hazards", func(r *router.Router) {
		r.Post("/", hazardHandler.SubmitHazardHandler)
		r.Get("/", hazardHandler.ListHazardsHandler)
	})

	destinationHandler := NewDestinationHandler(deps.destinations)
	api.Route("/destinations", func(r *router.Router) {
		r.Get("/", destinationHandler.ListDestinationsHandler)
		r.Post("/", destinationHandler.CreateDestinationHandler)
		r.Delete("/{destinationID}", destinationHandler.DeleteDestinationHandler)
	})

	messageHandler := NewMessageHandler(deps.messages, deps.groups)
	api.Route("/messages", func(r *router.Router) {
		r.Post("/", messageHandler.SendMessageHandler)
		r.Get("/", messageHandler.ListMessagesHandler)
	})
	api.Route("/groups", func(r *router.Router) {
		r.Post("/", messageHandler.CreateGroupHandler)
		r.Get("/", messageHandler.ListGroupsHandler)
	})

	return api
}

func (app *App) Start() {
	// listen for shutdown signal
	go func() {
		<-app.context.Done()
		close(app.exit)
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()

		var wg sync.WaitGroup
		for _, f := range app.cleanupFuncs {
			wg.Add(1)
			go func(f func(context.Context)) {
				defer wg.Done()
				f(closeCtx)
			}(f)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			app.logger.Info("app shutdown gracefully")
			os.Exit(0)
		case <-closeCtx.Done():
			app.logger.Error("app shutdown timed out")
			os.Exit(1)
		}
	}()

	app.AddCleanupFunc(func(ctx context.Context) {
		app.server.Shutdown(ctx)
	})

	app.logger.Info(fmt.Sprintf("app running on %s:%d", app.config.Hostname, app.config.Port))

	err := app.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		failed(1, "server error: %v\n", err)
	}

	<-app.exit
}

func (app *App) AddCleanupFunc(f func(context.Context)) {
	app.cleanupFuncs = append(app.cleanupFuncs, f)
}

func failed(code int, s string, args ...interface{}) {
	fmt.Printf(s, args...)
	os.Exit(code)
}
