package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/config"
	"github.com/stocklyhq/stockly/internal/client/services"
	"github.com/stocklyhq/stockly/internal/client/session"
	"github.com/stocklyhq/stockly/internal/client/storage"
	"github.com/stocklyhq/stockly/internal/client/tokens"
	"github.com/stocklyhq/stockly/internal/logging"
)

// App wires together the API client, the session, and the catalog cache,
// and carries the state the REPL commands operate on.
type App struct {
	config  *config.Config
	client  client.Client
	session *session.Session
	catalog services.CatalogService
	repos   *storage.Repositories
	reader  *bufio.Reader
	log     logging.Logger
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	store := tokens.NewFileStore(c.CredentialsPath, logger)

	apiClient, err := client.New(c.ServerBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	repos, err := storage.InitDatabase(ctx, c.CacheDBPath)
	if err != nil {
		log.Printf("error initializing cache database: %s", err.Error())
		return nil, err
	}

	return &App{
		config:  c,
		client:  apiClient,
		session: session.New(apiClient, store, logger),
		catalog: services.NewCatalogService(apiClient, repos.Products, repos.Customers, repos, logger),
		repos:   repos,
		reader:  bufio.NewReader(os.Stdin),
		log:     logger,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()

	if a.session.Bootstrap() {
		if u := a.session.User(); u != nil {
			log.Printf("Restored session for %s", u.Username)
		}
	}

	a.Root(ctx)
}
