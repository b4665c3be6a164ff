package cmd

import (
	"net/http"

	"github.com/brogergvhs/xkcdbot/internal/comic"
	"github.com/brogergvhs/xkcdbot/internal/config"
	"github.com/brogergvhs/xkcdbot/internal/index"
	"github.com/brogergvhs/xkcdbot/internal/navigator"
	"github.com/brogergvhs/xkcdbot/internal/resolve"
	"github.com/brogergvhs/xkcdbot/internal/ui"
	"github.com/brogergvhs/xkcdbot/internal/util"
)

// app is the wiring shared by every command.
type app struct {
	cfg      *config.Config
	cfgPath  string
	log      *ui.Logger
	client   *http.Client
	fetcher  *comic.Fetcher
	names    *index.Names
	resolver *resolve.Resolver
}

func loadConfig(extra config.Options) (*config.Config, string, error) {
	extra.IgnoreConfig = flagIgnoreConfig
	extra.Debug = flagDebug
	extra.EnvFile = flagEnvFile
	extra.BaseURL = flagBaseURL
	extra.UserAgent = flagUserAgent
	extra.Timeout = flagTimeout

	return config.LoadMerged(extra)
}

func newApp(extra config.Options) (*app, error) {
	cfg, used, err := loadConfig(extra)
	if err != nil {
		return nil, err
	}

	return buildApp(cfg, used), nil
}

func buildApp(cfg *config.Config, used string) *app {
	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Mask(cfg.Token)
	logSvc.Debugf("Config file: %s\n", used)

	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.Timeout(),
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		DebugLogger: logSvc,
	})

	fetcher := comic.NewFetcher(client, cfg.BaseURL, logSvc)
	names := index.New(client, cfg.BaseURL, logSvc)

	a := &app{
		cfg:     cfg,
		cfgPath: used,
		log:     logSvc,
		client:  client,
		fetcher: fetcher,
		names:   names,
	}
	a.resolver = a.resolverFor(fetcher)

	return a
}

// resolverFor builds a resolver over src sharing the app's name index.
func (a *app) resolverFor(src comic.Source) *resolve.Resolver {
	return resolve.New(src, a.names, resolve.Options{
		MaxRange: a.cfg.MaxRange,
		Workers:  a.cfg.RangeWorkers,
	})
}

func (a *app) navigator() *navigator.Navigator {
	return navigator.New(a.fetcher, navigator.Options{
		TTL: a.cfg.ButtonTimeout(),
		Links: navigator.Links{
			ComicBase:   a.cfg.BaseURL,
			ExplainBase: a.cfg.ExplainURL,
		},
		Log: a.log,
	})
}
