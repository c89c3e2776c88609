package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kapu/ytsearch/internal/adapter"
	"github.com/kapu/ytsearch/internal/auth"
	"github.com/kapu/ytsearch/internal/config"
	"github.com/kapu/ytsearch/internal/domain"
	"github.com/kapu/ytsearch/internal/report"
	"github.com/kapu/ytsearch/internal/service/youtube"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Dependencies are the process-level collaborators of a run. Zero values are
// replaced with the real terminal, filesystem and OAuth flow.
type Dependencies struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Provider supplies delegated credentials; nil builds a LocalServerFlow
	// when CLIENT_SECRET_FILE is configured.
	Provider auth.CredentialProvider
	Store    report.Store

	// ServiceOptions are appended to every YouTube client built for the run.
	ServiceOptions []option.ClientOption
}

// Container bundles the configuration and services for a single run.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	deps          Dependencies
	authenticator *auth.Authenticator
	sink          *report.Sink
}

// Build assembles a Container. Nothing here touches the network.
func Build(cfg *config.Config, logger *zap.Logger, deps Dependencies) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Store == nil {
		deps.Store = report.NewFileStore(cfg.Report.Dir)
	}
	if deps.Provider == nil && cfg.YouTube.HasClientSecret() {
		flow := auth.NewLocalServerFlow(cfg.YouTube.ClientSecretFile, cfg.YouTube.TokenFile, logger)
		flow.Out = deps.Stdout
		deps.Provider = flow
	}

	return &Container{
		Config:        cfg,
		Logger:        logger,
		deps:          deps,
		authenticator: auth.NewAuthenticator(cfg.YouTube.APIKey, deps.Provider, logger, deps.ServiceOptions...),
		sink:          report.NewSink(deps.Stdout, deps.Store, logger),
	}, nil
}

// Run executes one search. Every fatal condition is returned; a failure to
// save the report file is printed and swallowed.
func (c *Container) Run(ctx context.Context, terms []string) error {
	query := domain.NewSearchQuery(terms)
	if query.IsEmpty() {
		return apperrors.NewConfigError("検索キーワードが指定されていません", nil, nil)
	}

	methods, warnings, err := auth.Resolve(c.Config.YouTube)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		fmt.Fprintln(c.deps.Stdout, warning)
		c.Logger.Warn("Authentication method unavailable", zap.String("detail", warning))
	}

	method, err := auth.SelectMethod(c.deps.Stdin, c.deps.Stdout, methods)
	if err != nil {
		return err
	}

	service, err := c.authenticator.Authenticate(ctx, method, methods)
	if err != nil {
		return err
	}

	c.Logger.Info("Searching videos",
		zap.String("query", query.String()),
		zap.Int64("maxResults", c.Config.Search.MaxResults),
		zap.Stringer("method", method))

	records, err := youtube.NewSearchService(service, c.Logger).Search(ctx, query, c.Config.Search.MaxResults)
	if err != nil {
		return err
	}

	path, err := c.sink.Emit(query, adapter.FormatRecords(records), c.Config.Report.Save)
	if err != nil {
		fmt.Fprintln(c.deps.Stderr, err)
		return nil
	}
	if path != "" {
		fmt.Fprintf(c.deps.Stdout, "検索結果を %s に保存しました。\n", path)
	}

	return nil
}
