package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/kapu/ytsearch/internal/domain"
	ytsvc "github.com/kapu/ytsearch/internal/service/youtube"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
	"google.golang.org/api/youtube/v3"
)

// CredentialProvider yields an HTTP client that carries delegated credentials.
type CredentialProvider interface {
	Client(ctx context.Context) (*http.Client, error)
}

// Authenticator builds YouTube service handles for the selected method. Every
// handle sends its traffic through ytsvc.CaptureTransport.
type Authenticator struct {
	apiKey   string
	provider CredentialProvider
	options  []option.ClientOption
	logger   *zap.Logger
}

// NewAuthenticator creates an Authenticator. Extra client options are appended
// to every service it builds.
func NewAuthenticator(apiKey string, provider CredentialProvider, logger *zap.Logger, opts ...option.ClientOption) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		apiKey:   apiKey,
		provider: provider,
		options:  opts,
		logger:   logger,
	}
}

func (a *Authenticator) Authenticate(ctx context.Context, method domain.AuthMethod, offered domain.AuthMethods) (*youtube.Service, error) {
	if !offered.Contains(method) {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotOffered, method)
	}

	switch method {
	case domain.AuthMethodAPIKey:
		return a.withAPIKey(ctx)
	case domain.AuthMethodOAuth:
		return a.withOAuth(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrMethodNotOffered, method)
	}
}

func (a *Authenticator) withAPIKey(ctx context.Context) (*youtube.Service, error) {
	method := domain.AuthMethodAPIKey.String()
	transport, err := htransport.NewTransport(ctx, &ytsvc.CaptureTransport{}, option.WithAPIKey(a.apiKey))
	if err != nil {
		return nil, apperrors.NewAuthError("YouTube サービスの作成に失敗しました", method, err)
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(&http.Client{Transport: transport})}, a.options...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, apperrors.NewAuthError("YouTube サービスの作成に失敗しました", method, err)
	}

	a.logger.Info("YouTube service initialized", zap.Stringer("method", domain.AuthMethodAPIKey))
	return service, nil
}

func (a *Authenticator) withOAuth(ctx context.Context) (*youtube.Service, error) {
	method := domain.AuthMethodOAuth.String()
	if a.provider == nil {
		return nil, apperrors.NewAuthError("OAuth 認証は設定されていません", method, ErrSecretsNotFound)
	}

	client, err := a.provider.Client(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Error("Client secret file not found", zap.Error(err))
			return nil, apperrors.NewAuthError("クライアントシークレットファイルが見つかりません", method,
				fmt.Errorf("%w: %w", ErrSecretsNotFound, err))
		}
		a.logger.Error("OAuth authorization failed", zap.Error(err))
		return nil, apperrors.NewAuthError("認証に失敗しました", method,
			fmt.Errorf("%w: %w", ErrAuthorization, err))
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(ytsvc.WrapClient(client))}, a.options...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, apperrors.NewAuthError("YouTube サービスの作成に失敗しました", method, err)
	}

	a.logger.Info("YouTube service initialized", zap.Stringer("method", domain.AuthMethodOAuth))
	return service, nil
}
