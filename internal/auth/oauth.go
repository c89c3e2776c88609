package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// LocalServerFlow runs the installed-app authorization code flow: the consent
// URL is shown to the user and the code arrives on a loopback callback.
type LocalServerFlow struct {
	SecretFile string
	// TokenFile caches the token between runs when set.
	TokenFile string
	Scopes    []string
	Out       io.Writer
	// OpenURL is called with the consent URL after it has been printed.
	// Defaults to the system browser.
	OpenURL func(authURL string) error
	Logger  *zap.Logger
}

type callbackResult struct {
	code string
	err  error
}

func NewLocalServerFlow(secretFile, tokenFile string, logger *zap.Logger) *LocalServerFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalServerFlow{
		SecretFile: secretFile,
		TokenFile:  tokenFile,
		Scopes:     []string{youtube.YoutubeReadonlyScope},
		Out:        os.Stdout,
		OpenURL:    browser.OpenURL,
		Logger:     logger,
	}
}

// Client implements CredentialProvider.
func (f *LocalServerFlow) Client(ctx context.Context) (*http.Client, error) {
	credBytes, err := os.ReadFile(f.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	config, err := google.ConfigFromJSON(credBytes, f.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}

	if f.TokenFile == "" {
		token, err := f.authorize(ctx, config)
		if err != nil {
			return nil, err
		}
		return config.Client(ctx, token), nil
	}

	store := &tokenStore{path: f.TokenFile, logger: f.logger()}
	token, err := store.load()
	if err == nil {
		f.logger().Info("Reusing cached OAuth token", zap.String("file", f.TokenFile))
	} else {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger().Warn("Ignoring unreadable OAuth token cache",
				zap.String("file", f.TokenFile),
				zap.Error(err))
		}
		if token, err = f.authorize(ctx, config); err != nil {
			return nil, err
		}
		store.save(token)
	}

	// Tokens refreshed during the run are written back to the cache.
	source := oauth2.ReuseTokenSource(token, &savingTokenSource{
		base:  config.TokenSource(ctx, token),
		store: store,
		last:  token.AccessToken,
	})
	return oauth2.NewClient(ctx, source), nil
}

func (f *LocalServerFlow) authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("unable to start callback listener: %w", err)
	}
	config.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state := uuid.NewString()
	results := make(chan callbackResult, 1)
	server := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger().Warn("OAuth callback server stopped", zap.Error(err))
		}
	})
	defer func() {
		_ = server.Shutdown(context.Background())
		wg.Wait()
	}()

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	out := f.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "ブラウザで次の URL を開き、アクセスを許可してください:")
	fmt.Fprintln(out, authURL)

	if f.OpenURL != nil {
		if err := f.OpenURL(authURL); err != nil {
			f.logger().Warn("Unable to open consent URL", zap.Error(err))
		}
	}

	f.logger().Info("Waiting for OAuth callback", zap.String("redirect", config.RedirectURL))

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		result.err = ctx.Err()
	}
	if result.err != nil {
		return nil, result.err
	}

	token, err := config.Exchange(ctx, result.code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token: %w", err)
	}
	return token, nil
}

func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	deliver := func(r callbackResult) {
		select {
		case results <- r:
		default:
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		query := r.URL.Query()
		switch {
		case query.Get("error") != "":
			http.Error(w, "認証がキャンセルされました。", http.StatusForbidden)
			deliver(callbackResult{err: fmt.Errorf("authorization denied: %s", query.Get("error"))})
		case query.Get("state") != state:
			http.Error(w, "不正なリクエストです。", http.StatusBadRequest)
			deliver(callbackResult{err: errors.New("authorization state mismatch")})
		case query.Get("code") == "":
			http.Error(w, "認証コードがありません。", http.StatusBadRequest)
			deliver(callbackResult{err: errors.New("authorization code missing")})
		default:
			fmt.Fprintln(w, "認証が完了しました。このウィンドウを閉じてください。")
			deliver(callbackResult{code: query.Get("code")})
		}
	})
}

func (f *LocalServerFlow) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

// tokenStore caches an OAuth token as JSON, readable only by the owner.
type tokenStore struct {
	path   string
	logger *zap.Logger
}

func (s *tokenStore) load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decode token cache %s: %w", s.path, err)
	}
	return &token, nil
}

// save logs failures instead of returning them.
func (s *tokenStore) save(token *oauth2.Token) {
	data, err := json.Marshal(token)
	if err == nil {
		err = os.WriteFile(s.path, data, 0o600)
	}
	if err != nil {
		s.logger.Warn("Unable to cache OAuth token",
			zap.String("file", s.path),
			zap.Error(err))
	}
}

// savingTokenSource stores every token base hands out that differs from the
// last one seen.
type savingTokenSource struct {
	base  oauth2.TokenSource
	store *tokenStore

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		s.store.save(token)
		s.last = token.AccessToken
		s.store.logger.Info("OAuth token refreshed", zap.String("file", s.store.path))
	}
	return token, nil
}
