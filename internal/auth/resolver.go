package auth

import (
	"errors"

	"github.com/kapu/ytsearch/internal/config"
	"github.com/kapu/ytsearch/internal/domain"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
)

var (
	ErrNoCredentials    = errors.New("no credentials configured")
	ErrSecretsNotFound  = errors.New("secrets source not found")
	ErrAuthorization    = errors.New("authorization failed")
	ErrMethodNotOffered = errors.New("authentication method not offered")
	ErrNoMethodSelected = errors.New("no authentication method selected")
)

// Resolve derives the available authentication methods from configuration.
// The returned warnings are meant for the user; they never abort the run.
func Resolve(cfg config.YouTubeConfig) (domain.AuthMethods, []string, error) {
	hasKey := cfg.HasAPIKey()
	hasSecret := cfg.HasClientSecret()

	switch {
	case hasKey && hasSecret:
		return domain.AuthMethods{domain.AuthMethodAPIKey, domain.AuthMethodOAuth}, nil, nil
	case hasKey:
		return domain.AuthMethods{domain.AuthMethodAPIKey},
			[]string{"警告: CLIENT_SECRET_FILE が設定されていないため、OAuth 認証は使用できません。API KEY で認証します。"},
			nil
	case hasSecret:
		return domain.AuthMethods{domain.AuthMethodOAuth},
			[]string{"警告: YOUTUBE_API_KEY が設定されていないため、API KEY 認証は使用できません。OAuth で認証します。"},
			nil
	default:
		return nil, nil, apperrors.NewConfigError(
			"認証情報が設定されていません。.env に YOUTUBE_API_KEY または CLIENT_SECRET_FILE を設定してください",
			map[string]any{"keys": []string{"YOUTUBE_API_KEY", "CLIENT_SECRET_FILE"}},
			ErrNoCredentials,
		)
	}
}
