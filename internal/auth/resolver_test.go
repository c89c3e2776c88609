package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/kapu/ytsearch/internal/config"
	"github.com/kapu/ytsearch/internal/domain"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWithoutCredentials(t *testing.T) {
	methods, warnings, err := Resolve(config.YouTubeConfig{})

	require.Error(t, err)
	assert.Nil(t, methods)
	assert.Empty(t, warnings)
	assert.True(t, errors.Is(err, ErrNoCredentials))

	var configErr *apperrors.ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Contains(t, configErr.Message, "YOUTUBE_API_KEY")
	assert.Contains(t, configErr.Message, "CLIENT_SECRET_FILE")
	assert.Equal(t, 1, apperrors.ExitCode(err))
}

func TestResolveSingleCredential(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.YouTubeConfig
		want    domain.AuthMethod
		missing string
	}{
		{
			name:    "api key only",
			cfg:     config.YouTubeConfig{APIKey: "key"},
			want:    domain.AuthMethodAPIKey,
			missing: "CLIENT_SECRET_FILE",
		},
		{
			name:    "client secret only",
			cfg:     config.YouTubeConfig{ClientSecretFile: "client_secret.json"},
			want:    domain.AuthMethodOAuth,
			missing: "YOUTUBE_API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			methods, warnings, err := Resolve(tt.cfg)

			require.NoError(t, err)
			assert.Equal(t, domain.AuthMethods{tt.want}, methods)
			require.Len(t, warnings, 1)
			assert.True(t, strings.Contains(warnings[0], tt.missing))
		})
	}
}

func TestResolveBothCredentials(t *testing.T) {
	methods, warnings, err := Resolve(config.YouTubeConfig{APIKey: "key", ClientSecretFile: "secret.json"})

	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethods{domain.AuthMethodAPIKey, domain.AuthMethodOAuth}, methods)
	assert.Empty(t, warnings)
}
