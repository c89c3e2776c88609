package auth

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kapu/ytsearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bothMethods = domain.AuthMethods{domain.AuthMethodAPIKey, domain.AuthMethodOAuth}

func TestSelectMethodSkipsPromptForSingleMethod(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("2\n")

	method, err := SelectMethod(in, &out, domain.AuthMethods{domain.AuthMethodAPIKey})

	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethodAPIKey, method)
	assert.Empty(t, out.String())
	assert.Equal(t, 2, in.Len(), "input must not be consumed")
}

func TestSelectMethodAcceptsOfferedCode(t *testing.T) {
	var out bytes.Buffer

	method, err := SelectMethod(strings.NewReader("2\n"), &out, bothMethods)

	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethodOAuth, method)
	assert.Equal(t, selectPrompt, out.String())
}

func TestSelectMethodRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer

	method, err := SelectMethod(strings.NewReader("3\n１\n\n 1 \n1\r\n"), &out, bothMethods)

	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethodAPIKey, method)
	assert.Equal(t, 5, strings.Count(out.String(), selectPrompt))
	assert.Equal(t, 4, strings.Count(out.String(), invalidChoice))
}

func TestSelectMethodFailsOnEndOfInput(t *testing.T) {
	var out bytes.Buffer

	_, err := SelectMethod(strings.NewReader("x\n"), &out, bothMethods)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMethodSelected))
}
