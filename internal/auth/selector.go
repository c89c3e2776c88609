package auth

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kapu/ytsearch/internal/domain"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
)

const (
	selectPrompt  = "認証方法を選択してください(1: API KEY, 2: OAuth): "
	invalidChoice = "無効な入力です。半角で1または2を入力してください。"
)

// SelectMethod asks the user to pick one of the offered methods. With a single
// offered method nothing is read or printed.
func SelectMethod(in io.Reader, out io.Writer, offered domain.AuthMethods) (domain.AuthMethod, error) {
	if len(offered) == 0 {
		return "", apperrors.NewConfigError("認証方法がありません", nil, ErrNoCredentials)
	}
	if len(offered) == 1 {
		return offered[0], nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, selectPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			cause := ErrNoMethodSelected
			if err := scanner.Err(); err != nil {
				cause = fmt.Errorf("%w: %w", ErrNoMethodSelected, err)
			}
			return "", apperrors.NewConfigError("認証方法が選択されませんでした", nil, cause)
		}

		choice := domain.AuthMethod(strings.TrimSuffix(scanner.Text(), "\r"))
		if offered.Contains(choice) {
			return choice, nil
		}
		fmt.Fprintln(out, invalidChoice)
	}
}
