package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kapu/ytsearch/internal/app"
	"github.com/kapu/ytsearch/internal/config"
	"github.com/kapu/ytsearch/internal/util"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Println("使用方法: ytsearch <検索キーワード>")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: 設定の読み込みに失敗しました: %v\n", err)
		return 1
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: ロガーの初期化に失敗しました: %v\n", err)
		return 1
	}
	defer logger.Sync()

	container, err := app.Build(cfg, logger, app.Dependencies{})
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return 1
	}

	if err := container.Run(context.Background(), args); err != nil {
		logger.Error("Search run failed",
			zap.String("code", apperrors.CodeOf(err)),
			zap.Error(err))
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return apperrors.ExitCode(err)
	}

	return 0
}
