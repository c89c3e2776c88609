package report

import (
	"fmt"
	"io"
	"time"

	"github.com/kapu/ytsearch/internal/adapter"
	"github.com/kapu/ytsearch/internal/domain"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"go.uber.org/zap"
)

const fileNameLayout = "20060102_150405"

// Sink writes a report to the console and, on request, to a file with the
// same content.
type Sink struct {
	console   io.Writer
	store     Store
	formatter *adapter.ReportFormatter
	now       func() time.Time
	logger    *zap.Logger
}

func NewSink(console io.Writer, store Store, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{
		console:   console,
		store:     store,
		formatter: adapter.NewReportFormatter(),
		now:       time.Now,
		logger:    logger,
	}
}

// FileName derives the report file name from a local timestamp.
func FileName(t time.Time) string {
	return fmt.Sprintf("search_results_%s.txt", t.Format(fileNameLayout))
}

// Emit prints the report and, when persist is set, saves it. Only the save
// step can fail; the console output is complete by then. The returned path is
// empty when nothing was saved.
func (s *Sink) Emit(query domain.SearchQuery, records []domain.FormattedRecord, persist bool) (string, error) {
	generatedAt := s.now()
	text := s.formatter.FormatReport(domain.Report{
		Query:   query,
		Records: records,
	})

	if _, err := io.WriteString(s.console, text); err != nil {
		s.logger.Warn("Failed to write report to console", zap.Error(err))
	}

	if !persist {
		return "", nil
	}

	name := FileName(generatedAt)
	path, err := s.store.Save(name, []byte(text))
	if err != nil {
		s.logger.Error("Failed to save report",
			zap.String("file", name),
			zap.Error(err))
		return "", apperrors.NewIOError("ファイルの保存に失敗しました", path, err)
	}

	s.logger.Info("Report saved",
		zap.String("path", path),
		zap.Int("records", len(records)))
	return path, nil
}
