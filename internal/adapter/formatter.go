package adapter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/ytsearch/internal/domain"
	"github.com/kapu/ytsearch/internal/util"
)

const (
	separator   = "---"
	noTagsText  = "タグなし"
	noResults   = "検索結果が見つかりませんでした。"
	hiddenCount = "非公開"
	publishedAt = "2006年01月02日 15時04分"
)

// FormatRecord projects a raw video into display strings. It never fails; a
// timestamp that does not parse is shown as received.
func FormatRecord(record domain.VideoRecord) domain.FormattedRecord {
	return domain.FormattedRecord{
		Title:       record.Title,
		PublishedAt: formatPublishedAt(record.PublishedAt),
		Channel:     record.ChannelTitle,
		Views:       formatCount(record.ViewCount),
		Likes:       formatCount(record.LikeCount),
		Comments:    formatCount(record.CommentCount),
		Tags:        formatTags(record.Tags),
	}
}

// FormatRecords keeps the input order.
func FormatRecords(records []domain.VideoRecord) []domain.FormattedRecord {
	formatted := make([]domain.FormattedRecord, 0, len(records))
	for _, record := range records {
		formatted = append(formatted, FormatRecord(record))
	}
	return formatted
}

func formatPublishedAt(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return util.FormatJST(t, publishedAt)
}

func formatCount(count *uint64) string {
	if count == nil {
		return hiddenCount
	}
	return strconv.FormatUint(*count, 10)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return noTagsText
	}
	return strings.Join(tags, ", ")
}

// ReportFormatter renders search results as the line-oriented text shared by
// the console and the saved report file.
type ReportFormatter struct{}

func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{}
}

func (f *ReportFormatter) FormatHeader(query domain.SearchQuery) string {
	var sb strings.Builder
	sb.WriteString(separator + "\n")
	sb.WriteString(fmt.Sprintf("検索キーワード: %s\n", query.String()))
	sb.WriteString(separator + "\n")
	return sb.String()
}

func (f *ReportFormatter) FormatRecord(record domain.FormattedRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("タイトル: %s\n", record.Title))
	sb.WriteString(fmt.Sprintf("投稿日時: %s\n", record.PublishedAt))
	sb.WriteString(fmt.Sprintf("投稿者: %s\n", record.Channel))
	sb.WriteString(fmt.Sprintf("再生数: %s\n", record.Views))
	sb.WriteString(fmt.Sprintf("高評価数: %s\n", record.Likes))
	sb.WriteString(fmt.Sprintf("コメント数: %s\n", record.Comments))
	sb.WriteString(fmt.Sprintf("タグ: %s\n", record.Tags))
	sb.WriteString(separator + "\n")
	return sb.String()
}

// FormatReport renders the header followed by every record block.
func (f *ReportFormatter) FormatReport(report domain.Report) string {
	var sb strings.Builder
	sb.WriteString(f.FormatHeader(report.Query))

	if len(report.Records) == 0 {
		sb.WriteString(noResults + "\n")
		return sb.String()
	}

	for _, record := range report.Records {
		sb.WriteString(f.FormatRecord(record))
	}
	return sb.String()
}
