package youtube

import (
	"context"
	"errors"

	"github.com/kapu/ytsearch/internal/domain"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

const (
	DefaultMaxResults = 10

	searchQuotaCost = 100 // search.list cost
	videosQuotaCost = 1   // videos.list cost
)

// SearchService runs the two-stage lookup: search.list for candidate ids,
// then a single videos.list call for their details.
type SearchService struct {
	service *youtube.Service
	logger  *zap.Logger
}

func NewSearchService(service *youtube.Service, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		service: service,
		logger:  logger,
	}
}

// Search returns the hydrated videos for query. A query without hits yields
// an empty, non-nil slice. Any API fault is returned as *errors.RemoteError
// and no partial result is produced.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery, maxResults int64) ([]domain.VideoRecord, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	videoIDs, err := s.discover(ctx, query.String(), maxResults)
	if err != nil {
		return nil, err
	}

	if len(videoIDs) == 0 {
		s.logger.Info("Search returned no videos", zap.String("query", query.String()))
		return []domain.VideoRecord{}, nil
	}

	return s.hydrate(ctx, videoIDs)
}

func (s *SearchService) discover(ctx context.Context, query string, maxResults int64) ([]string, error) {
	call := s.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults)

	response, err := call.Context(ctx).Do()
	if err != nil {
		s.logger.Error("Failed to search videos",
			zap.String("query", query),
			zap.Error(err))
		return nil, remoteError("動画の検索に失敗しました", "search.list", err)
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}

	s.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("count", len(videoIDs)),
		zap.Int("quotaCost", searchQuotaCost))

	return videoIDs, nil
}

func (s *SearchService) hydrate(ctx context.Context, videoIDs []string) ([]domain.VideoRecord, error) {
	call := s.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoIDs...)

	captureCtx, raw := withCapture(ctx)
	response, err := call.Context(captureCtx).Do()
	if err != nil {
		s.logger.Error("Failed to fetch video details",
			zap.Strings("ids", videoIDs),
			zap.Error(err))
		return nil, remoteError("動画情報の取得に失敗しました", "videos.list", err)
	}

	keys := statisticKeys(raw.Bytes())
	records := make([]domain.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		var present map[string]bool
		if keys != nil {
			present = keys[item.Id]
			if present == nil {
				present = map[string]bool{}
			}
		}
		records = append(records, toVideoRecord(item, present))
	}

	s.logger.Debug("Video details fetched",
		zap.Int("requested", len(videoIDs)),
		zap.Int("returned", len(records)),
		zap.Int("quotaCost", videosQuotaCost))

	return records, nil
}

// toVideoRecord copies item into a record. present lists the statistics keys
// the response carried; a nil map means every decoded counter is trusted.
func toVideoRecord(item *youtube.Video, present map[string]bool) domain.VideoRecord {
	record := domain.VideoRecord{ID: item.Id}

	if item.Snippet != nil {
		record.Title = item.Snippet.Title
		record.PublishedAt = item.Snippet.PublishedAt
		record.ChannelTitle = item.Snippet.ChannelTitle
		if len(item.Snippet.Tags) > 0 {
			record.Tags = append([]string(nil), item.Snippet.Tags...)
		}
	}

	if item.Statistics != nil {
		record.ViewCount = counter(item.Statistics.ViewCount, "viewCount", present)
		record.LikeCount = counter(item.Statistics.LikeCount, "likeCount", present)
		record.CommentCount = counter(item.Statistics.CommentCount, "commentCount", present)
	}

	return record
}

func counter(value uint64, key string, present map[string]bool) *uint64 {
	if present != nil && !present[key] {
		return nil
	}
	return &value
}

func remoteError(message, operation string, err error) *apperrors.RemoteError {
	remote := apperrors.NewRemoteError(message, operation, err)

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		reason := ""
		if len(apiErr.Errors) > 0 {
			reason = apiErr.Errors[0].Reason
		}
		remote.WithStatus(apiErr.Code, reason)
	}

	return remote
}
