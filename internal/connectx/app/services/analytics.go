package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// AnalyticsService читает сводную аналитику платформы. Данные меняются
// медленно, все запросы идут через кэш.
type AnalyticsService struct {
	client *client.Client
}

// NewAnalyticsService создает новый сервис аналитики.
func NewAnalyticsService(apiClient *client.Client) *AnalyticsService {
	return &AnalyticsService{client: apiClient}
}

// Overview возвращает сводные показатели платформы.
func (s *AnalyticsService) Overview(ctx context.Context) (dto.AnalyticsOverview, error) {
	overview, err := client.Do[dto.AnalyticsOverview](ctx, s.client, http.MethodGet, "admin/analytics/overview/", nil, nil)
	if err != nil {
		return dto.AnalyticsOverview{}, fmt.Errorf("failed to get analytics overview: %w", err)
	}
	return overview, nil
}

// RevenueSeries возвращает временной ряд выручки за заданный период.
func (s *AnalyticsService) RevenueSeries(ctx context.Context, dateFrom, dateTo string) ([]dto.SeriesPoint, error) {
	return s.series(ctx, "admin/analytics/revenue/", dateFrom, dateTo)
}

// OrdersSeries возвращает временной ряд количества заказов за период.
func (s *AnalyticsService) OrdersSeries(ctx context.Context, dateFrom, dateTo string) ([]dto.SeriesPoint, error) {
	return s.series(ctx, "admin/analytics/orders/", dateFrom, dateTo)
}

// series загружает временной ряд с общими параметрами периода.
func (s *AnalyticsService) series(ctx context.Context, endpoint, dateFrom, dateTo string) ([]dto.SeriesPoint, error) {
	query := url.Values{}
	if dateFrom != "" {
		query.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		query.Set("date_to", dateTo)
	}

	points, err := client.Do[[]dto.SeriesPoint](ctx, s.client, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics series: %w", err)
	}
	return points, nil
}
