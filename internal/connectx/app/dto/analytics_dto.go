package dto

// AnalyticsOverview содержит сводные показатели платформы.
type AnalyticsOverview struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int     `json:"total_orders"`
	TotalProducts int     `json:"total_products"`
	TotalTenants  int     `json:"total_tenants"`
	TotalUsers    int     `json:"total_users"`
}

// SeriesPoint содержит одну точку временного ряда аналитики.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
