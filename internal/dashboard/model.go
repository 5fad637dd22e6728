// Package dashboard aggregates billing activity into the summary shown on
// the home screen.
package dashboard

// StatusCount is one invoice status bucket.
type StatusCount struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

// MonthlyRevenue is collected revenue for one calendar month.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Summary is the aggregated billing picture.
type Summary struct {
	TotalRevenue    float64          `json:"total_revenue"`
	Outstanding     float64          `json:"outstanding"`
	OverdueAmount   float64          `json:"overdue_amount"`
	InvoicesByState []StatusCount    `json:"invoices_by_status"`
	RevenueByMonth  []MonthlyRevenue `json:"revenue_by_month"`
	ActiveClients   int              `json:"active_clients"`
	ActiveProjects  int              `json:"active_projects"`
}
