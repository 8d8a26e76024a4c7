package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-client/internal/analytics"

	"github.com/shopspring/decimal"
)

// ReportRecord is an archived admin analytics report.
type ReportRecord struct {
	ID           int64            `json:"id"`
	Range        string           `json:"range"`
	TotalOrders  int              `json:"totalOrders"`
	TotalRevenue decimal.Decimal  `json:"totalRevenue"`
	PlatformFee  decimal.Decimal  `json:"platformFee"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	Report       analytics.Report `json:"report"`
}

type ReportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analytics_reports (
			id SERIAL PRIMARY KEY,
			time_range TEXT NOT NULL,
			total_orders INT NOT NULL,
			total_revenue NUMERIC(12,2) NOT NULL,
			platform_fee NUMERIC(12,2) NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL,
			payload JSONB NOT NULL
		)
	`)
	return err
}

func (r *ReportRepository) SaveReport(ctx context.Context, report analytics.Report) (int64, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}

	var id int64
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO analytics_reports (time_range, total_orders, total_revenue, platform_fee, generated_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, string(report.Range), report.TotalOrders, report.Revenue.TotalRevenue, report.Revenue.PlatformFee,
		report.GeneratedAt, payload).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListReports returns the newest archived reports first.
func (r *ReportRepository) ListReports(ctx context.Context, limit int) ([]ReportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, time_range, total_orders, total_revenue, platform_fee, generated_at, payload
		FROM analytics_reports
		ORDER BY generated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []ReportRecord{}
	for rows.Next() {
		var rec ReportRecord
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.Range, &rec.TotalOrders, &rec.TotalRevenue, &rec.PlatformFee, &rec.GeneratedAt, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &rec.Report); err != nil {
			return nil, fmt.Errorf("decode report %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
