package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/finsight/backend/internal/contracts"
)

// Repository implements contracts.ReportStore on PostgreSQL
// ⭐ SSOT: 애널리스트 리포트 조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new report repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// QueryByStock retrieves every report for a stock, newest first.
// An empty result is not an error; any store failure wraps ErrStoreUnavailable.
func (r *Repository) QueryByStock(ctx context.Context, stockID string) ([]contracts.ReportRecord, error) {
	query := `
		SELECT report_date, stock_name, stock_code, price_goal,
		       l_sector, s_sector, analyst, firm, report_id
		FROM data.analyst_reports
		WHERE stock_code = $1
		ORDER BY report_date DESC
	`

	rows, err := r.pool.Query(ctx, query, stockID)
	if err != nil {
		return nil, storeErr("query reports by stock", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// QueryBySector retrieves reports whose broad sector matches, with the date
// floor applied server-side, newest first.
func (r *Repository) QueryBySector(ctx context.Context, sectorName string, since time.Time) ([]contracts.ReportRecord, error) {
	query := `
		SELECT report_date, stock_name, stock_code, price_goal,
		       l_sector, s_sector, analyst, firm, report_id
		FROM data.analyst_reports
		WHERE l_sector = $1 AND report_date >= $2
		ORDER BY report_date DESC
	`

	rows, err := r.pool.Query(ctx, query, sectorName, since)
	if err != nil {
		return nil, storeErr("query reports by sector", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// QueryScore retrieves the pipeline-computed score of a stock.
// ok=false when no score row exists.
func (r *Repository) QueryScore(ctx context.Context, stockID string) (float64, bool, error) {
	query := `
		SELECT score
		FROM data.stock_scores
		WHERE stock_code = $1
	`

	var score float64
	err := r.pool.QueryRow(ctx, query, stockID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storeErr("query stock score", err)
	}
	return score, true, nil
}

// scanReports drains rows into report records
func scanReports(rows pgx.Rows) ([]contracts.ReportRecord, error) {
	reports := []contracts.ReportRecord{}
	for rows.Next() {
		var rec contracts.ReportRecord
		var date time.Time
		if err := rows.Scan(
			&date, &rec.StockName, &rec.StockID, &rec.PriceGoal,
			&rec.LSector, &rec.SSector, &rec.Analyst, &rec.Firm, &rec.ReportID,
		); err != nil {
			return nil, storeErr("scan report row", err)
		}
		rec.Date = date.Format("2006-01-02")
		reports = append(reports, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("read report rows", err)
	}
	return reports, nil
}

// storeErr tags a store failure so callers can tell it apart from "no rows"
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", contracts.ErrStoreUnavailable, op, err)
}

// FilterSince returns the subset of reports with date >= since.
// QueryByStock deliberately returns the full history; the overview shows all
// reports while averaging only the requested window.
func FilterSince(reports []contracts.ReportRecord, since time.Time) []contracts.ReportRecord {
	filtered := []contracts.ReportRecord{}
	floor := since.Format("2006-01-02")
	for _, rec := range reports {
		if rec.Date >= floor {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
