package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// stockCmd assembles a single-stock overview and prints it as JSON
var stockCmd = &cobra.Command{
	Use:   "stock [종목코드]",
	Short: "종목 오버뷰 조회",
	Long: `종목 하나의 오버뷰를 조립해 JSON으로 출력합니다.

Example:
  go run ./cmd/finsight stock 005930
  go run ./cmd/finsight stock 005930 --date 2024-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: runStockOverview,
}

var stockDate string

func init() {
	rootCmd.AddCommand(stockCmd)

	stockCmd.Flags().StringVar(&stockDate, "date", "", "리포트 집계 하한 날짜 (YYYY-MM-DD, 기본: 1년 전)")
}

func runStockOverview(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	since, err := resolveSince(stockDate)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	out, err := a.overview.StockOverview(ctx, args[0], since)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// resolveSince parses the --date flag, defaulting to a year back
func resolveSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().AddDate(-1, 0, 0), nil
	}

	since, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date must be YYYY-MM-DD: %q", raw)
	}
	return since, nil
}
