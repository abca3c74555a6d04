package commands

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// sectorCmd assembles a sector overview and prints it as JSON
var sectorCmd = &cobra.Command{
	Use:   "sector [대분류 섹터명]",
	Short: "섹터 오버뷰 조회",
	Long: `대분류 섹터 하나의 오버뷰를 조립해 JSON으로 출력합니다.

섹터 소속 종목별 파생 지표와 소분류 top3 랭킹을 포함합니다.

Example:
  go run ./cmd/finsight sector 반도체
  go run ./cmd/finsight sector IT --date 2024-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: runSectorOverview,
}

var sectorDate string

func init() {
	rootCmd.AddCommand(sectorCmd)

	sectorCmd.Flags().StringVar(&sectorDate, "date", "", "리포트 집계 하한 날짜 (YYYY-MM-DD, 기본: 1년 전)")
}

func runSectorOverview(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	since, err := resolveSince(sectorDate)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	out, err := a.overview.SectorOverview(ctx, args[0], since)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
