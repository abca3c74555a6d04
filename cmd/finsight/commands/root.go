package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Finsight - 종목/섹터 오버뷰 집계 서비스",
	Long: `Finsight Unified CLI

애널리스트 리포트 저장소와 시세 프로바이더 체인으로
종목 오버뷰와 섹터 오버뷰를 조립하는 서비스.

Usage:
  go run ./cmd/finsight [command]

Examples:
  go run ./cmd/finsight api
  go run ./cmd/finsight stock 005930
  go run ./cmd/finsight sector 반도체 --date 2024-01-01`,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}
