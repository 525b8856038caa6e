package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	engineConfigFile string
	verbose          bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skin",
	Short: "Skin Advisor - 피부 분석 기반 화장품 추천",
	Long: `Skin Advisor Unified CLI

피부 측정값 + 날씨 + 생활습관으로 종합 점수, 피부 나이,
Top3 제품과 AM/PM 루틴을 추천합니다.

Usage:
  go run ./cmd/skin [command]

Examples:
  go run ./cmd/skin api
  go run ./cmd/skin recommend --input sample.json --catalog catalog.json
  go run ./cmd/skin catalog refresh
  go run ./cmd/skin config validate`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&engineConfigFile, "engine-config", "", "engine YAML (default: ENGINE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
