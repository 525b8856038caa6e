package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// recommendCmd runs the engine once against a file-based catalog
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "파일 입력으로 추천 1회 실행",
	Long: `측정값/컨텍스트 JSON과 카탈로그 JSON으로 엔진을 1회 실행합니다.
DB, 날씨 API, 이력 저장을 사용하지 않습니다.

Input JSON:
  {"profile": {"moisture": 40, ...}, "context": {"weather": {...}, "lifestyle": {...}, "user_pref": {...}}}

Example:
  go run ./cmd/skin recommend --input sample.json --catalog catalog.json
  go run ./cmd/skin recommend --input sample.json --catalog catalog.json --trace`,
	RunE: runRecommend,
}

var (
	recommendInput   string
	recommendCatalog string
	recommendTrace   bool
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&recommendInput, "input", "", "입력 JSON 파일 (필수)")
	recommendCmd.Flags().StringVar(&recommendCatalog, "catalog", "", "카탈로그 JSON 파일 (생략 시 빈 카탈로그)")
	recommendCmd.Flags().BoolVar(&recommendTrace, "trace", false, "중간 단계 값까지 출력")
	_ = recommendCmd.MarkFlagRequired("input")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	eng, err := loadEngine(cfg.EngineConfigPath, log)
	if err != nil {
		return err
	}

	in, err := readInput(recommendInput)
	if err != nil {
		return err
	}

	snap := contracts.EmptyCatalog()
	if recommendCatalog != "" {
		if snap, err = catalog.LoadFile(recommendCatalog); err != nil {
			return err
		}
	}

	var out interface{}
	if recommendTrace {
		out, err = eng.Run(in, snap)
	} else {
		out, err = eng.Recommend(in, snap)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readInput(path string) (contracts.Input, error) {
	var in contracts.Input
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read input: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse input: %w", err)
	}
	return in, nil
}
