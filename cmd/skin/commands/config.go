package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

// configCmd inspects the engine tuning tables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "엔진 설정 검증",
	Long: `엔진 YAML 설정을 검증하거나 해시를 출력합니다.

Example:
  go run ./cmd/skin config validate --file config/engine/default.yaml
  go run ./cmd/skin config hash`,
}

var (
	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "설정 검증 (경고 포함)",
		RunE:  runConfigValidate,
	}

	configHashCmd = &cobra.Command{
		Use:   "hash",
		Short: "설정 해시 출력",
		RunE:  runConfigHash,
	}
)

var configPath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configHashCmd)

	configCmd.PersistentFlags().StringVar(&configPath, "file", "config/engine/default.yaml", "엔진 YAML 경로")
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := engineconfig.Load(configPath)
	if err != nil {
		return err
	}

	hash, err := engineconfig.Hash(cfg)
	if err != nil {
		return err
	}

	PrintHeader("Engine Config")
	PrintKV("Config ID", cfg.Meta.ConfigID)
	PrintKV("Hash", hash)

	warnings := engineconfig.Warn(cfg)
	for _, w := range warnings {
		PrintWarning(fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	PrintSuccess(fmt.Sprintf("Valid (%d warnings)", len(warnings)))
	return nil
}

func runConfigHash(cmd *cobra.Command, args []string) error {
	cfg, _, err := engineconfig.Load(configPath)
	if err != nil {
		return err
	}
	hash, err := engineconfig.Hash(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
