package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/external/oliveyoung"
	"github.com/wonny/skinadvisor/backend/internal/metrics"
)

// catalogCmd groups catalog maintenance commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "제품 카탈로그 관리",
	Long: `제품 카탈로그를 갱신하거나 조회합니다.

Subcommands:
  refresh      - 네이버 쇼핑 검색으로 카탈로그 재구성 (DB 설정 시 저장)
  show         - 현재 카탈로그 요약 (DB 또는 --file)
  import-html  - 저장된 올리브영 랭킹 HTML → 카탈로그 JSON

Example:
  go run ./cmd/skin catalog refresh
  go run ./cmd/skin catalog show --file catalog.json
  go run ./cmd/skin catalog import-html --file ranking.html --category toner > toner.json`,
}

var (
	catalogRefreshCmd = &cobra.Command{
		Use:   "refresh",
		Short: "카탈로그 재구성",
		RunE:  runCatalogRefresh,
	}

	catalogShowCmd = &cobra.Command{
		Use:   "show",
		Short: "카탈로그 요약",
		RunE:  runCatalogShow,
	}

	catalogImportCmd = &cobra.Command{
		Use:   "import-html",
		Short: "올리브영 랭킹 HTML 변환",
		RunE:  runCatalogImport,
	}
)

var (
	catalogFile     string
	catalogCategory string
	catalogTimeout  time.Duration
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogRefreshCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogImportCmd)

	catalogRefreshCmd.Flags().DurationVar(&catalogTimeout, "timeout", 5*time.Minute, "갱신 제한 시간")
	catalogShowCmd.Flags().StringVar(&catalogFile, "file", "", "카탈로그 JSON (생략 시 DB)")
	catalogImportCmd.Flags().StringVar(&catalogFile, "file", "", "랭킹 페이지 HTML (필수)")
	catalogImportCmd.Flags().StringVar(&catalogCategory, "category", "", "제품 카테고리 (필수)")
	_ = catalogImportCmd.MarkFlagRequired("file")
	_ = catalogImportCmd.MarkFlagRequired("category")
}

func runCatalogRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
	defer cancel()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.refresher == nil {
		return errors.New("NAVER_CLIENT_ID/NAVER_CLIENT_SECRET not set")
	}

	PrintHeader("Catalog Refresh")
	res, err := a.refresher.Refresh(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(metrics.OutcomeError, -1)
		return fmt.Errorf("refresh: %w", err)
	}
	metrics.RecordCatalogRefresh(metrics.OutcomeOK, res.Products)

	PrintKV("Version", res.Version)
	PrintKV("Products", res.Products)
	PrintKV("Duplicates", res.Duplicates)
	PrintKV("Keywords", fmt.Sprintf("%d (failed %d)", res.Keywords, res.FailedKeywords))
	PrintKV("Persisted", res.Persisted)
	PrintSuccess(fmt.Sprintf("Catalog refreshed in %.2fs", res.Duration.Seconds()))
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	var snap *contracts.Catalog
	if catalogFile != "" {
		c, err := catalog.LoadFile(catalogFile)
		if err != nil {
			return err
		}
		snap = c
	} else {
		ctx := context.Background()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.products == nil {
			return errors.New("DATABASE_URL not set: use --file")
		}
		c, err := catalog.LoadFromRepository(ctx, a.products, a.catalog)
		if err != nil {
			return err
		}
		snap = c
	}

	PrintHeader("Catalog")
	PrintKV("Version", snap.Version())
	PrintKV("Loaded at", snap.LoadedAt().Format(time.RFC3339))
	PrintKV("Products", snap.Len())
	PrintSeparator()

	counts := make(map[contracts.Category]int)
	for _, p := range snap.Products() {
		counts[p.Category]++
	}
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		PrintKV(c, counts[contracts.Category(c)])
	}
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	cat, err := contracts.ParseCategory(catalogCategory)
	if err != nil {
		return err
	}

	f, err := os.Open(catalogFile)
	if err != nil {
		return fmt.Errorf("open html: %w", err)
	}
	defer f.Close()

	listings, err := oliveyoung.ParseListing(f)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}

	products := catalog.FromListings(listings, cat)
	now := time.Now()
	out := contracts.NewCatalog(catalog.Version(now, len(products)), now, products)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
