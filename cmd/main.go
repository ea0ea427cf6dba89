package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kass/go-province-map/pkg/config"
	"github.com/kass/go-province-map/pkg/geojson"
	"github.com/kass/go-province-map/pkg/mapview"
	"github.com/kass/go-province-map/pkg/postgis"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "province-map",
	Short: "GeoJSON province map projection and inspection tools",
	Long:  `Projects GeoJSON polygon features into a padded, centered viewport and builds a clickable province index. Run the interactive viewer with the separate view binary.`,
}

var infoCmd = &cobra.Command{
	Use:   "info <file.geojson>",
	Short: "Parse a map file and report bounds, transform and province stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var buildCmd = &cobra.Command{
	Use:   "build <file.geojson>",
	Short: "Build provinces and save the gob cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

var benchCmd = &cobra.Command{
	Use:   "bench <file.geojson>",
	Short: "Run hit-test benchmarks against the built province index",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

var importCmd = &cobra.Command{
	Use:   "import <file.geojson>",
	Short: "Bulk insert map features into PostGIS",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.geojson>",
	Short: "Export map features from PostGIS to a GeoJSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	cacheFile  string
	viewportW  float64
	viewportH  float64
	numQueries int
	numWorkers int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "province-map.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	infoCmd.Flags().Float64VarP(&viewportW, "width", "W", 0, "Viewport width (0 = config fallback)")
	infoCmd.Flags().Float64VarP(&viewportH, "height", "H", 0, "Viewport height (0 = config fallback)")

	buildCmd.Flags().StringVarP(&cacheFile, "out", "o", "provinces.gob", "Cache file path")
	buildCmd.Flags().Float64VarP(&viewportW, "width", "W", 0, "Viewport width (0 = config fallback)")
	buildCmd.Flags().Float64VarP(&viewportH, "height", "H", 0, "Viewport height (0 = config fallback)")

	benchCmd.Flags().IntVarP(&numQueries, "queries", "q", 100000, "Number of hit tests to run")
	benchCmd.Flags().IntVarP(&numWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")

	rootCmd.AddCommand(infoCmd, buildCmd, benchCmd, importCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, nil, err
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	} else if err := level.Set(cfg.Log.Level); err != nil {
		level = zapcore.WarnLevel
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapCfg.Build()
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

// styles for the info summary; suppressed off-tty
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	statStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
)

func styled(style lipgloss.Style, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return style.Render(s)
}

func loadMap(path string) (*mapview.MapView, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	mv := mapview.New(cfg, logger)
	if viewportW > 0 && viewportH > 0 {
		mv.SetViewport(viewportW, viewportH)
	}

	start := time.Now()
	if err := mv.LoadFile(path); err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Loaded %s in %v\n", path, time.Since(start))
	}
	return mv, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	mv, err := loadMap(args[0])
	if err != nil {
		return err
	}

	b := mv.Bounds()
	t := mv.Transform()

	fmt.Println(styled(headerStyle, "Map Summary"))
	fmt.Printf("Bounds:     lon[%.4f, %.4f] lat[%.4f, %.4f]\n", b.MinLon, b.MaxLon, b.MinLat, b.MaxLat)
	if t.Valid() {
		fmt.Printf("Transform:  scale=%s offset=(%.2f, %.2f)\n",
			styled(statStyle, fmt.Sprintf("%.4f", t.Scale)), t.OffsetX, t.OffsetY)
	} else {
		fmt.Println("Transform:  unresolved (empty or degenerate bounds)")
	}
	fmt.Printf("Provinces:  %s\n", styled(statStyle, fmt.Sprintf("%d", mv.Index().Count())))

	owners := make(map[string]int)
	for _, p := range mv.Provinces() {
		owners[p.Owner]++
	}
	for owner, count := range owners {
		fmt.Printf("  %-24s %d\n", owner, count)
	}
	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	mv, err := loadMap(args[0])
	if err != nil {
		return err
	}

	if err := mv.Index().SaveToFile(cacheFile); err != nil {
		return err
	}
	fmt.Printf("Saved %d provinces to %s\n", mv.Index().Count(), cacheFile)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	mv, err := loadMap(args[0])
	if err != nil {
		return err
	}
	idx := mv.Index()
	t := mv.Transform()
	if !t.Valid() {
		return fmt.Errorf("map has no projectable bounds, nothing to benchmark")
	}

	b := mv.Bounds()
	topLeft := t.Project(b.MinLon, b.MaxLat)
	bottomRight := t.Project(b.MaxLon, b.MinLat)

	fmt.Printf("Running %d hit tests using %d workers...\n", numQueries, numWorkers)

	var totalHits atomic.Int64
	var queryCount atomic.Int64

	start := time.Now()

	var wg sync.WaitGroup
	queriesPerWorker := numQueries / numWorkers

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		count := queriesPerWorker
		if w == numWorkers-1 {
			count = numQueries - queriesPerWorker*(numWorkers-1)
		}

		go func(workerID, count int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

			hits := 0
			for i := 0; i < count; i++ {
				x := topLeft.X + r.Float64()*(bottomRight.X-topLeft.X)
				y := topLeft.Y + r.Float64()*(bottomRight.Y-topLeft.Y)
				if idx.HitTest(x, y) != nil {
					hits++
				}
				queryCount.Add(1)
			}
			totalHits.Add(int64(hits))
		}(w, count)
	}

	wg.Wait()
	elapsed := time.Since(start)

	completed := queryCount.Load()
	fmt.Printf("\nHit Test Benchmark Results:\n")
	fmt.Printf("Total queries: %d\n", completed)
	fmt.Printf("Total time: %v\n", elapsed)
	fmt.Printf("Queries per second: %.0f\n", float64(completed)/elapsed.Seconds())
	fmt.Printf("Average query time: %v\n", elapsed/time.Duration(completed))
	fmt.Printf("Hits: %d (%.1f%%)\n", totalHits.Load(),
		100*float64(totalHits.Load())/float64(completed))
	return nil
}

func openStore() (*postgis.FeatureStore, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	pg := cfg.PostGIS
	return postgis.NewFeatureStore(pg.Host, pg.User, pg.Password, pg.Database, pg.Port)
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	fc, err := loadCollection(args[0])
	if err != nil {
		return err
	}

	if err := store.InitSchema(); err != nil {
		return err
	}

	start := time.Now()
	inserted, err := store.ImportCollection(fc)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d features in %v\n", inserted, time.Since(start))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	fc, err := store.ExportCollection()
	if err != nil {
		return err
	}

	data, err := marshalCollection(fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	fmt.Printf("Exported %d features to %s\n", len(fc.Features), args[0])
	return nil
}

func loadCollection(path string) (*geojson.FeatureCollection, error) {
	return geojson.Load(path)
}

func marshalCollection(fc *geojson.FeatureCollection) ([]byte, error) {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal collection: %w", err)
	}
	return data, nil
}
