package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridpick/gridpick/internal/app"
	"github.com/gridpick/gridpick/internal/dataset"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envDataset      = "GRIDPICK_DATASET"
	envKind         = "GRIDPICK_KIND"
	envRecentsFile  = "GRIDPICK_RECENTS_FILE"
	envRecentsLimit = "GRIDPICK_RECENTS_LIMIT"
	envItemsPerRow  = "GRIDPICK_ITEMS_PER_ROW"
	envColumns      = "GRIDPICK_COLUMNS"
	envSpacing      = "GRIDPICK_SPACING"
	envSortTabs     = "GRIDPICK_SORT_TABS"
	envWidth        = "GRIDPICK_WIDTH"
	envHeight       = "GRIDPICK_HEIGHT"
	envShowFooter   = "GRIDPICK_FOOTER"
	envDebounceMS   = "GRIDPICK_DEBOUNCE_MS"
	envVerbose      = "GRIDPICK_VERBOSE"
	envTrace        = "GRIDPICK_TRACE"
	envLogFile      = "GRIDPICK_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("gridpick", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	source := fs.String("dataset", envOrDefault(env, envDataset, ""), "path to the dataset file")
	kind := fs.String("kind", envOrDefault(env, envKind, "emoji"), "dataset kind (emoji, kaomoji)")
	recentsFile := fs.String("recents-file", envOrDefault(env, envRecentsFile, defaultRecentsPath()), "path to the recents file (empty disables persistence)")
	recentsLimit := fs.Int("recents-limit", envOrInt(env, envRecentsLimit, 0), "maximum recents retained (0 uses the default)")
	itemsPerRow := fs.Int("items-per-row", envOrInt(env, envItemsPerRow, 8), "grid items per row")
	columns := fs.Int("columns", envOrInt(env, envColumns, 3), "masonry column count for variable-size items")
	spacing := fs.Float64("spacing", envOrFloat(env, envSpacing, 1), "masonry spacing in cells")
	sortTabs := fs.Bool("sort-tabs", envOrBool(env, envSortTabs, false), "sort category tabs lexicographically")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	debounceMS := fs.Int("debounce-ms", envOrInt(env, envDebounceMS, 0), "search debounce in milliseconds (0 uses the default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print the selected payload on exit")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *source == "" {
		return Config{}, fmt.Errorf("dataset path is required (use -dataset or %s)", envDataset)
	}
	if !knownKind(*kind) {
		return Config{}, fmt.Errorf("unknown dataset kind %q (have: %s)", *kind, strings.Join(dataset.Kinds(), ", "))
	}
	if *itemsPerRow < 1 {
		return Config{}, fmt.Errorf("items-per-row must be >= 1 (got %d)", *itemsPerRow)
	}
	if *columns < 1 {
		return Config{}, fmt.Errorf("columns must be >= 1 (got %d)", *columns)
	}
	if *spacing < 0 {
		return Config{}, fmt.Errorf("spacing must be >= 0 (got %v)", *spacing)
	}
	if *recentsLimit < 0 {
		return Config{}, fmt.Errorf("recents-limit must be >= 0 (got %d)", *recentsLimit)
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *debounceMS < 0 {
		return Config{}, fmt.Errorf("debounce-ms must be >= 0 (got %d)", *debounceMS)
	}

	cfg := Config{
		App: app.Config{
			Source:         *source,
			Kind:           *kind,
			RecentsPath:    *recentsFile,
			RecentsLimit:   *recentsLimit,
			ItemsPerRow:    *itemsPerRow,
			Columns:        *columns,
			Spacing:        *spacing,
			SortCategories: *sortTabs,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			SearchDebounce: time.Duration(*debounceMS) * time.Millisecond,
			Verbose:        *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"dataset":      *source,
			"kind":         *kind,
			"recentsFile":  *recentsFile,
			"recentsLimit": strconv.Itoa(*recentsLimit),
			"itemsPerRow":  strconv.Itoa(*itemsPerRow),
			"columns":      strconv.Itoa(*columns),
			"spacing":      strconv.FormatFloat(*spacing, 'g', -1, 64),
			"sortTabs":     strconv.FormatBool(*sortTabs),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"debounceMs":   strconv.Itoa(*debounceMS),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func knownKind(kind string) bool {
	for _, k := range dataset.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func defaultRecentsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + string(os.PathSeparator) + "gridpick" + string(os.PathSeparator) + "recents.json"
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
