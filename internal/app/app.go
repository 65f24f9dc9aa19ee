package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/picker"
	"github.com/gridpick/gridpick/internal/recents"
	"github.com/gridpick/gridpick/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Source         string
	Kind           string
	RecentsPath    string
	RecentsLimit   int
	ItemsPerRow    int
	Columns        int
	Spacing        float64
	SortCategories bool
	Width          int
	Height         int
	ShowFooter     bool
	SearchDebounce time.Duration
	Verbose        bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	parser, err := dataset.New(cfg.Kind)
	if err != nil {
		return fmt.Errorf("resolve dataset kind: %w", err)
	}

	limit := cfg.RecentsLimit
	if limit == 0 {
		limit = recents.DefaultLimit
	}
	var store recents.Store
	var watcher *recents.Watcher
	if cfg.RecentsPath != "" {
		fileStore, err := recents.NewFileStore(cfg.RecentsPath, limit)
		if err != nil {
			return fmt.Errorf("open recents store: %w", err)
		}
		watcher = recents.NewWatcher(fileStore.Path(), 1500*time.Millisecond)
		defer watcher.Stop()
		store = fileStore
	} else {
		store = recents.NewMemoryStore(limit)
	}

	viewer := picker.New(picker.Config{
		Source:         cfg.Source,
		Parser:         parser,
		Recents:        store,
		ItemsPerRow:    cfg.ItemsPerRow,
		CategoryAttr:   dataset.CategoryAttr,
		SortCategories: cfg.SortCategories,
		SearchDebounce: cfg.SearchDebounce,
		RenderItem:     func(it dataset.Item) string { return it.Payload },
		Payload:        func(it dataset.Item) interface{} { return it.Payload },
	})
	defer viewer.Destroy()

	model := ui.NewModel(ui.Options{
		Viewer:     viewer,
		Kind:       cfg.Kind,
		Columns:    cfg.Columns,
		Spacing:    cfg.Spacing,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Store:      store,
		Watcher:    watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
