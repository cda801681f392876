package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tsuzuku/internal/config"
	"tsuzuku/internal/notify"
	"tsuzuku/internal/scheduler"
	"tsuzuku/internal/storage"
	"tsuzuku/internal/store"
	"tsuzuku/internal/update"
)

func main() {
	configPath := flag.String("config", config.ResolveConfigPath(), "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tsuzuku failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	reminders := notify.NewManager(engine)
	defer reminders.CancelAll()

	st := store.New(repo, reminders)
	if err := st.Load(context.Background()); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	var notifier notify.DesktopNotifier = notify.NoopNotifier{}
	if cfg.DesktopNotifications {
		notifier = notify.ExecNotifier{}
	}

	model := update.NewModelWithRuntime(st, engine, cfg.DesktopNotifications, notifier, keysFromConfig(cfg.Keys))
	if filter, ok := store.ParseFilter(cfg.DefaultFilter); ok {
		model.Filter = filter
	}
	if order, ok := store.ParseSortOrder(cfg.DefaultSort); ok {
		model.Sort = order
	}

	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func keysFromConfig(k config.Keymap) update.GlobalKeyMap {
	keys := update.DefaultKeyMap()
	apply := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	apply(&keys.Quit, k.Quit)
	apply(&keys.Add, k.Add)
	apply(&keys.Up, k.Up)
	apply(&keys.Down, k.Down)
	apply(&keys.Toggle, k.Toggle)
	apply(&keys.Delete, k.Delete)
	apply(&keys.Edit, k.Edit)
	apply(&keys.Palette, k.Search)
	apply(&keys.Filter, k.Filter)
	apply(&keys.Sort, k.Sort)
	apply(&keys.Stats, k.Stats)
	apply(&keys.Help, k.Help)
	apply(&keys.Confirm, k.Confirm)
	apply(&keys.Cancel, k.Cancel)
	return keys
}
