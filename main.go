package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"cmspublish/internal/config"
	"cmspublish/internal/eventbus"
	"cmspublish/internal/logic"
	"cmspublish/internal/manifest"
	"cmspublish/internal/store"
	"cmspublish/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, dbPath, manifestPath string
	flag.StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	flag.StringVar(&dbPath, "db", "", "SQLite database holding the publish list")
	flag.StringVar(&manifestPath, "manifest", "", "Serve the publish list from a TOML manifest instead of the database")
	flag.StringVar(&manifestPath, "m", "", "Manifest file (shorthand)")
	flag.Parse()

	if manifestPath == "" && flag.NArg() > 0 {
		manifestPath = flag.Arg(0)
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error reading .env: %v\n", err)
		os.Exit(1)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	// Saved on option changes, without the command line overrides
	saved := *cfg
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if manifestPath != "" {
		cfg.Manifest = manifestPath
	}

	// Set up logging
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	source, closeSource, err := openSource(cfg)
	if err != nil {
		log.Printf("Error opening publish list: %v", err)
		fmt.Printf("Error opening publish list: %v\n", err)
		os.Exit(1)
	}
	defer closeSource()

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, source)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Persist toggled publish options
	bus.Subscribe(eventbus.EventOptionsChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.OptionsChangedEvent)
		if !ok {
			return
		}
		saved.Publish.IncludeRelated = event.Options.IncludeRelated
		saved.Publish.IncludeSiblings = event.Options.IncludeSiblings
		if err := configSvc.Save(&saved); err != nil {
			log.Printf("Failed to save config: %v", err)
			p.Send(ui.EventMsg{Event: eventbus.ErrorEvent{Message: fmt.Sprintf("Failed to save config: %v", err), Err: err}})
		}
	})

	bus.Subscribe(eventbus.EventPublishSubmitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PublishSubmittedEvent); ok {
			log.Printf("Publish job %s: %d published, %d removed", event.Result.JobID, event.Result.Published, event.Result.Removed)
		}
	})

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// openSource returns the list source selected by cfg: the manifest when one
// is configured, the sqlite database otherwise
func openSource(cfg *config.Config) (logic.ListSource, func(), error) {
	if cfg.Manifest != "" {
		m, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Serving publish list from %s", cfg.Manifest)
		return logic.NewMemoryListSource(m.Groups()), func() {}, nil
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Serving publish list from %s", cfg.Database.Path)

	closeStore := func() {
		if err := st.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}
	return st, closeStore, nil
}
