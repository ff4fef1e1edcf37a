package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docchat/internal/answer"
	"docchat/internal/config"
	"docchat/internal/index"
	"docchat/internal/llm/ollama"
	"docchat/internal/logger"
	"docchat/internal/session"
	"docchat/internal/source/pdf"
	"docchat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var dir string
	var debug bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.StringVar(&dir, "dir", "", "Document folder (overrides config)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger.Init(debug)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if dir != "" {
		cfg.Documents.Dir = dir
	}

	// Assemble components
	builder := index.NewBuilder(pdf.NewSource(), cfg.Index.ChunkSize)
	idx := builder.Get(cfg.Documents.Dir)
	logger.Info("index ready", "documents", len(idx.Documents()), "chunks", len(idx.Chunks()))

	gen := ollama.NewClient(ollama.Config{
		URL:     cfg.LLM.URL,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	svc := answer.NewService(gen, cfg.Index.MaxResults)

	m := tui.New(svc, idx, session.New())
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
