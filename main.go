package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"AskDocsAI/app/configs"
	"AskDocsAI/app/models"
	"AskDocsAI/app/rag"
	"AskDocsAI/app/storage"
	"AskDocsAI/app/utils"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := configs.Load(cfgPath)
	if err != nil {
		log.Fatalf("❌ Error loading configs: %v", err)
	}

	journal, err := storage.NewSQLiteJournal(cfg.Ingest.JournalPath)
	if err != nil {
		log.Fatalf("❌ Error opening ingest journal: %v", err)
	}
	defer journal.Close()

	model := models.NewLLMClient(cfg.LLM, cfg.Index.VectorSize)
	if !model.Healthy(context.Background()) {
		log.Printf("⚠️ LLM backend at %s is not answering; queries will fail until it is up", cfg.LLM.BaseURL)
	}

	service, closeStore, err := buildService(cfg, model, journal)
	if err != nil {
		log.Fatalf("❌ Error building service: %v", err)
	}
	defer closeStore()

	if err = ingestFolder(context.Background(), service, cfg); err != nil {
		log.Fatalf("❌ Error ingesting corpus: %v", err)
	}

	runPromptLoop(service, cfg)
}

func buildService(cfg *configs.Config, model models.Interface, journal storage.Interface) (*rag.Service, func(), error) {
	switch cfg.Index.Backend {
	case "memory":
		store := rag.NewMemoryStore()
		return rag.NewService(model, store, journal, cfg), func() {}, nil
	default:
		store, err := rag.NewQdrantStore(cfg.Index.Host, cfg.Index.Port, cfg.Index.CollectionPrefix, cfg.Index.VectorSize)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				log.Printf("⚠️ Error closing vector store: %v", err)
			}
		}
		return rag.NewService(model, store, journal, cfg), closeStore, nil
	}
}

func ingestFolder(ctx context.Context, service *rag.Service, cfg *configs.Config) error {
	areas, err := utils.ListAreaFiles(cfg.Ingest.Folder, cfg.Ingest.DefaultArea)
	if err != nil {
		return err
	}
	if len(areas) == 0 {
		log.Printf("ℹ️ No documents found in %s", cfg.Ingest.Folder)
		return nil
	}

	var wg sync.WaitGroup
	for area, paths := range areas {
		wg.Add(1)
		go func(area string, paths []string) {
			defer wg.Done()
			report, err := service.Ingest(ctx, area, loadDocuments(cfg.Ingest.Folder, paths))
			if err != nil {
				log.Printf("❌ Ingest of area %s failed: %v", area, err)
				return
			}
			log.Printf("📚 Area %s: %d ingested, %d failed", area, report.Ingested, len(report.Failed))
		}(area, paths)
	}
	wg.Wait()

	fmt.Println(utils.CorpusTree(areas))
	return nil
}

func loadDocuments(root string, paths []string) []rag.Document {
	docs := make([]rag.Document, 0, len(paths))
	for _, path := range paths {
		text, err := utils.ReadDocumentText(path)
		if err != nil {
			log.Printf("⚠️ Skipping %s: %v", path, err)
			continue
		}

		id, err := filepath.Rel(root, path)
		if err != nil {
			id = path
		}
		docs = append(docs, rag.Document{
			ID:       filepath.ToSlash(id),
			Text:     text,
			Filename: filepath.Base(path),
		})
	}
	return docs
}

func runPromptLoop(service *rag.Service, cfg *configs.Config) {
	fmt.Printf("Ask a question (area prefix with '@area ', empty line to quit)\n")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return
		}

		area := cfg.Ingest.DefaultArea
		if strings.HasPrefix(line, "@") {
			if idx := strings.Index(line, " "); idx > 1 {
				area = utils.NormalizeArea(line[1:idx])
				line = strings.TrimSpace(line[idx+1:])
			}
		}

		answer, err := service.Ask(context.Background(), rag.Query{
			Text:        line,
			Area:        area,
			WithSources: true,
		})
		if err != nil {
			log.Printf("❌ %v", err)
			continue
		}

		fmt.Println(answer.Text)
		for _, src := range answer.Sources {
			fmt.Printf("  ↳ %s#%d\n", src.DocumentID, src.ChunkSeq)
		}
	}
}
