// sift-backfill scores stored journal entries that predate sentiment
// analysis, and optionally recomputes moods from the stored scores. It runs
// entirely offline against the SQLite journal database.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/innerlog/sift/pkg/sift/config"
	"github.com/innerlog/sift/pkg/sift/lexicon"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/store/sqlite"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "Path to journal database (required unless set in config)")
		configPath = flag.String("config", "", "Optional config YAML")
		moods      = flag.Bool("moods", false, "Also recompute moods for all scored entries")
		dryRun     = flag.Bool("dry-run", false, "Report what would change without writing")
	)
	flag.Parse()

	path := *dbPath
	var lex *lexicon.Lexicon
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if path == "" {
			path = cfg.DBPath
		}
		if cfg.Lexicon != "" {
			lex, err = lexicon.LoadFromYAML(cfg.Lexicon)
			if err != nil {
				log.Fatalf("load lexicon: %v", err)
			}
		}
	}
	if path == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, path)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	analyzer := sentiment.NewAnalyzer(nil)
	if lex != nil {
		analyzer.Lexicon = lex
		analyzer.BatchLexicon = lex
	}

	pending, err := st.EntriesMissingSentiment(ctx)
	if err != nil {
		log.Fatalf("list unscored entries: %v", err)
	}
	log.Printf("found %d entries without sentiment", len(pending))

	scored := 0
	for _, e := range pending {
		score, label := analyzer.AnalyzeBatch(e.Content)
		if *dryRun {
			log.Printf("would score entry %s: %d (%s)", e.ID, score, label)
			continue
		}
		if err := st.UpdateSentiment(ctx, e.ID, score, label); err != nil {
			log.Printf("update entry %s: %v", e.ID, err)
			continue
		}
		scored++
	}
	log.Printf("scored %d entries", scored)

	if !*moods {
		return
	}

	entries, err := st.ListEntries(ctx)
	if err != nil {
		log.Fatalf("list entries: %v", err)
	}

	updated := 0
	for _, e := range entries {
		if e.SentimentLabel == "" {
			continue
		}
		detected := mood.DetectBatch(e.Content, e.SentimentScore)
		if detected == e.Mood {
			continue
		}
		if *dryRun {
			log.Printf("would set entry %s mood %s -> %s", e.ID, e.Mood, detected)
			continue
		}
		if err := st.UpdateMood(ctx, e.ID, detected); err != nil {
			log.Printf("update mood %s: %v", e.ID, err)
			continue
		}
		updated++
	}
	log.Printf("updated %d moods", updated)
}
