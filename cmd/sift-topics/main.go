// sift-topics discovers recurring topics across the stored journal and prints
// them as JSON. Entries without stored keywords are extracted on the fly.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/innerlog/sift/pkg/sift/config"
	"github.com/innerlog/sift/pkg/sift/keywords"
	"github.com/innerlog/sift/pkg/sift/store/sqlite"
	"github.com/innerlog/sift/pkg/sift/topics"
)

type topicJSON struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Keywords         []string `json:"keywords"`
	EntryCount       int      `json:"entry_count"`
	AverageSentiment int      `json:"average_sentiment"`
}

func main() {
	var (
		dbPath     = flag.String("db", "", "Path to journal database (required unless set in config)")
		configPath = flag.String("config", "", "Optional config YAML")
	)
	flag.Parse()

	path := *dbPath
	extractor := keywords.NewExtractor()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if path == "" {
			path = cfg.DBPath
		}
		if cfg.Stopwords != "" {
			sw, err := config.LoadStopwords(cfg.Stopwords)
			if err != nil {
				log.Fatalf("load stopwords: %v", err)
			}
			extractor = keywords.NewExtractorWithStopwords(sw.Terms)
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

	stored, err := st.ListEntries(ctx)
	if err != nil {
		log.Fatalf("list entries: %v", err)
	}

	input := make([]topics.Entry, 0, len(stored))
	for _, e := range stored {
		kws := e.Keywords
		if len(kws) == 0 {
			kws = extractor.Keywords(e.Content, keywords.DefaultMaxKeywords)
		}
		input = append(input, topics.Entry{
			Keywords:  kws,
			Sentiment: e.SentimentScore,
		})
	}

	discovered := topics.NewDiscoverer().Discover(input)

	out := make([]topicJSON, 0, len(discovered))
	for _, t := range discovered {
		out = append(out, topicJSON{
			ID:               t.ID,
			Name:             t.Name,
			Keywords:         t.Keywords,
			EntryCount:       t.EntryCount,
			AverageSentiment: t.AverageSentiment,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal topics: %v", err)
	}
	fmt.Println(string(data))
}
