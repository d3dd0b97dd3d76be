// sift-analyze runs the full analysis suite over a single journal entry and
// prints the result as JSON. Text comes from --input or stdin. With --ollama,
// the sentiment and distortion passes consult a local model endpoint when one
// is reachable; otherwise everything is computed locally.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/innerlog/sift/internal/ollama"
	"github.com/innerlog/sift/pkg/sift"
	"github.com/innerlog/sift/pkg/sift/config"
	"github.com/innerlog/sift/pkg/sift/distortion"
	"github.com/innerlog/sift/pkg/sift/lexicon"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/reframe"
	"github.com/innerlog/sift/pkg/sift/sentiment"
)

type analysisReport struct {
	Sentiment struct {
		Label      sentiment.Label `json:"label"`
		Confidence float64         `json:"confidence"`
		Score      float64         `json:"score"`
	} `json:"sentiment"`
	Mood        mood.Mood               `json:"mood"`
	Keywords    []string                `json:"keywords"`
	Entities    []string                `json:"entities"`
	Distortions []distortionJSON        `json:"distortions"`
	Reframing   reframingJSON           `json:"reframing"`
}

type distortionJSON struct {
	Type        distortion.Type `json:"type"`
	Label       string          `json:"label"`
	Confidence  float64         `json:"confidence"`
	Excerpt     string          `json:"excerpt"`
	Explanation string          `json:"explanation"`
}

type reframingJSON struct {
	Reframes        []string `json:"reframes"`
	Socratics       []string `json:"socratic_questions"`
	PositiveAnchors []string `json:"positive_anchors"`
}

func main() {
	var (
		input      = flag.String("input", "", "Path to entry text file (default: stdin)")
		configPath = flag.String("config", "", "Optional config YAML")
		useOllama  = flag.Bool("ollama", false, "Consult a local model endpoint when available")
	)
	flag.Parse()

	text, err := readInput(*input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	var cfg config.Config
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	opts := sift.Options{Logger: log.New(os.Stderr, "", log.LstdFlags)}

	if cfg.Lexicon != "" {
		lex, err := lexicon.LoadFromYAML(cfg.Lexicon)
		if err != nil {
			log.Fatalf("load lexicon: %v", err)
		}
		opts.Lexicon = lex
	}
	if cfg.Stopwords != "" {
		sw, err := config.LoadStopwords(cfg.Stopwords)
		if err != nil {
			log.Fatalf("load stopwords: %v", err)
		}
		opts.Stopwords = sw.Terms
	}

	if *useOllama {
		client := &ollama.Client{
			BaseURL:    cfg.Ollama.BaseURL,
			Model:      cfg.Ollama.Model,
			EmbedModel: cfg.Ollama.EmbedModel,
		}
		opts.Classifier = client
		opts.Advisor = client
	}

	engine := sift.New(opts)
	ctx := context.Background()

	analysis := engine.AnalyzeText(ctx, text)
	distortions := engine.DetectDistortions(ctx, text)
	reframed := engine.Reframe(distortions, text)

	fmt.Println(string(mustJSON(buildReport(text, analysis, distortions, reframed))))
}

func buildReport(text string, analysis sift.FullAnalysis, distortions []distortion.Distortion, reframed reframe.Result) analysisReport {
	var report analysisReport
	report.Sentiment.Label = analysis.Sentiment.Label
	report.Sentiment.Confidence = analysis.Sentiment.Confidence
	report.Sentiment.Score = float64(analysis.Sentiment.Normalized)
	report.Mood = mood.Detect(text, analysis.Sentiment.Normalized)
	report.Keywords = analysis.Keywords
	report.Entities = analysis.Entities

	report.Distortions = make([]distortionJSON, 0, len(distortions))
	for _, d := range distortions {
		report.Distortions = append(report.Distortions, distortionJSON{
			Type:        d.Type,
			Label:       d.Label,
			Confidence:  d.Confidence,
			Excerpt:     d.Excerpt,
			Explanation: d.Explanation,
		})
	}
	report.Reframing = reframingJSON{
		Reframes:        emptyIfNil(reframed.Reframes),
		Socratics:       emptyIfNil(reframed.Socratics),
		PositiveAnchors: emptyIfNil(reframed.PositiveAnchors),
	}
	return report
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func mustJSON(v any) []byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	return data
}
