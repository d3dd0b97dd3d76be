// Package sift is the text analysis engine for a journaling application:
// sentiment scoring, mood detection, keyword and entity extraction, topic
// discovery, cognitive distortion detection with reframing suggestions, and
// embedding similarity. Every analyzer works offline from deterministic
// heuristics; a local model endpoint, when reachable, refines a few of them.
package sift

import (
	"context"
	"log"
	"sync"

	"github.com/innerlog/sift/pkg/sift/distortion"
	"github.com/innerlog/sift/pkg/sift/keywords"
	"github.com/innerlog/sift/pkg/sift/lexicon"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/reframe"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/topics"
)

// Engine bundles the analyzers behind a single entry point.
type Engine struct {
	sentiment  *sentiment.Analyzer
	extractor  *keywords.Extractor
	detector   *distortion.Detector
	discoverer *topics.Discoverer
}

// Options configures an Engine. Zero-value fields get working defaults: a
// lexicon-only sentiment analyzer, the built-in stopword list, and a
// pattern-only distortion detector.
type Options struct {
	Classifier sentiment.Classifier
	Advisor    distortion.Advisor
	Lexicon    *lexicon.Lexicon
	Stopwords  []string
	Logger     *log.Logger
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	analyzer := sentiment.NewAnalyzer(opts.Classifier)
	analyzer.Logger = opts.Logger
	if opts.Lexicon != nil {
		analyzer.Lexicon = opts.Lexicon
		analyzer.BatchLexicon = opts.Lexicon
	}

	extractor := keywords.NewExtractor()
	if opts.Stopwords != nil {
		extractor = keywords.NewExtractorWithStopwords(opts.Stopwords)
	}

	detector := distortion.NewDetector(opts.Advisor)
	detector.Logger = opts.Logger

	return &Engine{
		sentiment:  analyzer,
		extractor:  extractor,
		detector:   detector,
		discoverer: topics.NewDiscoverer(),
	}
}

// FullAnalysis is the combined result of the interactive analysis passes.
type FullAnalysis struct {
	Sentiment sentiment.Result
	Keywords  []string
	Entities  []string
}

// AnalyzeText runs sentiment classification and keyword/entity extraction
// over one entry. The sentiment pass may call out to a model, so it runs
// concurrently with the local extraction passes.
func (e *Engine) AnalyzeText(ctx context.Context, text string) FullAnalysis {
	var result FullAnalysis

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Sentiment = e.sentiment.Analyze(ctx, text)
	}()

	result.Keywords = e.extractor.Keywords(text, keywords.DefaultMaxKeywords)
	result.Entities = keywords.Entities(text)
	wg.Wait()

	return result
}

// AnalyzeBatch scores raw text on the -100..100 scale without any model call.
func (e *Engine) AnalyzeBatch(text string) (sentiment.BatchScore, sentiment.Label) {
	return e.sentiment.AnalyzeBatch(text)
}

// DetectMood maps an entry to a mood using its interactive sentiment score.
func (e *Engine) DetectMood(text string, score sentiment.Score) mood.Mood {
	return mood.Detect(text, score)
}

// DetectDistortions finds cognitive distortion patterns in an entry.
func (e *Engine) DetectDistortions(ctx context.Context, text string) []distortion.Distortion {
	return e.detector.Detect(ctx, text)
}

// Reframe generates reframing suggestions, Socratic questions, and positive
// anchors for the detected distortions.
func (e *Engine) Reframe(distortions []distortion.Distortion, text string) reframe.Result {
	return reframe.Generate(distortions, text)
}

// DiscoverTopics clusters entries into recurring topics by keyword
// co-occurrence.
func (e *Engine) DiscoverTopics(entries []topics.Entry) []topics.Topic {
	return e.discoverer.Discover(entries)
}
