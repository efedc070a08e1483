package quote

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	apiNinjasURL = "https://api.api-ninjas.com/v1/quotes"
	zenQuotesURL = "https://zenquotes.io/api/today"

	cachePrefix = "quote_cache_"
	cacheMaxAge = 7 * 24 * time.Hour
)

// Source names shown next to the quote.
const (
	SourceAPINinjas = "API Ninjas"
	SourceZenQuotes = "ZenQuotes"
	SourceLocal     = "Local Collection"
)

// Service picks a daily quote from rotating sources with a per-day cache.
// It never returns an error: every remote failure falls back to the local
// collection.
type Service struct {
	logger     *slog.Logger
	client     *http.Client
	cacheDir   string
	keyFile    string // API Ninjas key file; empty disables that source
	ninjasURL  string
	zenURL     string
}

// NewService creates a quote service caching under cacheDir.
func NewService(logger *slog.Logger, cacheDir, keyFile string) *Service {
	return &Service{
		logger:    logger,
		client:    &http.Client{Timeout: 10 * time.Second},
		cacheDir:  cacheDir,
		keyFile:   keyFile,
		ninjasURL: apiNinjasURL,
		zenURL:    zenQuotesURL,
	}
}

type cacheEntry struct {
	Quote     string `json:"quote"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// Daily returns today's quote and its source name.
func (s *Service) Daily(now time.Time) (string, string) {
	if quote, source, ok := s.loadCache(now); ok {
		return quote, source
	}
	s.cleanupCache(now)

	var quote, source string
	switch now.YearDay() % 3 {
	case 0:
		quote, source = s.fromAPINinjas(), SourceAPINinjas
	case 1:
		quote, source = s.fromZenQuotes(), SourceZenQuotes
	default:
		quote, source = localQuote(now), SourceLocal
	}
	if quote == "" {
		quote, source = localQuote(now), SourceLocal
	}

	s.saveCache(now, quote, source)
	return quote, source
}

func (s *Service) fromAPINinjas() string {
	if s.keyFile == "" {
		return ""
	}
	key, err := os.ReadFile(s.keyFile)
	if err != nil {
		s.logger.Debug("Quote API key unavailable", "error", err)
		return ""
	}

	req, err := http.NewRequest(http.MethodGet, s.ninjasURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("X-Api-Key", strings.TrimSpace(string(key)))
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("Quote fetch failed", "source", SourceAPINinjas, "error", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var quotes []struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil || len(quotes) == 0 {
		return ""
	}
	return fmt.Sprintf("%q — %s", quotes[0].Quote, quotes[0].Author)
}

func (s *Service) fromZenQuotes() string {
	resp, err := s.client.Get(s.zenURL)
	if err != nil {
		s.logger.Debug("Quote fetch failed", "source", SourceZenQuotes, "error", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var quotes []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil || len(quotes) == 0 {
		return ""
	}
	return fmt.Sprintf("%q — %s", quotes[0].Q, quotes[0].A)
}

func localQuote(now time.Time) string {
	index := (now.Year() + int(now.Month()) + now.Day()) % len(localQuotes)
	return localQuotes[index]
}

func (s *Service) cachePath(now time.Time) string {
	return filepath.Join(s.cacheDir, cachePrefix+now.Format("2006-01-02")+".json")
}

func (s *Service) loadCache(now time.Time) (string, string, bool) {
	data, err := os.ReadFile(s.cachePath(now))
	if err != nil {
		return "", "", false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Quote == "" {
		return "", "", false
	}
	return entry.Quote, entry.Source, true
}

func (s *Service) saveCache(now time.Time, quote, source string) {
	entry := cacheEntry{Quote: quote, Source: source, Timestamp: now.Format(time.RFC3339)}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}
	// Cache misses are harmless; ignore write failures.
	_ = os.WriteFile(s.cachePath(now), data, 0o644)
}

// cleanupCache drops cache files older than a week.
func (s *Service) cleanupCache(now time.Time) {
	entries, err := os.ReadDir(s.cacheDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, cachePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, cachePrefix), ".json")
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if now.Sub(day) > cacheMaxAge {
			_ = os.Remove(filepath.Join(s.cacheDir, name))
		}
	}
}

var localQuotes = []string{
	"The way to get started is to quit talking and begin doing. - Walt Disney",
	"Life is what happens to you while you're busy making other plans. - John Lennon",
	"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
	"It is during our darkest moments that we must focus to see the light. - Aristotle",
	"The only impossible journey is the one you never begin. - Tony Robbins",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"The only way to do great work is to love what you do. - Steve Jobs",
	"Innovation distinguishes between a leader and a follower. - Steve Jobs",
	"Your time is limited, don't waste it living someone else's life. - Steve Jobs",
	"Stay hungry, stay foolish. - Steve Jobs",
	"Believe you can and you're halfway there. - Theodore Roosevelt",
	"The best time to plant a tree was 20 years ago. The second best time is now. - Chinese Proverb",
	"Don't watch the clock; do what it does. Keep going. - Sam Levenson",
	"Everything you've ever wanted is on the other side of fear. - George Addair",
	"Hardships often prepare ordinary people for an extraordinary destiny. - C.S. Lewis",
}
