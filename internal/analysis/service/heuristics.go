package service

import (
	"fmt"
	"strings"

	"github.com/VictorSaf/ainvestfeed/internal/analysis/domain"
	newsdomain "github.com/VictorSaf/ainvestfeed/internal/news/domain"
)

const summaryMaxRunes = 150

var (
	bullishKeywords = []string{"beats", "record", "up"}
	bearishKeywords = []string{"miss", "down", "fall"}
)

// Recommend classifies an article by keyword matching on the lower-cased title and body.
// Matching is by substring; bullish keywords win over bearish ones.
func Recommend(n *newsdomain.News) (domain.Recommendation, int) {
	text := strings.ToLower(n.Title + " " + body(n))
	switch {
	case containsAny(text, bullishKeywords):
		return domain.RecommendationBuy, 75
	case containsAny(text, bearishKeywords):
		return domain.RecommendationSell, 70
	default:
		return domain.RecommendationHold, 60
	}
}

// Summarize returns the first 150 characters of the clean content, falling back to raw content and then the title.
func Summarize(n *newsdomain.News) string {
	base := body(n)
	if base == "" {
		base = n.Title
	}
	r := []rune(base)
	if len(r) > summaryMaxRunes {
		r = r[:summaryMaxRunes]
	}
	return string(r)
}

func reasoning(rec domain.Recommendation) string {
	return fmt.Sprintf("Heuristic analysis from content. Recommendation=%s", rec)
}

func body(n *newsdomain.News) string {
	if n.ContentClean != nil {
		return *n.ContentClean
	}
	if n.ContentRaw != nil {
		return *n.ContentRaw
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
