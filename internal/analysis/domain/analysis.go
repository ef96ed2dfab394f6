package domain

import "time"

type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationSell Recommendation = "SELL"
	RecommendationHold Recommendation = "HOLD"
)

// Detail is a trading recommendation derived from an article.
type Detail struct {
	ID               string         `json:"id"`
	NewsID           string         `json:"newsId"`
	InstrumentSymbol *string        `json:"instrumentSymbol"`
	Market           *string        `json:"market"`
	Recommendation   Recommendation `json:"recommendation"`
	ConfidenceScore  int            `json:"confidenceScore"`
	Reasoning        string         `json:"reasoning"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// Summary is a short text digest of an article.
type Summary struct {
	ID             string    `json:"id"`
	NewsID         string    `json:"newsId"`
	SummaryText    string    `json:"summaryText"`
	SentimentScore *float64  `json:"sentimentScore"`
	CreatedAt      time.Time `json:"createdAt"`
}
