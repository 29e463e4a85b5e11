package dto

// SummaryResponse is the JSON form of aggregate comment statistics.
type SummaryResponse struct {
	Total          int64            `json:"total"`
	BySentiment    map[string]int64 `json:"by_sentiment"`
	SpamCount      int64            `json:"spam_count"`
	ToxicCount     int64            `json:"toxic_count"`
	DuplicateCount int64            `json:"duplicate_count"`
	AvgScore       float64          `json:"avg_score"`
	AvgConfidence  float64          `json:"avg_confidence"`
}

// TrendPointResponse is one day's sentiment count.
type TrendPointResponse struct {
	Date      string `json:"date"`
	Sentiment string `json:"sentiment"`
	Count     int64  `json:"count"`
}

// TrendResponse wraps the daily sentiment trend.
type TrendResponse struct {
	Data []TrendPointResponse `json:"data"`
}

// KeywordCountResponse pairs a keyword with its frequency.
type KeywordCountResponse struct {
	Keyword string `json:"keyword"`
	Count   int64  `json:"count"`
}

// KeywordsResponse wraps the top keyword list.
type KeywordsResponse struct {
	Data []KeywordCountResponse `json:"data"`
}
