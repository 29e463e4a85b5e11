package rules

// Pack is a YAML-loadable bundle of classifier rules. Operators maintain
// packs as plain files and seed them with the CLI.
type Pack struct {
	SpamPatterns      []SpamPatternSpec      `yaml:"spam_patterns"`
	ToxicKeywords     []ToxicKeywordSpec     `yaml:"toxic_keywords"`
	SentimentKeywords []SentimentKeywordSpec `yaml:"sentiment_keywords"`
}

// SpamPatternSpec is the YAML form of a SpamPattern.
type SpamPatternSpec struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// ToxicKeywordSpec is the YAML form of a ToxicKeyword.
type ToxicKeywordSpec struct {
	Keyword  string  `yaml:"keyword"`
	Category string  `yaml:"category"`
	Severity float64 `yaml:"severity"`
}

// SentimentKeywordSpec is the YAML form of a SentimentKeyword.
type SentimentKeywordSpec struct {
	Keyword   string  `yaml:"keyword"`
	Sentiment string  `yaml:"sentiment"`
	Weight    float64 `yaml:"weight"`
	Category  string  `yaml:"category"`
}

// SpamPatternValues converts the pack's spam pattern specs to domain values.
func (p Pack) SpamPatternValues() []SpamPattern {
	patterns := make([]SpamPattern, 0, len(p.SpamPatterns))
	for _, s := range p.SpamPatterns {
		patterns = append(patterns, NewSpamPattern(PatternType(s.Type), s.Value))
	}
	return patterns
}

// ToxicKeywordValues converts the pack's toxic keyword specs to domain values.
func (p Pack) ToxicKeywordValues() []ToxicKeyword {
	keywords := make([]ToxicKeyword, 0, len(p.ToxicKeywords))
	for _, s := range p.ToxicKeywords {
		keywords = append(keywords, NewToxicKeyword(s.Keyword, s.Category, s.Severity))
	}
	return keywords
}

// SentimentKeywordValues converts the pack's sentiment keyword specs to domain values.
func (p Pack) SentimentKeywordValues() []SentimentKeyword {
	keywords := make([]SentimentKeyword, 0, len(p.SentimentKeywords))
	for _, s := range p.SentimentKeywords {
		keywords = append(keywords, NewSentimentKeyword(s.Keyword, SentimentLabel(s.Sentiment), s.Weight, s.Category))
	}
	return keywords
}

// IsEmpty reports whether the pack contains no rules at all.
func (p Pack) IsEmpty() bool {
	return len(p.SpamPatterns) == 0 && len(p.ToxicKeywords) == 0 && len(p.SentimentKeywords) == 0
}

// DefaultPack returns the built-in Vietnamese/English rule pack used when no
// custom pack is seeded.
func DefaultPack() Pack {
	return Pack{
		SpamPatterns: []SpamPatternSpec{
			{Type: "keyword", Value: "mua ngay"},
			{Type: "keyword", Value: "giảm giá sốc"},
			{Type: "keyword", Value: "khuyến mãi khủng"},
			{Type: "keyword", Value: "kiếm tiền online"},
			{Type: "keyword", Value: "việc nhẹ lương cao"},
			{Type: "keyword", Value: "inbox mình nhé"},
			{Type: "keyword", Value: "kết bạn zalo"},
			{Type: "keyword", Value: "vay tiền nhanh"},
			{Type: "keyword", Value: "trúng thưởng"},
			{Type: "keyword", Value: "click vào link"},
			{Type: "keyword", Value: "free money"},
			{Type: "keyword", Value: "work from home"},
			{Type: "keyword", Value: "earn cash fast"},
			{Type: "domain", Value: "bit.ly"},
			{Type: "domain", Value: "tinyurl.com"},
			{Type: "domain", Value: "shorte.st"},
			{Type: "phone", Value: `(\+84|0)[0-9]{9,10}`},
		},
		ToxicKeywords: []ToxicKeywordSpec{
			{Keyword: "đồ ngu", Category: "insult", Severity: 1.5},
			{Keyword: "ngu như bò", Category: "insult", Severity: 2.0},
			{Keyword: "óc chó", Category: "insult", Severity: 2.5},
			{Keyword: "đồ rác rưởi", Category: "insult", Severity: 2.0},
			{Keyword: "câm mồm", Category: "harassment", Severity: 2.0},
			{Keyword: "cút đi", Category: "harassment", Severity: 1.5},
			{Keyword: "biến đi", Category: "harassment", Severity: 1.5},
			{Keyword: "đập chết", Category: "threat", Severity: 4.0},
			{Keyword: "giết", Category: "threat", Severity: 4.0},
			{Keyword: "xử mày", Category: "threat", Severity: 3.5},
			{Keyword: "lừa đảo", Category: "defamation", Severity: 2.0},
			{Keyword: "bọn lừa gạt", Category: "defamation", Severity: 2.5},
			{Keyword: "stupid", Category: "insult", Severity: 1.5},
			{Keyword: "idiot", Category: "insult", Severity: 1.5},
			{Keyword: "trash", Category: "insult", Severity: 1.0},
			{Keyword: "shut up", Category: "harassment", Severity: 1.5},
			{Keyword: "kill you", Category: "threat", Severity: 4.0},
			{Keyword: "scam", Category: "defamation", Severity: 2.0},
		},
		SentimentKeywords: []SentimentKeywordSpec{
			{Keyword: "tuyệt vời", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "xuất sắc", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "rất thích", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "yêu thích", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "hài lòng", Sentiment: "positive", Weight: 1, Category: "satisfaction"},
			{Keyword: "tốt", Sentiment: "positive", Weight: 1, Category: "praise"},
			{Keyword: "đẹp", Sentiment: "positive", Weight: 1, Category: "praise"},
			{Keyword: "nhanh", Sentiment: "positive", Weight: 1, Category: "service"},
			{Keyword: "chất lượng", Sentiment: "positive", Weight: 1, Category: "quality"},
			{Keyword: "cảm ơn", Sentiment: "positive", Weight: 1, Category: "gratitude"},
			{Keyword: "ủng hộ", Sentiment: "positive", Weight: 1, Category: "loyalty"},
			{Keyword: "great", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "excellent", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "love", Sentiment: "positive", Weight: 2, Category: "praise"},
			{Keyword: "good", Sentiment: "positive", Weight: 1, Category: "praise"},
			{Keyword: "nice", Sentiment: "positive", Weight: 1, Category: "praise"},
			{Keyword: "thanks", Sentiment: "positive", Weight: 1, Category: "gratitude"},
			{Keyword: "tệ", Sentiment: "negative", Weight: 1, Category: "complaint"},
			{Keyword: "xấu", Sentiment: "negative", Weight: 1, Category: "complaint"},
			{Keyword: "chậm", Sentiment: "negative", Weight: 1, Category: "service"},
			{Keyword: "thất vọng", Sentiment: "negative", Weight: 2, Category: "complaint"},
			{Keyword: "kém chất lượng", Sentiment: "negative", Weight: 2, Category: "quality"},
			{Keyword: "quá tệ", Sentiment: "negative", Weight: 2, Category: "complaint"},
			{Keyword: "không hài lòng", Sentiment: "negative", Weight: 2, Category: "complaint"},
			{Keyword: "hoàn tiền", Sentiment: "negative", Weight: 1, Category: "refund"},
			{Keyword: "bad", Sentiment: "negative", Weight: 1, Category: "complaint"},
			{Keyword: "slow", Sentiment: "negative", Weight: 1, Category: "service"},
			{Keyword: "terrible", Sentiment: "negative", Weight: 2, Category: "complaint"},
			{Keyword: "awful", Sentiment: "negative", Weight: 2, Category: "complaint"},
			{Keyword: "disappointed", Sentiment: "negative", Weight: 2, Category: "complaint"},
			{Keyword: "refund", Sentiment: "negative", Weight: 1, Category: "refund"},
		},
	}
}
