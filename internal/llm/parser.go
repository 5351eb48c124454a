// ABOUTME: Strict parser for the SUMMARY:/KEYWORDS: insight response format
// ABOUTME: Unrecognized responses are an explicit failure, never a fuzzy guess
package llm

import (
	"fmt"
	"strings"

	"github.com/zain/mindsearch/internal/models"
)

const (
	summaryPrefix  = "SUMMARY:"
	keywordsPrefix = "KEYWORDS:"
)

// ParseInsightResponse extracts the summary and keyword list from a model
// response. The prefixes match case-insensitively; keywords split on commas
// with whitespace trimmed and are capped at five. A response with neither a
// summary nor keywords is a generation failure.
func ParseInsightResponse(content string) (models.Insight, error) {
	var summary, keywordsLine string

	for _, line := range strings.Split(content, "\n") {
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, summaryPrefix):
			summary = strings.TrimSpace(line[len(summaryPrefix):])
		case strings.HasPrefix(upper, keywordsPrefix):
			keywordsLine = strings.TrimSpace(line[len(keywordsPrefix):])
		}
	}

	keywords := []string{}
	for _, kw := range strings.Split(keywordsLine, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) > models.MaxInsightKeywords {
		keywords = keywords[:models.MaxInsightKeywords]
	}

	if summary == "" && len(keywords) == 0 {
		return models.Insight{}, fmt.Errorf("no SUMMARY or KEYWORDS line in response")
	}
	return models.Insight{Summary: summary, Keywords: keywords}, nil
}
