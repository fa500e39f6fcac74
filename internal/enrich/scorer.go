package enrich

import (
	"strings"
	"time"
)

// Priority bands. Scores are always in [0, 100].
const (
	HighPriorityThreshold   = 70
	MediumPriorityThreshold = 40
)

// highPriorityKeywords push an email straight into the high band.
var highPriorityKeywords = []string{
	"urgent", "asap", "action required", "critical", "immediately", "final notice",
}

// mediumPriorityKeywords each add a smaller fixed weight.
var mediumPriorityKeywords = []string{
	"important", "reminder", "deadline", "overdue", "please respond", "follow up",
}

const (
	highKeywordBase     = 70
	mediumKeywordWeight = 15
	mediumKeywordCap    = 30
	senderWeight        = 3
	senderCap           = 5
	recencyDayBonus     = 10
	recencyWeekBonus    = 5
	maxScore            = 100
)

// SignalInput carries the attributes the scorer looks at.
type SignalInput struct {
	Subject     string
	Body        string
	SenderCount int // prior emails seen from this sender
	ReceivedAt  time.Time
}

// Score computes a priority score in [0, 100]. Every signal contributes a
// non-negative weight, so adding urgency signals never lowers the score, and
// the same input always yields the same output.
func Score(in SignalInput, now time.Time) int {
	text := strings.ToLower(in.Subject + " " + in.Body)

	score := 0
	for _, keyword := range highPriorityKeywords {
		if strings.Contains(text, keyword) {
			score = highKeywordBase
			break
		}
	}

	medium := 0
	for _, keyword := range mediumPriorityKeywords {
		if strings.Contains(text, keyword) {
			medium += mediumKeywordWeight
		}
	}
	if medium > mediumKeywordCap {
		medium = mediumKeywordCap
	}
	score += medium

	familiarity := in.SenderCount
	if familiarity > senderCap {
		familiarity = senderCap
	}
	score += familiarity * senderWeight

	if !in.ReceivedAt.IsZero() {
		age := now.Sub(in.ReceivedAt)
		switch {
		case age <= 24*time.Hour:
			score += recencyDayBonus
		case age <= 7*24*time.Hour:
			score += recencyWeekBonus
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Band maps a score to its named priority band.
func Band(score int) string {
	switch {
	case score >= HighPriorityThreshold:
		return "high"
	case score >= MediumPriorityThreshold:
		return "medium"
	default:
		return "low"
	}
}
