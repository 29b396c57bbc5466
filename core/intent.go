package core

import (
	"regexp"
	"strconv"
	"strings"
)

// IntentKind is what the assistant thinks the user asked for.
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentCreate
	IntentList
	IntentComplete
	IntentDelete
	IntentGreeting
)

func (k IntentKind) String() string {
	switch k {
	case IntentCreate:
		return "create"
	case IntentList:
		return "list"
	case IntentComplete:
		return "complete"
	case IntentDelete:
		return "delete"
	case IntentGreeting:
		return "greeting"
	default:
		return "unknown"
	}
}

// Intent is the parsed form of a chat message.
// Title is set for IntentCreate, Ordinal (1-based, oldest task first) for complete and delete.
type Intent struct {
	Kind    IntentKind
	Title   string
	Ordinal int
}

// Patterns run against the lower-cased message, first match wins.
var (
	createPatterns = []*regexp.Regexp{
		regexp.MustCompile(`add.*task.*to\s+(.+)`),
		regexp.MustCompile(`create.*task.*to\s+(.+)`),
		regexp.MustCompile(`add.*task\s+(.+)`),
		regexp.MustCompile(`create.*task\s+(.+)`),
		regexp.MustCompile(`new task\s+(.+)`),
		regexp.MustCompile(`add\s+(.+)\s+to my tasks`),
	}
	titleSuffixRe = regexp.MustCompile(`\s*(to my tasks|for me|please|thanks)$`)

	listWords = []string{"show", "list", "view", "see", "my tasks"}

	// Lazy prefixes so "complete task 12" captures 12, not 2.
	completeRe = regexp.MustCompile(`mark.*?task.*?#?(\d+).*completed|complete.*?task.*?#?(\d+)`)

	deletePatterns = []*regexp.Regexp{
		regexp.MustCompile(`delete.*?task.*?#?(\d+)`),
		regexp.MustCompile(`remove.*?task.*?#?(\d+)`),
		regexp.MustCompile(`del.*?task.*?#?(\d+)`),
		regexp.MustCompile(`delete.*?#?(\d+)`),
		regexp.MustCompile(`remove.*?#?(\d+)`),
		regexp.MustCompile(`del.*?#?(\d+)`),
		regexp.MustCompile(`task.*?del.*?id.*?(\d+)`),
		regexp.MustCompile(`del.*?task.*?id.*?(\d+)`),
	}

	greetings = []string{"hello", "hi", "hey"}
)

// ParseIntent classifies a chat message with the assistant's fixed rules.
func ParseIntent(message string) Intent {
	msg := strings.ToLower(strings.TrimSpace(message))

	for _, re := range createPatterns {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(titleSuffixRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		if title != "" {
			return Intent{Kind: IntentCreate, Title: title}
		}
	}

	for _, w := range listWords {
		if strings.Contains(msg, w) {
			return Intent{Kind: IntentList}
		}
	}

	if m := completeRe.FindStringSubmatch(msg); m != nil {
		if n, ok := firstNumber(m[1:]); ok {
			return Intent{Kind: IntentComplete, Ordinal: n}
		}
	}

	for _, re := range deletePatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			if n, ok := firstNumber(m[1:]); ok {
				return Intent{Kind: IntentDelete, Ordinal: n}
			}
		}
	}

	for _, g := range greetings {
		if strings.HasPrefix(msg, g) {
			return Intent{Kind: IntentGreeting}
		}
	}
	return Intent{Kind: IntentUnknown}
}

func firstNumber(groups []string) (int, bool) {
	for _, g := range groups {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
