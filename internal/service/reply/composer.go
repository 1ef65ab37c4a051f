package reply

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/memobot/internal/core"
)

const (
	GreetingReply = "Hello! I'm your memory bot. I remember our conversations and the memories you've shared with me."
	HelpReply     = "I'm here to chat with you using the memories you've added with /remember. Just type naturally and I'll try to connect our conversation to your stored memories!"

	firstExcerptLimit  = 100
	secondExcerptLimit = 80
	ellipsis           = "..."
)

var acknowledgements = []string{
	"That's interesting! Let me think about that...",
	"I see what you mean. Based on what I remember...",
	"That rings a bell from something you told me before...",
	"Got it. Let me connect this to what we talked about...",
	"Good point! I recall you mentioning...",
	"Interesting way to put it! I remember when you said...",
	"I can see a link to what we discussed earlier...",
	"That makes sense, especially considering...",
	"Thanks for sharing that. It relates to...",
	"That's useful context! I remember you telling me...",
}

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// Composer turns matched memories into a reply. It is safe for concurrent use.
type Composer struct {
	mu     sync.Mutex
	picker Picker
}

func NewComposer(picker Picker) *Composer {
	return &Composer{picker: picker}
}

func NewDefaultComposer() *Composer {
	return NewComposer(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Compose builds the reply for query. matches are the relevant memories in
// storage order and total is the size of the whole store.
func (c *Composer) Compose(query string, matches []core.Memory, total int) string {
	var sb strings.Builder
	sb.WriteString(c.acknowledge())

	switch {
	case len(matches) > 0:
		fmt.Fprintf(&sb, ` I remember you telling me: "%s"`, excerpt(matches[0].Text, firstExcerptLimit))
		if len(matches) > 1 {
			fmt.Fprintf(&sb, ` And also: "%s"`, excerpt(matches[1].Text, secondExcerptLimit))
		}
	case total > 0:
		fmt.Fprintf(&sb, " I have %d memories stored, but I'm still learning to connect them better to our conversations.", total)
	default:
		sb.WriteString(" I don't have any memories stored yet, but I'm ready to learn!")
	}

	composed := sb.String()
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "hello") || strings.Contains(q, "hi"):
		return GreetingReply
	case strings.Contains(q, "memory") || strings.Contains(q, "remember"):
		return fmt.Sprintf("I currently have %d memories stored. %s", total, composed)
	case strings.Contains(q, "help"):
		return HelpReply
	default:
		return composed
	}
}

func (c *Composer) acknowledge() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return acknowledgements[c.picker.Intn(len(acknowledgements))]
}

// excerpt cuts text at limit runes, with no regard for word boundaries.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}
