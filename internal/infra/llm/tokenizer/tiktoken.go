package tokenizer

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultEncoding = "cl100k_base"
	// runesPerToken approximates token counts when the BPE ranks cannot be loaded.
	runesPerToken = 4
)

// Tiktoken truncates text to a token budget using a BPE encoding. The
// encoding is loaded lazily; if loading fails it degrades to a rune
// approximation rather than failing the caller.
type Tiktoken struct {
	encodingName string
	logger       *slog.Logger

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewTiktoken constructs a truncator for the named encoding.
func NewTiktoken(encodingName string, logger *slog.Logger) *Tiktoken {
	if strings.TrimSpace(encodingName) == "" {
		encodingName = defaultEncoding
	}
	return &Tiktoken{
		encodingName: encodingName,
		logger:       logger.With("component", "llm.tokenizer"),
	}
}

// Truncate returns text cut to at most maxTokens tokens.
func (t *Tiktoken) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}
	enc := t.encoding()
	if enc == nil {
		return truncateRunes(text, maxTokens*runesPerToken)
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return strings.TrimSpace(enc.Decode(tokens[:maxTokens]))
}

func (t *Tiktoken) encoding() *tiktoken.Tiktoken {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encodingName)
		if err != nil {
			t.logger.Warn("tiktoken encoding unavailable, using rune budget", "encoding", t.encodingName, "error", err)
			return
		}
		t.enc = enc
	})
	return t.enc
}

func truncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:maxRunes]))
}
