package enrich

import (
	"log/slog"

	"github.com/tmc/langchaingo/textsplitter"
)

// truncateToBound shortens text to at most bound characters by taking
// leading chunks from a deterministic splitter, so the cut lands on a
// chunk boundary instead of mid-sentence. Falls back to a hard cut if
// the splitter fails.
func truncateToBound(text string, bound, chunkSize, chunkOverlap int) string {
	if len(text) <= bound {
		return text
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	chunks, err := splitter.SplitText(text)
	if err != nil || len(chunks) == 0 {
		slog.Debug("splitter failed during truncation, using hard cut", "err", err)
		return hardCut(text, bound)
	}

	out := ""
	for _, chunk := range chunks {
		grown := out
		if grown != "" {
			grown += "\n\n"
		}
		grown += chunk
		if len(grown) > bound {
			break
		}
		out = grown
	}

	if out == "" {
		// First chunk alone exceeds the bound
		return hardCut(chunks[0], bound)
	}
	return out
}

// hardCut truncates on a rune boundary at or below the byte bound.
func hardCut(text string, bound int) string {
	if len(text) <= bound {
		return text
	}
	cut := bound
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
