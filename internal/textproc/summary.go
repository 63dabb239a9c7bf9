package textproc

import "strings"

// NoSummary is the placeholder shown when no summary could be generated.
// Kept verbatim from the original engine for client compatibility.
const NoSummary = "Sin resumen disponible."

const (
	// SummarySentences is the number of sentences a summary keeps.
	SummarySentences = 2

	// minSentenceLength filters out fragments too short to be meaningful.
	minSentenceLength = 20
)

// Summarize builds a short summary from the first maxSentences meaningful
// sentences of the text. Sentences shorter than 20 characters are skipped.
// Returns NoSummary when nothing usable remains.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = SummarySentences
	}

	collapsed := strings.Join(strings.Fields(text), " ")

	var kept []string
	for _, sentence := range strings.Split(collapsed, ". ") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minSentenceLength {
			continue
		}
		kept = append(kept, sentence)
		if len(kept) == maxSentences {
			break
		}
	}

	if len(kept) == 0 {
		return NoSummary
	}
	return strings.Join(kept, ". ") + "..."
}
