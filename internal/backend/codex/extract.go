package codex

import "strings"

// Codex prints a metadata preamble (banner, workdir/model/provider lines, the
// echoed user prompt) before the answer and a token accounting line after it.
// The format is unversioned and drifts between releases, so the marker sets
// live on the Extractor value and can be overridden from configuration.
type Extractor struct {
	// AnswerMarkers are lines that, once trimmed, mark the start of the
	// answer on the following line. The last marker before the trailer wins.
	AnswerMarkers []string
	// MetadataPrefixes identify preamble lines when no answer marker is
	// present.
	MetadataPrefixes []string
	// TrailerPrefix starts the token accounting line that ends the answer.
	TrailerPrefix string
}

func NewExtractor() *Extractor {
	return &Extractor{
		AnswerMarkers: []string{"codex", "thinking"},
		MetadataPrefixes: []string{
			"workdir:",
			"model:",
			"provider:",
			"approval:",
			"sandbox:",
			"reasoning effort:",
			"reasoning summaries:",
			"session id:",
		},
		TrailerPrefix: "tokens used",
	}
}

// Extract isolates the model answer from raw codex stdout. It is pure: same
// input, same output, no I/O. It never returns an empty string for non-empty
// input — when the marker heuristics find nothing, the whole trimmed raw
// text is returned rather than silently dropping an answer.
func (e *Extractor) Extract(raw string) string {
	lines := strings.Split(raw, "\n")

	start := -1
	end := len(lines)
	for i, line := range lines {
		if e.isAnswerMarker(strings.TrimSpace(line)) {
			start = i + 1
			continue
		}
		if start >= 0 && strings.HasPrefix(line, e.TrailerPrefix) {
			end = i
			break
		}
	}

	if start < 0 {
		start, end = e.fallbackBounds(lines)
	}

	if start >= 0 && start <= end {
		if body := strings.TrimSpace(strings.Join(lines[start:end], "\n")); body != "" {
			return body
		}
	}

	return strings.TrimSpace(raw)
}

// fallbackBounds handles output without an explicit answer marker: the
// answer starts at the first non-blank line that is not recognized metadata
// and still ends at the trailer line, if one appears.
func (e *Extractor) fallbackBounds(lines []string) (int, int) {
	start := -1
	end := len(lines)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || e.isMetadata(trimmed) {
			continue
		}
		start = i
		break
	}
	if start >= 0 {
		for i := start; i < len(lines); i++ {
			if strings.HasPrefix(lines[i], e.TrailerPrefix) {
				end = i
				break
			}
		}
	}
	return start, end
}

func (e *Extractor) isAnswerMarker(trimmed string) bool {
	for _, m := range e.AnswerMarkers {
		if trimmed == m {
			return true
		}
	}
	return false
}

// isMetadata reports whether a trimmed line belongs to the preamble: a known
// key prefix, the echoed "user" section marker, or a banner/separator run.
func (e *Extractor) isMetadata(trimmed string) bool {
	if trimmed == "user" {
		return true
	}
	for _, p := range e.MetadataPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return isSeparator(trimmed)
}

func isSeparator(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '-', '=', '*', '_', '─', '━', '═':
		default:
			return false
		}
	}
	return true
}
