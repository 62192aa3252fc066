package generator

import (
	"fmt"
	"strings"
)

// buildSystemPrompt renders the channel voice into the system prompt.
func buildSystemPrompt(req Request) string {
	voice := req.Config.Voice

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s. %s\n", voice.Name, voice.Persona)
	if voice.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s\n", voice.Tone)
	}
	if len(voice.VerbalTics) > 0 {
		fmt.Fprintf(&sb, "Characteristic expressions you naturally use: %s\n",
			strings.Join(voice.VerbalTics, ", "))
	}
	if len(voice.Vocabulary.Preferred) > 0 {
		fmt.Fprintf(&sb, "Prefer this vocabulary: %s\n",
			strings.Join(voice.Vocabulary.Preferred, ", "))
	}

	forbidden := forbiddenVocabulary(req)
	if len(forbidden) > 0 {
		fmt.Fprintf(&sb, "NEVER use these words or phrases: %s\n",
			strings.Join(forbidden, ", "))
	}

	if req.StyleProfile != "" {
		sb.WriteString("\nMatch this writing style:\n")
		sb.WriteString(req.StyleProfile)
		sb.WriteString("\n")
	}

	sb.WriteString("\nRespond with JSON only: {\"headline\": \"...\", \"body\": \"...\"} where body is markdown.")
	return sb.String()
}

// buildUserPrompt renders the assignment: topic, sources, length, and on
// revisions the prior draft plus the gate's feedback.
func buildUserPrompt(req Request) string {
	cfg := req.Config

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a %s for the %q channel.\n", contentTypeOrDefault(cfg.ContentType), cfg.ID)
	fmt.Fprintf(&sb, "Domain: %s. Focus: %s.\n", cfg.Topic.Domain, cfg.Topic.Focus)
	if len(cfg.Topic.Keywords) > 0 {
		fmt.Fprintf(&sb, "Work in these keywords where natural: %s\n", strings.Join(cfg.Topic.Keywords, ", "))
	}
	for _, c := range cfg.Topic.Constraints {
		fmt.Fprintf(&sb, "Constraint: %s\n", c)
	}
	if cfg.TargetWordCount > 0 {
		fmt.Fprintf(&sb, "Target length: about %d words.\n", cfg.TargetWordCount)
	}

	if req.HistoryAvoidance != "" {
		sb.WriteString("\n")
		sb.WriteString(req.HistoryAvoidance)
		sb.WriteString("\n")
	}

	if len(req.Sources) > 0 {
		sb.WriteString("\nSOURCE MATERIAL:\n")
		for i, src := range req.Sources {
			fmt.Fprintf(&sb, "--- Source %d: %s", i+1, src.Title)
			if src.URL != "" {
				fmt.Fprintf(&sb, " (%s)", src.URL)
			}
			sb.WriteString(" ---\n")
			sb.WriteString(src.Body)
			sb.WriteString("\n")
		}
	}

	if req.Revision > 0 && req.PreviousDraft != nil {
		fmt.Fprintf(&sb, "\nThis is revision %d. Your previous draft did not pass review.\n", req.Revision)
		fmt.Fprintf(&sb, "PREVIOUS HEADLINE: %s\n", req.PreviousDraft.Headline)
		sb.WriteString("PREVIOUS BODY:\n")
		sb.WriteString(req.PreviousDraft.Body)
		sb.WriteString("\n")

		if len(req.Feedback) > 0 {
			sb.WriteString("\nREVIEWER FEEDBACK (address every point):\n")
			for _, f := range req.Feedback {
				fmt.Fprintf(&sb, "- %s\n", f)
			}
		}
		if len(req.Suggestions) > 0 {
			sb.WriteString("\nSUGGESTED IMPROVEMENTS:\n")
			for _, s := range req.Suggestions {
				fmt.Fprintf(&sb, "- %s\n", s)
			}
		}
		sb.WriteString("\nRewrite the draft from scratch incorporating the feedback. Do not just patch sentences.\n")
	}

	return sb.String()
}

// forbiddenVocabulary merges the voice's forbidden list with the learned
// additions for this attempt, deduplicated case-insensitively, order
// preserved: configured vocabulary first, then learned.
func forbiddenVocabulary(req Request) []string {
	seen := make(map[string]bool)
	var out []string
	for _, lists := range [][]string{req.Config.Voice.Vocabulary.Forbidden, req.ExtraForbidden} {
		for _, w := range lists {
			key := strings.ToLower(strings.TrimSpace(w))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, w)
		}
	}
	return out
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return "article"
	}
	return ct
}
