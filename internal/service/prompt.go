package service

import (
	"fmt"
	"strings"

	"consultcoach/internal/config"
	"consultcoach/internal/model"
)

func buildAnalysisPrompt(p config.Persona, transcript string) string {
	return fmt.Sprintf(`You are an expert %s for %s.
Analyze the following %s transcript between %s.
Use %s. Voice should be %s.

Return ONLY valid JSON with the following keys:
- "summary": a concise 2-3 sentence summary of the consultation.
- "topics": a list of main topics discussed.
- "sentiment_score": an integer from 0 (negative) to 100 (positive) for the overall consult sentiment.
- "strengths": a list of what the artist did well.
- "improvements": a list of areas for improvement, missed questions or decision friction.
- "coaching_tips": a list of actionable advice for the artist.
- "client_intent": an object with
    "occasion" (e.g. wedding, elopement, rehearsal dinner, or "unknown"),
    "date_mentions" (a list of dates as mentioned),
    "decision_timing" (when the client plans to decide, or "unknown"),
    "primary_motivation" (the main stated motivation, or "unknown").
- "consult_scorecard": an object with 0-10 ratings for
    "authority_and_leadership", "aesthetic_alignment", "constraint_setting",
    "package_pricing_clarity", "hesitation_handling", "decision_safety", "next_steps_locked".
- "conversion_risks": a list of objects with
    "label" (short risk label), "severity" ("low", "medium" or "high"),
    "evidence" (short quote or paraphrase tied to hesitation or decision friction),
    "timestamp" (time string from the transcript, or null).
- "missed_questions": a list of missed consultation questions. Use ONLY values from:
    [%s]
- "recommended_micro_scripts": a list of objects with "moment" (situation or timestamp) and "script" (1-2 sentences).
- "timeline": a list of objects with
    "timestamp" (time string from the transcript, e.g. "00:05:30" or "05:30"),
    "type" (one of %s),
    "description" (short description of the event).

Transcript:
%s`,
		p.CoachRole, p.Brand, p.Consultation, p.Participants, p.Style, p.Tone,
		quoteList(model.MissedQuestionVocabulary), quoteList(model.TimelineTypes), transcript)
}

func buildChatPrompt(p config.Persona, transcript, conversation string) string {
	return fmt.Sprintf(`You are a %s for %s.
Style: %s. Tone: %s.
Answer ONLY from the transcript provided. If the answer is not in the transcript, say: "%s"
Keep replies concise and direct.

Transcript:
%s

Conversation so far:
%s

Coach response:`,
		p.CoachRole, p.Brand, p.Style, p.Tone, RefusalMessage, transcript, conversation)
}

// buildConversation renders prior turns as "User:"/"Coach:" lines and appends
// the new question unless it is already the final user line.
func buildConversation(history []model.ChatTurn, question string) string {
	lines := make([]string, 0, len(history)+1)
	lastUser := ""
	lastIsUser := false
	for _, turn := range history {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		switch turn.Role {
		case model.RoleUser:
			lines = append(lines, "User: "+turn.Content)
			lastUser, lastIsUser = turn.Content, true
		case model.RoleAssistant:
			lines = append(lines, "Coach: "+turn.Content)
			lastIsUser = false
		}
	}
	if question != "" && !(lastIsUser && lastUser == question) {
		lines = append(lines, "User: "+question)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
