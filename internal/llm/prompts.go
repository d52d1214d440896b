package llm

import (
	"fmt"
	"strings"
)

// Message is a single turn in a tutoring conversation.
type Message struct {
	Role    string `json:"role"`    // "student" or "tutor"
	Content string `json:"content"`
}

// explanationPrompt builds the explanation prompt for a topic at the
// requested difficulty. Unknown difficulties fall back to beginner.
func explanationPrompt(query, difficulty string) string {
	switch difficulty {
	case "advanced":
		return fmt.Sprintf(`Provide an advanced explanation of %q including:
1. Technical concepts and terminology
2. Complex examples and applications
3. In-depth analysis or derivations
4. Advanced connections to other topics
5. 3 challenging practice questions
Limit to 500 words.`, query)
	case "intermediate":
		return fmt.Sprintf(`Explain %q at an intermediate level:
1. Clear explanation with some technical details
2. Practical examples and applications
3. Step-by-step process if applicable
4. Key concepts and relationships
5. 3 moderate practice questions
Limit to 450 words.`, query)
	default:
		return fmt.Sprintf(`Explain the topic %q in this way:
1. Start with a very simple explanation as if teaching a beginner.
2. Give 1-2 real-world or subject-related examples.
3. Provide a step-by-step breakdown (if it's a process).
4. Summarize the key points in under 5 bullet notes.
5. End with 2 practice questions (without answers).
Limit total explanation to about 400 words.`, query)
	}
}

// chatPrompt builds the conversational tutoring prompt, folding in the
// optional topic context and prior conversation turns.
func chatPrompt(message, topic string, history []Message) string {
	var b strings.Builder
	b.WriteString("You are a helpful educational AI tutor. ")

	if topic != "" {
		fmt.Fprintf(&b, "Current topic context: %s. ", topic)
	}

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, entry := range history {
			fmt.Fprintf(&b, "%s: %s\n", entry.Role, entry.Content)
		}
	}

	fmt.Fprintf(&b, "\nStudent question: %s\n\nProvide a helpful, educational response that encourages learning. Keep responses concise but informative (under 300 words).", message)

	return b.String()
}

// notesPrompt builds the study notes prompt for the requested note type.
// Unknown types fall back to a summary.
func notesPrompt(topic, subject, noteType string) string {
	switch noteType {
	case "detailed":
		return fmt.Sprintf(`Create detailed study notes for %q in %s:
1. Comprehensive explanation with all key concepts
2. Important formulas or definitions
3. Multiple examples and applications
4. Common mistakes to avoid
5. Connection to other topics
Format as structured notes with clear headings.`, topic, subject)
	case "flashcards":
		return fmt.Sprintf(`Create flashcard-style study material for %q in %s:
Generate 8-10 question-answer pairs covering key concepts.
Format as:
Q: [Question]
A: [Concise Answer]
Focus on important facts, definitions, and concepts.`, topic, subject)
	default:
		return fmt.Sprintf(`Create concise study notes for %q in %s:
1. Key concepts and definitions
2. Important points to remember
3. Quick examples
4. Summary in bullet points
Keep it concise but comprehensive for quick review.`, topic, subject)
	}
}
