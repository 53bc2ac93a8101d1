package services

import "fmt"

// Prompt texts sent to the model. Editable templates in the prompts table are
// not consulted here.

func categorizePrompt(content string) string {
	return fmt.Sprintf(`Categorize this email into ONE of these categories: Urgent Work, Meeting, Newsletter, Spam, Personal, or General.

Email:
%s

Return ONLY the category name, nothing else.`, content)
}

func summarizePrompt(content string) string {
	return fmt.Sprintf(`Summarize this email in 2-3 sentences. Be concise and focus on the main point.

Email:
%s

Summary:`, content)
}

func actionItemsPrompt(content string) string {
	return fmt.Sprintf(`Extract action items from this email. Return ONLY valid JSON array format like this:
[{"task": "Complete the report", "deadline": "Friday"}, {"task": "Review document", "deadline": "None"}]

If there are no action items, return: []

Email:
%s

Return ONLY the JSON array, no other text.`, content)
}

func assistantPrompt(emailContext, query string) string {
	return fmt.Sprintf(`You are a helpful email assistant.

Context (Email Content):
%s

User Query:
%s

Answer the user's query based on the email context provided. Be concise and helpful.`, emailContext, query)
}

func draftPrompt(emailContent, instruction string) string {
	return fmt.Sprintf(`You are an expert email drafter.

Original Email:
%s

User Instruction:
%s

Draft a professional response to the email based on the user's instruction.
Return ONLY the body of the email. Do not include subject lines or placeholders like [Your Name] unless necessary.`, emailContent, instruction)
}
