package services

import (
	"encoding/json"
	"strings"

	"inboxagent/internal/models"
)

// ParseActionItems decodes model output into action items. The text may be
// wrapped in a ``` fence with an optional json tag. Anything that is not a
// JSON list of {task, deadline} objects yields an empty list.
func ParseActionItems(text string) []models.ActionItem {
	result := strings.TrimSpace(text)

	if strings.HasPrefix(result, "```") {
		parts := strings.Split(result, "```")
		if len(parts) > 1 {
			result = parts[1]
		}
		result = strings.TrimPrefix(result, "json")
		result = strings.TrimSpace(result)
	}

	var items []models.ActionItem
	if err := json.Unmarshal([]byte(result), &items); err != nil || items == nil {
		return []models.ActionItem{}
	}
	return items
}
