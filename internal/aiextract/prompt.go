package aiextract

import (
	"encoding/json"

	"rosterscan/internal/domain"
)

// BuildRosterPrompt returns the extraction prompt for cleaned screen text.
func BuildRosterPrompt(screen domain.ScreenType, text string) string {
	schema, _ := json.MarshalIndent(RecordsSchema(), "", "  ")

	layout := "a roster table with one player per row"
	if screen == domain.ScreenDetail {
		layout = "a single-player detail screen"
	}

	return `You are a data extraction assistant for video game football rosters. The text below was read by OCR from ` + layout + `. OCR output is noisy: letters may stand in for digits and rows may contain stray symbols.

IMPORTANT INSTRUCTIONS:
- Extract every player you can identify. Never invent a player, a name or a rating that is not in the text.
- "position" is the short position code as shown (e.g. QB, HB, WR, DT, MIKE, CB).
- "overall" is the player's overall rating. Put it in "attributes" under "OVR" as well.
- "jersey" is the jersey number. Omit it when the screen shows none.
- Put a generational suffix (Jr., Sr., II, III, IV) in "suffix", not in "last_name".
- "attributes" maps upper-case attribute codes (SPD, ACC, AGI, ...) to integer ratings.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object. It must validate against this JSON Schema:
` + string(schema) + `

OCR TEXT:
` + text
}
