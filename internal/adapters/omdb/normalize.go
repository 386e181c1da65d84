package omdb

import "strings"

// notAvailable is how OMDb spells an absent field.
const notAvailable = "N/A"

// normalizeField returns fallback for blank or "N/A" values.
func normalizeField(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, notAvailable) {
		return fallback
	}
	return value
}

// normalizeYear keeps the leading four-digit run ("2010–2012" -> "2010")
// and returns "" when there is none.
func normalizeYear(value string) string {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return ""
	}
	for i := 0; i < 4; i++ {
		if value[i] < '0' || value[i] > '9' {
			return ""
		}
	}
	if len(value) > 4 && value[4] >= '0' && value[4] <= '9' {
		return ""
	}
	return value[:4]
}
