package export

import (
	"fmt"
	"time"
)

// CurrentSchoolYearStartYear: «год» учебного года (например, для 2025-03-01 → 2024).
func CurrentSchoolYearStartYear(t time.Time) int {
	if t.Month() < time.September {
		return t.Year() - 1
	}
	return t.Year()
}

// SchoolYearLabel форматирует подпись учебного года: "2024–2025".
func SchoolYearLabel(startYear int) string {
	return fmt.Sprintf("%d–%d", startYear, startYear+1)
}
