package models

import (
	"fmt"
	"time"
)

// DateLayout is the fixed-width day format used for all record dates.
// Lexicographic comparison of these strings matches chronological order.
const DateLayout = "2006-01-02"

// DailyRecord is one day's balance snapshot for a jar
type DailyRecord struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
	Goal   *int64 `json:"goal,omitempty"`
}

// NewDailyRecord builds a record, rejecting malformed dates so that string
// ordering stays reliable downstream
func NewDailyRecord(date string, amount int64, goal *int64) (DailyRecord, error) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return DailyRecord{}, fmt.Errorf("invalid record date %q: %w", date, err)
	}
	if parsed.Format(DateLayout) != date {
		return DailyRecord{}, fmt.Errorf("record date %q is not in %s form", date, DateLayout)
	}
	return DailyRecord{Date: date, Amount: amount, Goal: goal}, nil
}

// JarSeries is the daily history of a single jar, sorted ascending by date
// and unique per date
type JarSeries struct {
	JarID   string        `json:"jarId"`
	Name    string        `json:"name"`
	Records []DailyRecord `json:"records"`
}
