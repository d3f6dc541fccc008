package models

// JarReport joins a freshly fetched jar balance with its day-over-day change
type JarReport struct {
	JarID       string `json:"jarId"`
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
	Goal        *int64 `json:"goal,omitempty"`
	Delta       int64  `json:"delta"`
	HasPrevious bool   `json:"hasPrevious"`
}
