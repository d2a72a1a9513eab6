package core

// CategoryTotal is an amount aggregated by category label.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthTotal is an amount aggregated by YYYY-MM date prefix.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total_spent"`
}
