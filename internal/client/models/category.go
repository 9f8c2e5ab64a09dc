package models

// Direction classifies a category as money coming in or going out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionOutcome Direction = "outcome"
)

// Category is immutable reference data from the client's perspective,
// refreshed wholesale from the server and never patched partially.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	IsIncome bool   `json:"isIncome"`
}

// Direction derives the income/outcome classification from the income flag.
func (c Category) Direction() Direction {
	if c.IsIncome {
		return DirectionIncome
	}
	return DirectionOutcome
}
