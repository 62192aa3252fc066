package types

// Cost is the incurred cost of one or more model calls.
type Cost struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Dollars      float64 `json:"dollars"`
}

// Add returns the sum of two costs.
func (c Cost) Add(other Cost) Cost {
	return Cost{
		InputTokens:  c.InputTokens + other.InputTokens,
		OutputTokens: c.OutputTokens + other.OutputTokens,
		Dollars:      c.Dollars + other.Dollars,
	}
}

// IsZero reports whether no cost has been incurred.
func (c Cost) IsZero() bool {
	return c.InputTokens == 0 && c.OutputTokens == 0 && c.Dollars == 0
}
