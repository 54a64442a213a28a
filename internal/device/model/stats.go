package model

// Traffic holds the up/down counters of one interface.
type Traffic struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

func (t Traffic) Total() int {
	return t.Up + t.Down
}

// Totals sums up and down counters across interfaces.
func Totals(interfaces map[string]Traffic) Traffic {
	var sum Traffic
	for _, t := range interfaces {
		sum.Up += t.Up
		sum.Down += t.Down
	}
	return sum
}
