package models

import "strings"

// Difficulty is one of the five fixed difficulty tiers.
type Difficulty string

const (
	Easy       Difficulty = "easy"
	Normal     Difficulty = "normal"
	Hard       Difficulty = "hard"
	Expert     Difficulty = "expert"
	ExpertPlus Difficulty = "expertPlus"
)

// Tiers lists the five tiers in ascending play difficulty.
var Tiers = []Difficulty{Easy, Normal, Hard, Expert, ExpertPlus}

// ParseDifficulty matches a raw chat token against the five tier names,
// case-insensitively. Returns false for anything else; no synonym matching.
func ParseDifficulty(raw string) (Difficulty, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	for _, tier := range Tiers {
		if token == strings.ToLower(string(tier)) {
			return tier, true
		}
	}
	return "", false
}

func (d Difficulty) String() string {
	return string(d)
}
