// internal/models/results.go
package models

// Factors holds one value per relevance factor.
type Factors struct {
	D float64 `json:"D"`
	G float64 `json:"G"`
	S float64 `json:"S"`
	X float64 `json:"X"`
}

type RelevanceResult struct {
	Total         float64  `json:"total"`
	TotalDisplay  string   `json:"totalDisplay"`
	Breakdown     Factors  `json:"breakdown"`
	Contributions Factors  `json:"contributions"`
	Weights       Weights  `json:"weights"`
	Reasons       []string `json:"reasons"`
	Included      bool     `json:"included"`
	Distance      float64  `json:"distance"`
}

type ExpertiseResult struct {
	Education  float64 `json:"edu"`
	Experience float64 `json:"exp"`
	Resources  float64 `json:"res"`
	Total      float64 `json:"total"`
}
