// Package domain holds DTOs for recommendation contracts
package domain

// Request names the anime to base recommendations on plus optional taste hints
type Request struct {
	Title    string   `json:"title" validate:"nonblank,max=200" example:"Ousama Ranking"`
	Genres   []string `json:"genres,omitempty" validate:"omitempty,max=20,dive,max=60" example:"Adventure,Fantasy"`
	Likes    []string `json:"likes,omitempty" validate:"omitempty,max=20,dive,max=60" example:"Slice of Life"`
	Dislikes []string `json:"dislikes,omitempty" validate:"omitempty,max=20,dive,max=60" example:"Horror"`
}

// Recommendation is one suggested title
type Recommendation struct {
	Title      string   `json:"title" example:"Made in Abyss"`
	Reasoning  string   `json:"reasoning"`
	Confidence float64  `json:"confidence" example:"0.82"`
	Genres     []string `json:"genres"`
}

// Result carries ranked recommendations
// Success false carries Error and an empty list
type Result struct {
	Success         bool             `json:"success" example:"true"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
}
