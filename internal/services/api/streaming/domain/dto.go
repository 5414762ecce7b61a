// Package domain holds DTOs for streaming link contracts
package domain

import "animefinder/internal/core/streaming"

// LinksInput selects providers for a title
type LinksInput struct {
	Title  string `json:"title" validate:"max=200" example:"Ousama Ranking"`
	Region string `json:"region,omitempty" validate:"omitempty,len=2,alpha" example:"US"`
	All    bool   `json:"all,omitempty" example:"false"`
}

// LinksResult lists provider search links
// TotalProviders is the catalog size regardless of filtering
type LinksResult struct {
	Success        bool             `json:"success" example:"true"`
	Links          []streaming.Link `json:"links"`
	TotalProviders int              `json:"totalProviders" example:"10"`
	Note           string           `json:"note"`
}
