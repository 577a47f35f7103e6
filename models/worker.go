package models

import "time"

// Worker represents a daily-gig worker profile.
type Worker struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Skills      []string `bson:"skills,omitempty" json:"skills,omitempty"`

	// Cached reliability score. Source of truth is always a fresh computation
	// over bookings and reviews; these fields are a denormalized convenience
	// for listings and badges.
	ReliabilityScore   float64               `bson:"reliability_score,omitempty" json:"reliability_score,omitempty"`
	ScoreBreakdown     *ReliabilityBreakdown `bson:"score_breakdown,omitempty" json:"score_breakdown,omitempty"`
	ScoreComputedAt    *time.Time            `bson:"score_computed_at,omitempty" json:"score_computed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Business represents an employer account that posts jobs.
type Business struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	City      string    `bson:"city,omitempty" json:"city,omitempty"`
	Industry  string    `bson:"industry,omitempty" json:"industry,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
