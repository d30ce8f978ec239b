// Package domain defines the persistence models for user profiles,
// generated soulmates, saved people and chat history. These types are
// mapped with GORM; structured sub-documents are stored as JSON columns
// through gorm.io/datatypes so they read back exactly as written on both
// SQLite and Postgres.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Subscription states persisted on UserStats.
const (
	SubscriptionNone     = "none"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
)

// BasicInfo is the onboarding questionnaire as the user answered it.
type BasicInfo struct {
	FirstName     string `json:"first_name"`
	BirthDate     string `json:"birth_date"`
	BirthTime     string `json:"birth_time,omitempty"`
	BirthLocation string `json:"birth_location,omitempty"`
}

// AstrologicalInfo is a persisted Big Three.
type AstrologicalInfo struct {
	SunSign    string `json:"sun_sign"`
	MoonSign   string `json:"moon_sign"`
	RisingSign string `json:"rising_sign"`
}

// UserStats is the per-user row holding the birth profile, its derived
// signs and the subscription state mirrored from Stripe.
//
// Fields:
//   - UserID: auth subject, primary key.
//   - BasicInfo / AstrologicalInfo: JSON documents written by onboarding.
//   - SubscriptionStatus: one of the Subscription* constants.
//   - Stripe*: identifiers written by checkout and webhooks.
//   - TrialEndDate / SubscriptionEndDate: nil when unknown or cleared.
type UserStats struct {
	UserID               string                               `json:"user_id"                gorm:"type:varchar(64);primaryKey"`
	BasicInfo            datatypes.JSONType[BasicInfo]        `json:"basic_info"`
	AstrologicalInfo     datatypes.JSONType[AstrologicalInfo] `json:"astrological_info"`
	SubscriptionStatus   string                               `json:"subscription_status"    gorm:"type:varchar(32);not null;default:'none'"`
	StripeCustomerID     *string                              `json:"stripe_customer_id,omitempty"     gorm:"type:varchar(255)"`
	StripeSubscriptionID *string                              `json:"stripe_subscription_id,omitempty" gorm:"type:varchar(255);index"`
	TrialEndDate         *time.Time                           `json:"trial_end_date,omitempty"`
	SubscriptionEndDate  *time.Time                           `json:"subscription_end_date,omitempty"`
	CreatedAt            time.Time                            `json:"created_at"`
	UpdatedAt            time.Time                            `json:"updated_at"`
}

// TableName returns the database table name for UserStats.
func (UserStats) TableName() string { return "user_stats" }

// SoulmatePersonalInfo describes the generated partner.
type SoulmatePersonalInfo struct {
	Name      string   `json:"name"`
	Gender    string   `json:"gender"`
	Ethnicity []string `json:"ethnicity"`
}

// SoulmateAstroInfo holds the three independent draws and the canonical
// soulmate sign (the sun draw).
type SoulmateAstroInfo struct {
	SunSign      string `json:"sun_sign"`
	MoonSign     string `json:"moon_sign"`
	RisingSign   string `json:"rising_sign"`
	SoulmateSign string `json:"soulmate_sign"`
}

// CompatibilityInfo is the scored narrative attached to a soulmate.
type CompatibilityInfo struct {
	CompatibilityScore int    `json:"compatibility_score"`
	Analysis           string `json:"analysis"`
	ShortDescription   string `json:"short_description"`
}

// Soulmate is a generated partner owned by a user. Rows are never updated
// in place; regenerating deletes the latest row and inserts a new one.
type Soulmate struct {
	ID                string                                   `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID            string                                   `json:"user_id"   gorm:"type:varchar(64);not null;index:idx_user_soulmates,priority:1"`
	PersonalInfo      datatypes.JSONType[SoulmatePersonalInfo] `json:"personal_info"`
	AstrologicalInfo  datatypes.JSONType[SoulmateAstroInfo]    `json:"astrological_info"`
	CompatibilityInfo datatypes.JSONType[CompatibilityInfo]    `json:"compatibility_info"`
	ImageURL          string                                   `json:"image_url" gorm:"type:text;not null"`
	CreatedAt         time.Time                                `json:"created_at" gorm:"index:idx_user_soulmates,priority:2"`
}

// TableName returns the database table name for Soulmate.
func (Soulmate) TableName() string { return "soulmates" }

// PersonInfo is a friend, partner or relative the user saved.
type PersonInfo struct {
	Name             string `json:"name"`
	BirthDate        string `json:"birth_date,omitempty"`
	BirthTime        string `json:"birth_time,omitempty"`
	BirthLocation    string `json:"birth_location,omitempty"`
	RelationshipType string `json:"relationship_type,omitempty"`
}

// Person is a saved contact with an optional computed Big Three.
type Person struct {
	ID               string                               `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID           string                               `json:"user_id" gorm:"type:varchar(64);not null;index:idx_user_people,priority:1"`
	PersonalInfo     datatypes.JSONType[PersonInfo]       `json:"personal_info"`
	AstrologicalInfo datatypes.JSONType[AstrologicalInfo] `json:"astrological_info"`
	CreatedAt        time.Time                            `json:"created_at" gorm:"index:idx_user_people,priority:2"`
	UpdatedAt        time.Time                            `json:"updated_at"`
}

// TableName returns the database table name for Person.
func (Person) TableName() string { return "people" }

// ChatMessage is one turn of a themed conversation with the guide.
type ChatMessage struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"   gorm:"type:varchar(64);not null;index:idx_user_chat_msgs,priority:1"`
	ChatType  string    `json:"chat_type" gorm:"type:varchar(32);not null;index:idx_user_chat_msgs,priority:2"`
	Role      string    `json:"role"      gorm:"type:varchar(16);not null;check:role IN ('user','assistant')"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_user_chat_msgs,priority:3"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }
