package models

import "time"

// User is keyed by a caller-supplied opaque id. Records are created
// lazily with a zero balance the first time an id is referenced.
type User struct {
	UserID    string    `json:"userId" gorm:"primaryKey"`
	Points    int       `json:"points" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Referral is keyed by its generated code, which is immutable once
// written. Click and conversion counters are informational here.
type Referral struct {
	ReferralCode string    `json:"referralCode" gorm:"primaryKey"`
	MemberID     string    `json:"memberId" gorm:"index;not null"`
	ProjectID    string    `json:"projectId" gorm:"index;not null"`
	ClickCount   int       `json:"clickCount" gorm:"not null;default:0"`
	Conversions  int       `json:"conversions" gorm:"not null;default:0"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt"`
}

type WebhookLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Headers   string    `json:"headers"`
	Payload   string    `json:"payload"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}
