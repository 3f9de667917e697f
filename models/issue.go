package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueType enum
type IssueType string

const (
	Road        IssueType = "road"
	Water       IssueType = "water"
	Electricity IssueType = "electricity"
	Waste       IssueType = "waste"
	Other       IssueType = "other"
)

// UrgencyLevel enum
type UrgencyLevel string

const (
	Low      UrgencyLevel = "low"
	Medium   UrgencyLevel = "medium"
	High     UrgencyLevel = "high"
	Critical UrgencyLevel = "critical"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "pending"
	Accepted   IssueStatus = "accepted"
	Rejected   IssueStatus = "rejected"
	InProgress IssueStatus = "in_progress"
	Resolved   IssueStatus = "resolved"
)

// DefaultIssueImage is stored when a reporter attaches no image.
const DefaultIssueImage = "default-issue-image.jpg"

// VerificationStatus records the outcome of an NGO review.
type VerificationStatus struct {
	IsVerified       bool                `bson:"isVerified" json:"isVerified"`
	VerifiedBy       *primitive.ObjectID `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt       *time.Time          `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	VerificationNote string              `bson:"verificationNote,omitempty" json:"verificationNote,omitempty"`
}

// AssignedNGO records which NGO accepted responsibility for an issue.
// It is only ever set on accepted issues.
type AssignedNGO struct {
	NgoID      primitive.ObjectID `bson:"ngoId" json:"ngoId"`
	NgoName    string             `bson:"ngoName" json:"ngoName"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
}

// IssueUpdate is one entry of the append-only progress log.
type IssueUpdate struct {
	Status    IssueStatus        `bson:"status" json:"status"`
	Message   string             `bson:"message" json:"message"`
	UpdatedBy primitive.ObjectID `bson:"updatedBy" json:"updatedBy"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	Date               time.Time          `bson:"date" json:"date"`
	Time               string             `bson:"time" json:"time"`
	Location           string             `bson:"location" json:"location"`
	SubmissionLocation string             `bson:"submissionLocation" json:"submissionLocation"`
	IssueType          IssueType          `bson:"issueType" json:"issueType"`
	UrgencyLevel       UrgencyLevel       `bson:"urgencyLevel" json:"urgencyLevel"`
	ExpectedImpact     string             `bson:"expectedImpact" json:"expectedImpact"`
	Image              string             `bson:"image" json:"image"`
	Status             IssueStatus        `bson:"status" json:"status"`
	VerificationStatus VerificationStatus `bson:"verificationStatus" json:"verificationStatus"`
	AssignedNGO        *AssignedNGO       `bson:"assignedNGO,omitempty" json:"assignedNGO,omitempty"`
	Updates            []IssueUpdate      `bson:"updates,omitempty" json:"updates,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidIssueType reports whether t belongs to the closed issue type set.
func ValidIssueType(t string) bool {
	switch IssueType(t) {
	case Road, Water, Electricity, Waste, Other:
		return true
	}
	return false
}

// ValidUrgencyLevel reports whether u belongs to the closed urgency set.
func ValidUrgencyLevel(u string) bool {
	switch UrgencyLevel(u) {
	case Low, Medium, High, Critical:
		return true
	}
	return false
}
