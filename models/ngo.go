package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// NGOStrength enum
type NGOStrength string

const (
	StrengthSmall     NGOStrength = "small"
	StrengthMedium    NGOStrength = "medium"
	StrengthLarge     NGOStrength = "large"
	StrengthVeryLarge NGOStrength = "very_large"
)

// MaxResponsibleMembers caps the member roster an NGO may register with.
const MaxResponsibleMembers = 5

// President is the NGO's registered head.
type President struct {
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact" json:"contact"`
	Email   string `bson:"email" json:"email"`
}

// ResponsibleMember is an NGO contact person listed at registration.
type ResponsibleMember struct {
	Name     string `bson:"name" json:"name"`
	Position string `bson:"position" json:"position"`
	Contact  string `bson:"contact" json:"contact"`
	Email    string `bson:"email" json:"email"`
}

// NGO is an organization that reviews reported issues. New registrations
// start unapproved and cannot log in until an admin approves them.
type NGO struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email              string              `bson:"email" json:"email"`
	Password           string              `bson:"password,omitempty" json:"-"`
	NgoName            string              `bson:"ngoName" json:"ngoName"`
	RegistrationNumber string              `bson:"registrationNumber" json:"registrationNumber"`
	President          President           `bson:"president" json:"president"`
	ResponsibleMembers []ResponsibleMember `bson:"responsibleMembers" json:"responsibleMembers"`
	TotalMembers       int                 `bson:"totalMembers" json:"totalMembers"`
	Strength           NGOStrength         `bson:"strength" json:"strength"`
	PastWorks          string              `bson:"pastWorks" json:"pastWorks"`
	Location           string              `bson:"location" json:"location"`
	IsApproved         bool                `bson:"isApproved" json:"isApproved"`
	RegisteredAt       time.Time           `bson:"registeredAt" json:"registeredAt"`
}

func (n *NGO) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(n.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	n.Password = string(hashed)
	return nil
}

func (n *NGO) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(n.Password), []byte(candidate))
	return err == nil
}

// ValidNGOStrength reports whether s belongs to the closed strength set.
func ValidNGOStrength(s string) bool {
	switch NGOStrength(s) {
	case StrengthSmall, StrengthMedium, StrengthLarge, StrengthVeryLarge:
		return true
	}
	return false
}

// EnsureNGOIndexes creates unique indexes for email and registrationNumber
func EnsureNGOIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registrationNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexModels)
	return err
}
