package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"carelink-be/config"
	"carelink-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reportInput carries the flat field set of POST /report.
type reportInput struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Location           string `json:"location"`
	SubmissionLocation string `json:"submissionLocation"`
	IssueType          string `json:"issueType"`
	UrgencyLevel       string `json:"urgencyLevel"`
	ExpectedImpact     string `json:"expectedImpact"`
	Image              string `json:"image"`
}

// missingFields returns the names of required fields that are absent or
// empty, in the order the report form presents them.
func (in reportInput) missingFields() []string {
	required := []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"date", in.Date},
		{"time", in.Time},
		{"location", in.Location},
		{"submissionLocation", in.SubmissionLocation},
		{"issueType", in.IssueType},
		{"urgencyLevel", in.UrgencyLevel},
		{"expectedImpact", in.ExpectedImpact},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// parseIssueDate accepts the formats the report form sends.
func parseIssueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// CreateIssue handles POST /report: validate, persist in pending state, echo back
func CreateIssue(c *gin.Context) {
	var input reportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if missing := input.missingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: " + strings.Join(missing, ", "),
		})
		return
	}

	if !models.ValidIssueType(input.IssueType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue type"})
		return
	}

	if !models.ValidUrgencyLevel(input.UrgencyLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid urgency level"})
		return
	}

	date, err := parseIssueDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	image := input.Image
	if image == "" {
		image = models.DefaultIssueImage
	}

	now := time.Now()
	issue := models.Issue{
		ID:                 primitive.NewObjectID(),
		Title:              input.Title,
		Description:        input.Description,
		Date:               date,
		Time:               input.Time,
		Location:           input.Location,
		SubmissionLocation: input.SubmissionLocation,
		IssueType:          models.IssueType(input.IssueType),
		UrgencyLevel:       models.UrgencyLevel(input.UrgencyLevel),
		ExpectedImpact:     input.ExpectedImpact,
		Image:              image,
		Status:             models.Pending,
		VerificationStatus: models.VerificationStatus{IsVerified: false},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection("issues").InsertOne(ctx, issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Issue created successfully",
		"issue":   issue,
	})
}

// GetAllIssues handles GET /issues, newest first. Every caller gets the full
// list; "my issues" and "pending" views are client-side filters.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("issues").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Println("Error retrieving issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		log.Println("Error decoding issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode issues"})
		return
	}

	issues := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		issues = append(issues, normalizeIssueDoc(doc))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issues": issues})
}

// GetIssue retrieves a single issue by its ID
func GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("issueId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	err = config.GetCollection("issues").FindOne(ctx, bson.M{"_id": issueID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			log.Println("Error retrieving issue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issue": normalizeIssueDoc(doc)})
}

type verifyInput struct {
	Action string `json:"action"`
	Note   string `json:"note"`
}

// VerifyIssue handles POST /issues/:issueId/verify. The acting NGO accepts or
// rejects a pending issue; accepting also records the assignment. The status
// transition is a single conditional update so a second review of the same
// issue gets a conflict instead of silently overwriting the first.
func VerifyIssue(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	// Only NGO credentials may verify. Email uniqueness is per-collection,
	// so a citizen token with an NGO's email must not pass the lookup below.
	if userType, _ := c.Get("user_type"); userType != "ngo" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "NGO credentials required"})
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("issueId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		return
	}

	var input verifyInput
	if err := c.ShouldBindJSON(&input); err != nil || (input.Action != "accept" && input.Action != "reject") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Action must be either 'accept' or 'reject'"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var ngo models.NGO
	err = config.GetCollection("ngos").FindOne(ctx, bson.M{"email": email}).Decode(&ngo)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "NGO not found"})
		return
	}

	status := models.Rejected
	if input.Action == "accept" {
		status = models.Accepted
	}

	now := time.Now()
	set := bson.M{
		"status": status,
		"verificationStatus": models.VerificationStatus{
			IsVerified:       true,
			VerifiedBy:       &ngo.ID,
			VerifiedAt:       &now,
			VerificationNote: input.Note,
		},
		"updatedAt": now,
	}
	if input.Action == "accept" {
		set["assignedNGO"] = models.AssignedNGO{
			NgoID:      ngo.ID,
			NgoName:    ngo.NgoName,
			AssignedAt: now,
		}
	}

	issueCollection := config.GetCollection("issues")
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated bson.M
	err = issueCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": issueID, "status": models.Pending},
		bson.M{"$set": set},
		updateOptions,
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		// No pending issue matched: either the id is unknown or the
		// issue was already reviewed.
		count, countErr := issueCollection.CountDocuments(ctx, bson.M{"_id": issueID})
		if countErr != nil {
			log.Println("Error checking issue existence:", countErr)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Issue has already been reviewed"})
		return
	}
	if err != nil {
		log.Println("Error verifying issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Issue " + input.Action + "ed successfully",
		"issue":   normalizeIssueDoc(updated),
	})
}

// normalizeIssueDoc projects legacy object-shaped location fields to their
// address text and guarantees verificationStatus is present, so clients never
// have to null-check either.
func normalizeIssueDoc(doc bson.M) bson.M {
	for _, key := range []string{"location", "submissionLocation"} {
		switch v := doc[key].(type) {
		case string, nil:
			// already a plain address
		case bson.M:
			doc[key] = addressOrUnknown(v["address"])
		case bson.D:
			doc[key] = addressOrUnknown(lookupField(v, "address"))
		default:
			doc[key] = "Unknown Location"
		}
	}

	if _, ok := doc["verificationStatus"]; !ok {
		doc["verificationStatus"] = bson.M{"isVerified": false}
	}

	return doc
}

func addressOrUnknown(v interface{}) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return "Unknown Location"
}

func lookupField(d bson.D, key string) interface{} {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}
