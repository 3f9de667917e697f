package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRecorderFor(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validReportBody() map[string]interface{} {
	return map[string]interface{}{
		"title":              "Pothole on Main St",
		"description":        "Large pothole near the crossing",
		"date":               "2026-08-30",
		"time":               "14:30",
		"location":           "Main St, Ward 4",
		"submissionLocation": "Main St, Ward 4",
		"issueType":          "road",
		"urgencyLevel":       "high",
		"expectedImpact":     "Traffic hazard for two-wheelers",
	}
}

func TestCreateIssue_MissingAllFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/report", CreateIssue)

	w := postJSON(r, "/report", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])

	message := resp["message"].(string)
	for _, field := range []string{
		"title", "description", "date", "time", "location",
		"submissionLocation", "issueType", "urgencyLevel", "expectedImpact",
	} {
		assert.Contains(t, message, field)
	}
}

func TestCreateIssue_EnumeratesOnlyMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/report", CreateIssue)

	body := validReportBody()
	delete(body, "urgencyLevel")
	body["expectedImpact"] = "   "

	w := postJSON(r, "/report", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	message := resp["message"].(string)
	assert.True(t, strings.HasPrefix(message, "Missing required fields:"))
	assert.Contains(t, message, "urgencyLevel")
	assert.Contains(t, message, "expectedImpact")
	assert.NotContains(t, message, "title")
}

func TestCreateIssue_InvalidIssueType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/report", CreateIssue)

	body := validReportBody()
	body["issueType"] = "sanitation"

	w := postJSON(r, "/report", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid issue type")
}

func TestCreateIssue_InvalidUrgencyLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/report", CreateIssue)

	body := validReportBody()
	body["urgencyLevel"] = "urgent"

	w := postJSON(r, "/report", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid urgency level")
}

func TestCreateIssue_InvalidDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/report", CreateIssue)

	body := validReportBody()
	body["date"] = "30/08/2026"

	w := postJSON(r, "/report", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date format")
}

func TestParseIssueDate(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"2026-08-30", true},
		{"2026-08-30T14:30:00Z", true},
		{"30-08-2026", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := parseIssueDate(tt.raw)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestVerifyIssue_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/issues/:issueId/verify", VerifyIssue)

	w := postJSON(r, "/issues/"+primitive.NewObjectID().Hex()+"/verify", map[string]interface{}{"action": "accept"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyIssue_NonNGOCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// A citizen who signed up with an NGO's email still carries a "user"
	// role tag; the handler must refuse before the ngos lookup.
	r.Use(func(c *gin.Context) {
		c.Set("email", "ngo@example.com")
		c.Set("user_type", "user")
		c.Next()
	})
	r.POST("/issues/:issueId/verify", VerifyIssue)

	w := postJSON(r, "/issues/"+primitive.NewObjectID().Hex()+"/verify", map[string]interface{}{"action": "accept"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "NGO credentials required")
}

func TestVerifyIssue_UnknownIssueID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("email", "ngo@example.com")
		c.Set("user_type", "ngo")
		c.Next()
	})
	r.POST("/issues/:issueId/verify", VerifyIssue)

	w := postJSON(r, "/issues/not-a-hex-id/verify", map[string]interface{}{"action": "accept"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Issue not found")
}

func TestVerifyIssue_InvalidAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("email", "ngo@example.com")
		c.Set("user_type", "ngo")
		c.Next()
	})
	r.POST("/issues/:issueId/verify", VerifyIssue)

	w := postJSON(r, "/issues/"+primitive.NewObjectID().Hex()+"/verify", map[string]interface{}{"action": "approve"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "accept")
}

func TestNormalizeIssueDoc(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.M
		want bson.M
	}{
		{
			name: "plain string locations pass through",
			doc: bson.M{
				"location":           "Main St",
				"submissionLocation": "Ward 4",
				"verificationStatus": bson.M{"isVerified": true},
			},
			want: bson.M{
				"location":           "Main St",
				"submissionLocation": "Ward 4",
				"verificationStatus": bson.M{"isVerified": true},
			},
		},
		{
			name: "object location projects to address text",
			doc: bson.M{
				"location":           bson.M{"address": "Main St", "lat": 12.9},
				"submissionLocation": "Ward 4",
				"verificationStatus": bson.M{"isVerified": false},
			},
			want: bson.M{
				"location":           "Main St",
				"submissionLocation": "Ward 4",
				"verificationStatus": bson.M{"isVerified": false},
			},
		},
		{
			name: "object without address falls back",
			doc: bson.M{
				"location":           bson.M{"lat": 12.9, "lng": 77.6},
				"verificationStatus": bson.M{"isVerified": false},
			},
			want: bson.M{
				"location":           "Unknown Location",
				"verificationStatus": bson.M{"isVerified": false},
			},
		},
		{
			name: "ordered document location projects to address text",
			doc: bson.M{
				"location":           bson.D{{Key: "address", Value: "Main St"}},
				"verificationStatus": bson.M{"isVerified": false},
			},
			want: bson.M{
				"location":           "Main St",
				"verificationStatus": bson.M{"isVerified": false},
			},
		},
		{
			name: "absent verificationStatus is synthesized",
			doc: bson.M{
				"location":           "Main St",
				"submissionLocation": "Ward 4",
			},
			want: bson.M{
				"location":           "Main St",
				"submissionLocation": "Ward 4",
				"verificationStatus": bson.M{"isVerified": false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeIssueDoc(tt.doc))
		})
	}
}
