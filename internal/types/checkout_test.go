//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		JobData: JobFormData{
			Title:        "Sales Rep",
			CompanyName:  "Acme",
			PosterEmail:  "a@b.com",
			City:         "Columbus",
			State:        "OH",
			JobType:      JobTypeFullTime,
			SalaryMin:    80000,
			SalaryMax:    120000,
			Requirements: []string{"5 years", "", "CRM"},
		},
	}
}

func TestCheckoutRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CheckoutRequest)
		wantErr bool
		field   string
	}{
		{name: "valid request", mutate: func(*CheckoutRequest) {}},
		{name: "missing title", mutate: func(r *CheckoutRequest) { r.JobData.Title = "" }, wantErr: true, field: "Title"},
		{name: "blank company", mutate: func(r *CheckoutRequest) { r.JobData.CompanyName = "   " }, wantErr: true, field: "CompanyName"},
		{name: "missing poster email", mutate: func(r *CheckoutRequest) { r.JobData.PosterEmail = "" }, wantErr: true, field: "PosterEmail"},
		{name: "unknown job type", mutate: func(r *CheckoutRequest) { r.JobData.JobType = "temp" }, wantErr: true, field: "JobType"},
		{name: "empty job type allowed", mutate: func(r *CheckoutRequest) { r.JobData.JobType = "" }},
		{name: "min above max is not rejected", mutate: func(r *CheckoutRequest) { r.JobData.SalaryMin = 200000 }},
		{name: "travel over 100", mutate: func(r *CheckoutRequest) { r.JobData.TravelPercentage = 150 }, wantErr: true, field: "TravelPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			req.Normalize()
			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestCheckoutRequest_JSONFieldNames(t *testing.T) {
	raw := `{"jobData":{"title":"Sales Rep","companyName":"Acme","posterEmail":"a@b.com","applyUrl":"https://acme.test/apply","jobType":"contract"},"pricing":{"isFeatured":true,"isNewsletterFeatured":false}}`

	var req CheckoutRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	assert.Equal(t, "Sales Rep", req.JobData.Title)
	assert.Equal(t, "Acme", req.JobData.CompanyName)
	assert.Equal(t, "https://acme.test/apply", req.JobData.ApplyURL)
	assert.Equal(t, JobTypeContract, req.JobData.JobType)
	assert.True(t, req.Pricing.IsFeatured)
	assert.False(t, req.Pricing.IsNewsletterFeatured)
}

func TestNonEmptyRequirements(t *testing.T) {
	data := JobFormData{Requirements: []string{"a", "", "  ", "b"}}
	assert.Equal(t, []string{"a", "b"}, data.NonEmptyRequirements())

	empty := JobFormData{}
	assert.NotNil(t, empty.NonEmptyRequirements())
	assert.Empty(t, empty.NonEmptyRequirements())
}

func TestParseJobType(t *testing.T) {
	jt, ok := ParseJobType("part-time")
	assert.True(t, ok)
	assert.Equal(t, JobTypePartTime, jt)

	_, ok = ParseJobType("Part-Time")
	assert.False(t, ok)
}
