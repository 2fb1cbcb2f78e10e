package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timecraft/internal/model"
)

func TestBuildClientRules_DemoClient(t *testing.T) {
	client := &model.Client{ID: "C001", Name: "Acme Manufacturing"}

	rules := BuildClientRules(client)

	assert.Equal(t, "Acme Manufacturing", rules["client_name"])
	assert.Equal(t, "formal litigation billing style", rules["style"])
	assert.NotContains(t, rules, "billing_guidelines")
}

func TestBuildClientRules_LayersAdminGuidance(t *testing.T) {
	client := &model.Client{
		ID:                "C001",
		Name:              "Acme Manufacturing",
		BillingGuidelines: "No block billing.",
		AcceptedExamples:  "=== SUCCESS EXAMPLE ===",
		GuidelinesPDFText: "extracted pdf text",
	}

	rules := BuildClientRules(client)

	assert.Equal(t, "No block billing.", rules["billing_guidelines"])
	assert.Equal(t, "=== SUCCESS EXAMPLE ===", rules["accepted_examples"])
	assert.Equal(t, "extracted pdf text", rules["guidelines_pdf_text"])
	assert.NotContains(t, rules, "denied_examples")
}

func TestBuildClientRules_UnknownClientUsesName(t *testing.T) {
	client := &model.Client{ID: "X999", Name: "Wayne Enterprises"}

	rules := BuildClientRules(client)

	assert.Equal(t, "Wayne Enterprises", rules["client_name"])
	assert.NotContains(t, rules, "style")
}
