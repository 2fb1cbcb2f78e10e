package service

import (
	"timecraft/internal/llm"
	"timecraft/internal/model"
)

// demoRulesByClientID holds the built-in rule sets for the demo clients.
// Admin-configured guidelines and examples are layered on top.
var demoRulesByClientID = map[string]llm.Rules{
	"C001": {
		"client_name":     "Acme Manufacturing",
		"style":           "formal litigation billing style",
		"forbidden_terms": []string{"email review", "miscellaneous"},
		"required_elements": []string{
			"Include subject of work",
			"Mention that correspondence was reviewed and analyzed",
		},
		"guidance": "Use phrases like 'reviewed and analyzed client correspondence regarding <subject>'.",
	},
	"C002": {
		"client_name":     "Globex Corporation",
		"style":           "compliance-heavy, jurisdiction-aware",
		"forbidden_terms": []string{"internal admin", "general review"},
		"required_elements": []string{
			"Mention applicable jurisdiction if known",
			"Indicate whether task supports litigation hold or case strategy",
		},
		"guidance": "Emphasize litigation hold, discovery planning, and jurisdictional context.",
	},
	"C003": {
		"client_name":     "Initech LLC",
		"style":           "plain-language, business-friendly",
		"forbidden_terms": []string{},
		"required_elements": []string{
			"Describe work in plain English suitable for a non-lawyer business stakeholder",
		},
		"guidance": "Favor simple, direct descriptions over legal jargon.",
	},
}

// BuildClientRules merges the built-in rule set for a client with every
// piece of admin-configured guidance: pasted guidelines, curated example
// blocks, and text extracted from uploaded PDFs.
func BuildClientRules(client *model.Client) llm.Rules {
	rules := llm.Rules{}
	for k, v := range demoRulesByClientID[client.ID] {
		rules[k] = v
	}

	if client.BillingGuidelines != "" {
		rules["billing_guidelines"] = client.BillingGuidelines
	}
	if client.AcceptedExamples != "" {
		rules["accepted_examples"] = client.AcceptedExamples
	}
	if client.DeniedExamples != "" {
		rules["denied_examples"] = client.DeniedExamples
	}
	if client.GuidelinesPDFText != "" {
		rules["guidelines_pdf_text"] = client.GuidelinesPDFText
	}
	if client.SuccessfulExamplesPDFText != "" {
		rules["successful_examples_pdf_text"] = client.SuccessfulExamplesPDFText
	}
	if client.FailedExamplesPDFText != "" {
		rules["failed_examples_pdf_text"] = client.FailedExamplesPDFText
	}

	if _, ok := rules["client_name"]; !ok {
		rules["client_name"] = client.Name
	}
	return rules
}
