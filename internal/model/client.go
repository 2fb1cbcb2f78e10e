package model

import "time"

// Client represents a billing client with its rewrite guidance material.
// Guidance comes from three places: pasted text fields, curated example
// blocks, and text extracted from uploaded PDFs.
type Client struct {
	ID        string    `json:"id" gorm:"size:50;primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Code      string    `json:"code,omitempty" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BillingGuidelines string `json:"billing_guidelines,omitempty" gorm:"type:text"`
	AcceptedExamples  string `json:"accepted_examples,omitempty" gorm:"type:text"`
	DeniedExamples    string `json:"denied_examples,omitempty" gorm:"type:text"`

	// Text extracted from uploaded PDFs
	GuidelinesPDFText         string `json:"-" gorm:"type:text"`
	SuccessfulExamplesPDFText string `json:"-" gorm:"type:text"`
	FailedExamplesPDFText     string `json:"-" gorm:"type:text"`

	// Relations
	TimeEntries []TimeEntry `json:"-" gorm:"foreignKey:ClientID"`
}

// Summary returns the public view of a client without guidance material.
func (c *Client) Summary() ClientSummary {
	return ClientSummary{ID: c.ID, Name: c.Name, Code: c.Code}
}

// ClientSummary is the non-admin projection of a client.
type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
