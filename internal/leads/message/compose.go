// Package message renders outreach texts for leads. Composition is total:
// every row yields a message, with placeholders standing in for missing
// fields.
package message

import (
	"fmt"
	"strings"

	"leadboard_backend/internal/leads/domain"
)

// Template selects the outreach wording.
type Template string

const (
	TemplateShort    Template = "short"
	TemplateDetailed Template = "detailed"
)

// ParseTemplate maps a request string onto a Template.
func ParseTemplate(value string) (Template, bool) {
	switch Template(value) {
	case TemplateShort, TemplateDetailed:
		return Template(value), true
	}
	return "", false
}

// Compose renders an outreach message for the lead in the given owner's
// voice. A lead without any name is addressed as Friend.
func Compose(lead domain.Lead, tpl Template, owner string) string {
	name := greetingName(lead)
	if tpl == TemplateDetailed {
		return fmt.Sprintf(
			"Hi %s,\n\nThis is %s from %s. Thank you for reaching out through %s. "+
				"I saw your message: '%s'. I'd love to share more on our ICF certification program and how it helps career progression. "+
				"Could I schedule a 15-minute call? Reply 'Yes' with a time that suits you.\n\nCall/WhatsApp: %s\nEmail: %s",
			name, owner, lead.Company, lead.Source, lead.Description, lead.Phone, lead.Email,
		)
	}
	return fmt.Sprintf(
		"Hi %s, this is %s from %s. Thanks for your interest via %s! Can we share details on ICF certification?",
		name, owner, lead.Company, lead.Source,
	)
}

// ComposeAll renders one message per lead and joins them with a divider,
// ready to download as a single file.
func ComposeAll(leads []domain.Lead, tpl Template, owner string) string {
	parts := make([]string, 0, len(leads))
	for _, lead := range leads {
		parts = append(parts, Compose(lead, tpl, owner))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// Shareable renders the handoff block pasted into team chats when a lead
// is assigned.
func Shareable(lead domain.Lead) string {
	return fmt.Sprintf(
		"⚡️ *NEW LEAD ASSIGNED!* ⚡️\n\n"+
			"\U0001f464 *Name:* %s\n"+
			"\U0001f3e2 *Company:* %s\n"+
			"\U0001f4de *Phone:* %s\n"+
			"\U0001f4e7 *Email:* %s\n"+
			"\U0001f310 *Source:* %s\n\n"+
			"✅ *Action: Contact Immediately!* (Owner: %s)",
		lead.FullName, lead.Company, lead.Phone, lead.Email, lead.Source, lead.Owner,
	)
}

// Filename names the artifact for one lead's message.
func Filename(lead domain.Lead) string {
	return fmt.Sprintf("message_%s.txt", lead.ID)
}

// BulkFilename names the artifact for an owner's combined messages.
func BulkFilename(owner string) string {
	return fmt.Sprintf("messages_%s.txt", strings.ReplaceAll(owner, " ", "_"))
}

func greetingName(lead domain.Lead) string {
	if lead.FullName != "" {
		return lead.FullName
	}
	if lead.FirstName != "" {
		return lead.FirstName
	}
	return "Friend"
}
