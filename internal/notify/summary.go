// Package notify formats the monthly household balance summary.
package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/money"
)

// Summary is a ready-to-send monthly message.
type Summary struct {
	Recipients []string
	Subject    string
	Body       string
}

// BuildSummary lists every member's balance and the household total for the
// given month. Members without a mail address are listed in the body but are
// not recipients.
func BuildSummary(members []*models.Member, month time.Month, year int) Summary {
	title := fmt.Sprintf("Household balance for %s %d", month, year)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	total := decimal.Zero
	var recipients []string
	for _, m := range members {
		fmt.Fprintf(&b, "%s: %s\n", m.Name, money.Format(m.Debt))
		total = total.Add(m.Debt)
		if m.HasMail() {
			recipients = append(recipients, m.Mail)
		}
	}
	if len(members) == 0 {
		b.WriteString("No members.\n")
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", money.Format(total))

	return Summary{
		Recipients: recipients,
		Subject:    title,
		Body:       b.String(),
	}
}

// MailtoURI renders s as a mailto: URI (RFC 6068).
func (s Summary) MailtoURI() string {
	to := make([]string, len(s.Recipients))
	for i, r := range s.Recipients {
		to[i] = url.PathEscape(r)
	}

	body := strings.ReplaceAll(s.Body, "\n", "\r\n")
	return "mailto:" + strings.Join(to, ",") +
		"?subject=" + queryEscape(s.Subject) +
		"&body=" + queryEscape(body)
}

// queryEscape percent-encodes spaces as %20; mail clients do not decode "+".
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
