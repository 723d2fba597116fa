package notify

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
)

func testMembers() []*models.Member {
	return []*models.Member{
		{ID: "1", Name: "Alice", Mail: "alice@example.com", Debt: decimal.RequireFromString("33.3333333333333333")},
		{ID: "2", Name: "Bob", Debt: decimal.RequireFromString("-5")},
		{ID: "3", Name: "Carol Jones", Mail: "carol+home@example.com", Debt: decimal.RequireFromString("0.005")},
	}
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(testMembers(), time.March, 2026)

	if s.Subject != "Household balance for March 2026" {
		t.Errorf("Subject = %q", s.Subject)
	}

	t.Run("recipients skip members without mail", func(t *testing.T) {
		want := []string{"alice@example.com", "carol+home@example.com"}
		if len(s.Recipients) != len(want) {
			t.Fatalf("Recipients = %v, want %v", s.Recipients, want)
		}
		for i := range want {
			if s.Recipients[i] != want[i] {
				t.Errorf("Recipients[%d] = %q, want %q", i, s.Recipients[i], want[i])
			}
		}
	})

	t.Run("body lists rounded balances and total", func(t *testing.T) {
		for _, line := range []string{
			"Alice: 33.33\n",
			"Bob: -5.00\n",
			"Carol Jones: 0.01\n",
			"Total: 28.34\n",
		} {
			if !strings.Contains(s.Body, line) {
				t.Errorf("Body missing %q:\n%s", line, s.Body)
			}
		}
	})
}

func TestBuildSummary_NoMembers(t *testing.T) {
	s := BuildSummary(nil, time.January, 2027)
	if len(s.Recipients) != 0 {
		t.Errorf("Recipients = %v, want none", s.Recipients)
	}
	if !strings.Contains(s.Body, "Total: 0.00") {
		t.Errorf("Body = %q", s.Body)
	}
}

func TestMailtoURI(t *testing.T) {
	uri := BuildSummary(testMembers(), time.March, 2026).MailtoURI()

	if !strings.HasPrefix(uri, "mailto:alice@example.com,carol+home@example.com?") {
		t.Errorf("unexpected recipients in %q", uri)
	}
	if strings.Contains(uri, " ") || strings.Contains(uri, "\n") {
		t.Errorf("URI contains unescaped whitespace: %q", uri)
	}
	if !strings.Contains(uri, "subject=Household%20balance%20for%20March%202026") {
		t.Errorf("subject not encoded with %%20: %q", uri)
	}
	if !strings.Contains(uri, "%0D%0A") {
		t.Errorf("line breaks not encoded as CRLF: %q", uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		t.Fatalf("url.Parse failed: %v", err)
	}
	body := u.Query().Get("body")
	if !strings.Contains(body, "Alice: 33.33\r\n") {
		t.Errorf("decoded body = %q", body)
	}
}
