// Package api defines the Konta RPC messages, procedure names, clients and
// handler constructors. Messages are plain structs carried by a JSON codec
// over the Connect protocol. Money travels as decimal strings.
package api

import "time"

// Member is a household member and their balance.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mail      string    `json:"mail,omitempty"`
	Debt      string    `json:"debt"`
	CreatedAt time.Time `json:"created_at"`
}

// Bill is a shared expense.
type Bill struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Event is one event log entry.
type Event struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	EntityID    string    `json:"entity_id,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is the authenticated account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	User *User `json:"user"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members   []*Member `json:"members"`
	TotalDebt string    `json:"total_debt"`
}

type AddMemberRequest struct {
	Name string `json:"name"`
	Mail string `json:"mail,omitempty"`
	// InitialDebt is optional; empty means zero.
	InitialDebt string `json:"initial_debt,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type UpdateMemberRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mail string `json:"mail,omitempty"`
}

type UpdateMemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	ID string `json:"id"`
}

type RemoveMemberResponse struct{}

type PayRequest struct {
	MemberID string `json:"member_id"`
	Amount   string `json:"amount"`
}

type PayResponse struct {
	Member *Member `json:"member"`
}

type PayAllRequest struct {
	Amount string `json:"amount"`
}

type PayAllResponse struct {
	Members []*Member `json:"members"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

type AddBillRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type AddBillResponse struct {
	Bill *Bill `json:"bill"`
}

type UpdateBillRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	ID string `json:"id"`
}

type DeleteBillResponse struct{}

type ListEventsRequest struct {
	// Limit caps the number of entries; zero uses the server default.
	Limit int `json:"limit,omitempty"`
}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

type SummaryRequest struct {
	// Year and Month select the period; zero means the current one.
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

type SummaryResponse struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	MailtoURI  string   `json:"mailto_uri"`
}
