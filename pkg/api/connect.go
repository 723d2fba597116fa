package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService service.
	AuthServiceName = "konta.v1.AuthService"
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "konta.v1.LedgerService"
)

// Procedure paths. Connect routes unary calls on these.
const (
	AuthServiceLoginProcedure  = "/konta.v1.AuthService/Login"
	AuthServiceWhoAmIProcedure = "/konta.v1.AuthService/WhoAmI"

	LedgerServiceListMembersProcedure  = "/konta.v1.LedgerService/ListMembers"
	LedgerServiceAddMemberProcedure    = "/konta.v1.LedgerService/AddMember"
	LedgerServiceUpdateMemberProcedure = "/konta.v1.LedgerService/UpdateMember"
	LedgerServiceRemoveMemberProcedure = "/konta.v1.LedgerService/RemoveMember"
	LedgerServicePayProcedure          = "/konta.v1.LedgerService/Pay"
	LedgerServicePayAllProcedure       = "/konta.v1.LedgerService/PayAll"
	LedgerServiceListBillsProcedure    = "/konta.v1.LedgerService/ListBills"
	LedgerServiceAddBillProcedure      = "/konta.v1.LedgerService/AddBill"
	LedgerServiceUpdateBillProcedure   = "/konta.v1.LedgerService/UpdateBill"
	LedgerServiceDeleteBillProcedure   = "/konta.v1.LedgerService/DeleteBill"
	LedgerServiceListEventsProcedure   = "/konta.v1.LedgerService/ListEvents"
	LedgerServiceSummaryProcedure      = "/konta.v1.LedgerService/Summary"
)

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	WhoAmI(context.Context, *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error)
}

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	UpdateMember(context.Context, *connect.Request[UpdateMemberRequest]) (*connect.Response[UpdateMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	Pay(context.Context, *connect.Request[PayRequest]) (*connect.Response[PayResponse], error)
	PayAll(context.Context, *connect.Request[PayAllRequest]) (*connect.Response[PayAllResponse], error)
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	AddBill(context.Context, *connect.Request[AddBillRequest]) (*connect.Response[AddBillResponse], error)
	UpdateBill(context.Context, *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error)
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
	Summary(context.Context, *connect.Request[SummaryRequest]) (*connect.Response[SummaryResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceWhoAmIProcedure, connect.NewUnaryHandler(AuthServiceWhoAmIProcedure, svc.WhoAmI, opts...))
	return "/" + AuthServiceName + "/", mux
}

// NewLedgerServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceListMembersProcedure, connect.NewUnaryHandler(LedgerServiceListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(LedgerServiceAddMemberProcedure, connect.NewUnaryHandler(LedgerServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(LedgerServiceUpdateMemberProcedure, connect.NewUnaryHandler(LedgerServiceUpdateMemberProcedure, svc.UpdateMember, opts...))
	mux.Handle(LedgerServiceRemoveMemberProcedure, connect.NewUnaryHandler(LedgerServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(LedgerServicePayProcedure, connect.NewUnaryHandler(LedgerServicePayProcedure, svc.Pay, opts...))
	mux.Handle(LedgerServicePayAllProcedure, connect.NewUnaryHandler(LedgerServicePayAllProcedure, svc.PayAll, opts...))
	mux.Handle(LedgerServiceListBillsProcedure, connect.NewUnaryHandler(LedgerServiceListBillsProcedure, svc.ListBills, opts...))
	mux.Handle(LedgerServiceAddBillProcedure, connect.NewUnaryHandler(LedgerServiceAddBillProcedure, svc.AddBill, opts...))
	mux.Handle(LedgerServiceUpdateBillProcedure, connect.NewUnaryHandler(LedgerServiceUpdateBillProcedure, svc.UpdateBill, opts...))
	mux.Handle(LedgerServiceDeleteBillProcedure, connect.NewUnaryHandler(LedgerServiceDeleteBillProcedure, svc.DeleteBill, opts...))
	mux.Handle(LedgerServiceListEventsProcedure, connect.NewUnaryHandler(LedgerServiceListEventsProcedure, svc.ListEvents, opts...))
	mux.Handle(LedgerServiceSummaryProcedure, connect.NewUnaryHandler(LedgerServiceSummaryProcedure, svc.Summary, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// AuthServiceClient calls AuthService.
type AuthServiceClient struct {
	login  *connect.Client[LoginRequest, LoginResponse]
	whoAmI *connect.Client[WhoAmIRequest, WhoAmIResponse]
}

// NewAuthServiceClient creates a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &AuthServiceClient{
		login:  connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		whoAmI: connect.NewClient[WhoAmIRequest, WhoAmIResponse](httpClient, baseURL+AuthServiceWhoAmIProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) WhoAmI(ctx context.Context, req *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error) {
	return c.whoAmI.CallUnary(ctx, req)
}

// LedgerServiceClient calls LedgerService.
type LedgerServiceClient struct {
	listMembers  *connect.Client[ListMembersRequest, ListMembersResponse]
	addMember    *connect.Client[AddMemberRequest, AddMemberResponse]
	updateMember *connect.Client[UpdateMemberRequest, UpdateMemberResponse]
	removeMember *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	pay          *connect.Client[PayRequest, PayResponse]
	payAll       *connect.Client[PayAllRequest, PayAllResponse]
	listBills    *connect.Client[ListBillsRequest, ListBillsResponse]
	addBill      *connect.Client[AddBillRequest, AddBillResponse]
	updateBill   *connect.Client[UpdateBillRequest, UpdateBillResponse]
	deleteBill   *connect.Client[DeleteBillRequest, DeleteBillResponse]
	listEvents   *connect.Client[ListEventsRequest, ListEventsResponse]
	summary      *connect.Client[SummaryRequest, SummaryResponse]
}

// NewLedgerServiceClient creates a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &LedgerServiceClient{
		listMembers:  connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+LedgerServiceListMembersProcedure, opts...),
		addMember:    connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+LedgerServiceAddMemberProcedure, opts...),
		updateMember: connect.NewClient[UpdateMemberRequest, UpdateMemberResponse](httpClient, baseURL+LedgerServiceUpdateMemberProcedure, opts...),
		removeMember: connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+LedgerServiceRemoveMemberProcedure, opts...),
		pay:          connect.NewClient[PayRequest, PayResponse](httpClient, baseURL+LedgerServicePayProcedure, opts...),
		payAll:       connect.NewClient[PayAllRequest, PayAllResponse](httpClient, baseURL+LedgerServicePayAllProcedure, opts...),
		listBills:    connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+LedgerServiceListBillsProcedure, opts...),
		addBill:      connect.NewClient[AddBillRequest, AddBillResponse](httpClient, baseURL+LedgerServiceAddBillProcedure, opts...),
		updateBill:   connect.NewClient[UpdateBillRequest, UpdateBillResponse](httpClient, baseURL+LedgerServiceUpdateBillProcedure, opts...),
		deleteBill:   connect.NewClient[DeleteBillRequest, DeleteBillResponse](httpClient, baseURL+LedgerServiceDeleteBillProcedure, opts...),
		listEvents:   connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+LedgerServiceListEventsProcedure, opts...),
		summary:      connect.NewClient[SummaryRequest, SummaryResponse](httpClient, baseURL+LedgerServiceSummaryProcedure, opts...),
	}
}

func (c *LedgerServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateMember(ctx context.Context, req *connect.Request[UpdateMemberRequest]) (*connect.Response[UpdateMemberResponse], error) {
	return c.updateMember.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) Pay(ctx context.Context, req *connect.Request[PayRequest]) (*connect.Response[PayResponse], error) {
	return c.pay.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) PayAll(ctx context.Context, req *connect.Request[PayAllRequest]) (*connect.Response[PayAllResponse], error) {
	return c.payAll.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddBill(ctx context.Context, req *connect.Request[AddBillRequest]) (*connect.Response[AddBillResponse], error) {
	return c.addBill.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListEvents(ctx context.Context, req *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) Summary(ctx context.Context, req *connect.Request[SummaryRequest]) (*connect.Response[SummaryResponse], error) {
	return c.summary.CallUnary(ctx, req)
}
