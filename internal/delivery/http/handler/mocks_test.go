package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
)

var operatorID = uuid.MustParse("0d6f5d0e-5a5e-4c3a-8f3e-2b1f8d9a7c11")

// newRequest builds a request as the router and auth middleware would hand
// it to a handler.
func newRequest(method, target, body string, vars map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, operatorID)
	ctx = context.WithValue(ctx, middleware.TokenIDKey, "access-id")
	req = req.WithContext(ctx)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.TokenResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	return m.Called(ctx, userID, accessTokenID, refreshToken).Error(0)
}

func (m *mockAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.TokenResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

type mockChildUsecase struct {
	mock.Mock
}

func (m *mockChildUsecase) Register(ctx context.Context, userID uuid.UUID, req *dto.RegisterChildRequest) (*dto.ChildResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*dto.ChildResponse)
	return resp, args.Error(1)
}

func (m *mockChildUsecase) List(ctx context.Context, req *dto.ChildFilterRequest) (*dto.ChildListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.ChildListResponse)
	return resp, args.Error(1)
}

func (m *mockChildUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ChildResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.ChildResponse)
	return resp, args.Error(1)
}

func (m *mockChildUsecase) BirthTrends(ctx context.Context) (*dto.BirthTrendResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.BirthTrendResponse)
	return resp, args.Error(1)
}

type mockVaccinationUsecase struct {
	mock.Mock
}

func (m *mockVaccinationUsecase) GetStatus(ctx context.Context, childID uuid.UUID) (*dto.VaccinationStatusResponse, error) {
	args := m.Called(ctx, childID)
	resp, _ := args.Get(0).(*dto.VaccinationStatusResponse)
	return resp, args.Error(1)
}

func (m *mockVaccinationUsecase) UpdateStatus(ctx context.Context, userID, childID uuid.UUID, req *dto.UpdateVaccinationRequest) (*dto.VaccinationStatusResponse, error) {
	args := m.Called(ctx, userID, childID, req)
	resp, _ := args.Get(0).(*dto.VaccinationStatusResponse)
	return resp, args.Error(1)
}

func (m *mockVaccinationUsecase) GetSchedule(ctx context.Context) *dto.ScheduleResponse {
	resp, _ := m.Called(ctx).Get(0).(*dto.ScheduleResponse)
	return resp
}

type mockReportUsecase struct {
	mock.Mock
}

func (m *mockReportUsecase) ChildrenReport(ctx context.Context, format string, req *dto.ChildFilterRequest) (*dto.ReportFile, error) {
	args := m.Called(ctx, format, req)
	resp, _ := args.Get(0).(*dto.ReportFile)
	return resp, args.Error(1)
}

func (m *mockReportUsecase) VaccinationCard(ctx context.Context, childID uuid.UUID, format string) (*dto.ReportFile, error) {
	args := m.Called(ctx, childID, format)
	resp, _ := args.Get(0).(*dto.ReportFile)
	return resp, args.Error(1)
}

type mockNotificationUsecase struct {
	mock.Mock
}

func (m *mockNotificationUsecase) SendReminder(ctx context.Context, userID, childID uuid.UUID) (*dto.NotificationResponse, error) {
	args := m.Called(ctx, userID, childID)
	resp, _ := args.Get(0).(*dto.NotificationResponse)
	return resp, args.Error(1)
}

func (m *mockNotificationUsecase) SendMessage(ctx context.Context, userID, childID uuid.UUID, req *dto.SendMessageRequest) (*dto.NotificationResponse, error) {
	args := m.Called(ctx, userID, childID, req)
	resp, _ := args.Get(0).(*dto.NotificationResponse)
	return resp, args.Error(1)
}

type mockReactionUsecase struct {
	mock.Mock
}

func (m *mockReactionUsecase) Log(ctx context.Context, userID, childID uuid.UUID, req *dto.LogReactionRequest) (*dto.ReactionResponse, error) {
	args := m.Called(ctx, userID, childID, req)
	resp, _ := args.Get(0).(*dto.ReactionResponse)
	return resp, args.Error(1)
}

func (m *mockReactionUsecase) List(ctx context.Context, childID uuid.UUID) (*dto.ReactionListResponse, error) {
	args := m.Called(ctx, childID)
	resp, _ := args.Get(0).(*dto.ReactionListResponse)
	return resp, args.Error(1)
}

type mockDashboardUsecase struct {
	mock.Mock
}

func (m *mockDashboardUsecase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.DashboardResponse)
	return resp, args.Error(1)
}

type mockAuditLogUsecase struct {
	mock.Mock
}

func (m *mockAuditLogUsecase) GetAllAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*dto.AuditLogListResponse)
	return resp, args.Error(1)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.AuditLogResponse)
	return resp, args.Error(1)
}
