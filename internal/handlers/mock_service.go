package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vidtube/internal/config"
	"vidtube/internal/models"
	"vidtube/internal/service"
)

// ---- Service Mocks ----
//
// Hand-rolled mocks shared by the handler tests; kept out of _test.go so
// every test file in the package can use them.

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	loginUser    *models.User
	loginPair    models.TokenPair
	loginErr     error
	logoutErr    error
	changeErr    error

	lastRegister service.RegisterParams
	lastLogin    [3]string
	logoutCalls  []int64
}

func (m *mockAuth) Register(_ context.Context, p service.RegisterParams) (*models.User, error) {
	m.lastRegister = p
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, email, password string) (*models.User, models.TokenPair, error) {
	m.lastLogin = [3]string{username, email, password}
	return m.loginUser, m.loginPair, m.loginErr
}

func (m *mockAuth) Logout(_ context.Context, userID int64) error {
	m.logoutCalls = append(m.logoutCalls, userID)
	return m.logoutErr
}

func (m *mockAuth) ChangePassword(_ context.Context, _ int64, _, _ string) error {
	return m.changeErr
}

type mockTokens struct {
	pair       models.TokenPair
	rotateErr  error
	parseID    int64
	parseErr   error
	lastRotate string
	lastParse  string
}

func (m *mockTokens) Issue(_ context.Context, _ int64) (models.TokenPair, error) {
	return m.pair, nil
}

func (m *mockTokens) Rotate(_ context.Context, token string) (models.TokenPair, error) {
	m.lastRotate = token
	return m.pair, m.rotateErr
}

func (m *mockTokens) ParseAccess(token string) (int64, error) {
	m.lastParse = token
	return m.parseID, m.parseErr
}

type mockProfile struct {
	user *models.User
	err  error
}

func (m *mockProfile) Me(_ context.Context, _ int64) (*models.User, error) { return m.user, m.err }
func (m *mockProfile) UpdateAccount(_ context.Context, _ int64, _, _ string) (*models.User, error) {
	return m.user, m.err
}
func (m *mockProfile) UpdateAvatar(_ context.Context, _ int64, _ string) (*models.User, error) {
	return m.user, m.err
}
func (m *mockProfile) UpdateCoverImage(_ context.Context, _ int64, _ string) (*models.User, error) {
	return m.user, m.err
}

type mockChannels struct {
	profile    *models.ChannelProfile
	subscribed bool
	err        error
}

func (m *mockChannels) ChannelProfile(_ context.Context, _ string, _ int64) (*models.ChannelProfile, error) {
	return m.profile, m.err
}
func (m *mockChannels) ToggleSubscription(_ context.Context, _ int64, _ string) (bool, error) {
	return m.subscribed, m.err
}

type mockHistory struct {
	video   *models.Video
	entries []models.WatchEntry
	err     error
}

func (m *mockHistory) Watch(_ context.Context, _, _ int64) (*models.Video, error) {
	return m.video, m.err
}
func (m *mockHistory) WatchHistory(_ context.Context, _ int64) ([]models.WatchEntry, error) {
	return m.entries, m.err
}

// ---- Shared Test Helpers ----

var testCookieCfg = config.JWT{AccessTTL: time.Minute, RefreshTTL: time.Hour}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, testCookieCfg)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
