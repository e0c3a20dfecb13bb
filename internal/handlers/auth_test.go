package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/klarrein/dashboard/internal/email"
	"github.com/klarrein/dashboard/internal/sessions"
	"github.com/klarrein/dashboard/internal/storage"
)

func TestPasswordHashing(t *testing.T) {
	password := "pass123"
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if err := verifyPassword(hash, password); err != nil {
		t.Fatalf("verifyPassword should succeed: %v", err)
	}
	if err := verifyPassword(hash, "wrong-pass"); err == nil {
		t.Fatal("verifyPassword should fail for wrong password")
	}
}

type fakeUserStore struct {
	byEmail map[string]storage.User
	byID    map[string]storage.User
}

func newFakeUserStore(users ...storage.User) *fakeUserStore {
	s := &fakeUserStore{byEmail: map[string]storage.User{}, byID: map[string]storage.User{}}
	for _, u := range users {
		s.byEmail[u.Email] = u
		s.byID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, u storage.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (storage.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return storage.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (storage.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return storage.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := s.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	s.byID[id] = u
	s.byEmail[u.Email] = u
	return nil
}

type fakeTokenStore struct {
	refresh map[string]string
	reset   map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{refresh: map[string]string{}, reset: map[string]string{}}
}

func (s *fakeTokenStore) SaveRefresh(_ context.Context, token, userID string, _ time.Duration) error {
	s.refresh[token] = userID
	return nil
}

func (s *fakeTokenStore) ConsumeRefresh(_ context.Context, token string) (string, error) {
	userID, ok := s.refresh[token]
	if !ok {
		return "", sessions.ErrNotFound
	}
	delete(s.refresh, token)
	return userID, nil
}

func (s *fakeTokenStore) RevokeRefresh(_ context.Context, token string) error {
	delete(s.refresh, token)
	return nil
}

func (s *fakeTokenStore) SaveReset(_ context.Context, token, userID string, _ time.Duration) error {
	s.reset[token] = userID
	return nil
}

func (s *fakeTokenStore) ConsumeReset(_ context.Context, token string) (string, error) {
	userID, ok := s.reset[token]
	if !ok {
		return "", sessions.ErrNotFound
	}
	delete(s.reset, token)
	return userID, nil
}

type captureMailer struct {
	to      string
	subject string
	body    string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

var _ email.Sender = (*captureMailer)(nil)

func testAuthHandler(t *testing.T, users ...storage.User) (*AuthHandler, *fakeTokenStore, *captureMailer) {
	t.Helper()
	tokens := newFakeTokenStore()
	mailer := &captureMailer{}
	h := NewAuthHandler(newFakeUserStore(users...), tokens, mailer, "test-secret", 24*time.Hour, "https://dashboard.example")
	return h, tokens, mailer
}

func seededUser(t *testing.T) storage.User {
	t.Helper()
	hash, err := hashPassword("geheim123")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return storage.User{ID: "user-1", Email: "buero@klarrein.de", PasswordHash: hash, Role: "admin"}
}

func TestLoginAndMe(t *testing.T) {
	h, _, _ := testAuthHandler(t, seededUser(t))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"buero@klarrein.de","password":"geheim123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %q", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	meReq := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	meRec := httptest.NewRecorder()
	h.Me(meRec, meReq)
	if meRec.Code != http.StatusOK {
		t.Fatalf("me status = %d", meRec.Code)
	}
	var me meResponse
	if err := json.Unmarshal(meRec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.UserID != "user-1" || me.Email != "buero@klarrein.de" || me.Role != "admin" {
		t.Fatalf("unexpected me response: %+v", me)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _, _ := testAuthHandler(t, seededUser(t))

	body := `{"email":"neu@klarrein.de","password":"geheim"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %q", rec.Code, rec.Body.String())
	}

	again := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	againRec := httptest.NewRecorder()
	h.Register(againRec, again)
	if againRec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", againRec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, _, _ := testAuthHandler(t, seededUser(t))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"buero@klarrein.de","password":"falsch"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	h, _, _ := testAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"nobody@klarrein.de","password":"x"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	h, tokens, _ := testAuthHandler(t, seededUser(t))

	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"buero@klarrein.de","password":"geheim123"}`))
	loginRec := httptest.NewRecorder()
	h.Login(loginRec, loginReq)
	var first loginResponse
	if err := json.Unmarshal(loginRec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	refreshReq := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"`+first.RefreshToken+`"}`))
	refreshRec := httptest.NewRecorder()
	h.Refresh(refreshRec, refreshReq)
	if refreshRec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %q", refreshRec.Code, refreshRec.Body.String())
	}
	var second loginResponse
	if err := json.Unmarshal(refreshRec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}
	if _, ok := tokens.refresh[first.RefreshToken]; ok {
		t.Fatal("old refresh token still redeemable")
	}

	// Replaying the consumed token must fail.
	replayReq := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"`+first.RefreshToken+`"}`))
	replayRec := httptest.NewRecorder()
	h.Refresh(replayRec, replayReq)
	if replayRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on replay, got %d", replayRec.Code)
	}
}

func TestResetFlow(t *testing.T) {
	user := seededUser(t)
	h, tokens, mailer := testAuthHandler(t, user)

	req := httptest.NewRequest(http.MethodPost, "/auth/reset", strings.NewReader(`{"email":"buero@klarrein.de"}`))
	rec := httptest.NewRecorder()
	h.ResetRequest(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset request status = %d", rec.Code)
	}
	if mailer.to != user.Email {
		t.Fatalf("reset mail sent to %q", mailer.to)
	}
	if !strings.Contains(mailer.body, "https://dashboard.example/reset?token=") {
		t.Fatalf("reset mail missing link:\n%s", mailer.body)
	}
	if len(tokens.reset) != 1 {
		t.Fatalf("expected one stored reset token, got %d", len(tokens.reset))
	}

	var token string
	for k := range tokens.reset {
		token = k
	}
	confirmReq := httptest.NewRequest(http.MethodPost, "/auth/reset/confirm", strings.NewReader(`{"token":"`+token+`","password":"neu-geheim"}`))
	confirmRec := httptest.NewRecorder()
	h.ResetConfirm(confirmRec, confirmReq)
	if confirmRec.Code != http.StatusNoContent {
		t.Fatalf("reset confirm status = %d, body %q", confirmRec.Code, confirmRec.Body.String())
	}

	// Old password must no longer work, new one must.
	oldReq := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"buero@klarrein.de","password":"geheim123"}`))
	oldRec := httptest.NewRecorder()
	h.Login(oldRec, oldReq)
	if oldRec.Code != http.StatusUnauthorized {
		t.Fatalf("old password still accepted: %d", oldRec.Code)
	}
	newReq := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"buero@klarrein.de","password":"neu-geheim"}`))
	newRec := httptest.NewRecorder()
	h.Login(newRec, newReq)
	if newRec.Code != http.StatusOK {
		t.Fatalf("new password rejected: %d", newRec.Code)
	}
}

func TestResetRequestUnknownEmailIsSilent(t *testing.T) {
	h, tokens, mailer := testAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/reset", strings.NewReader(`{"email":"nobody@klarrein.de"}`))
	rec := httptest.NewRecorder()
	h.ResetRequest(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for unknown email, got %d", rec.Code)
	}
	if mailer.to != "" || len(tokens.reset) != 0 {
		t.Fatal("unknown email must not produce mail or token")
	}
}
