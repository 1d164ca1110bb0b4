package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/handlers"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/services"
)

func TestTokenHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoginer := handlers.NewMockLoginer(ctrl)
	mockLoginer.EXPECT().
		Login(gomock.Any(), "alice", "secret").
		Return("signed.jwt.token", nil)

	handler := handlers.NewTokenHandler(mockLoginer)

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "secret")

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"signed.jwt.token","token_type":"bearer"}`, rec.Body.String())
}

func TestTokenHandler_WrongCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoginer := handlers.NewMockLoginer(ctrl)
	mockLoginer.EXPECT().
		Login(gomock.Any(), "alice", "wrong").
		Return("", services.ErrInvalidCredentials)

	handler := handlers.NewTokenHandler(mockLoginer)

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong")

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"error":"Incorrect username or password"}`, rec.Body.String())
}

func TestTokenHandler_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoginer := handlers.NewMockLoginer(ctrl)
	mockLoginer.EXPECT().
		Login(gomock.Any(), "alice", "secret").
		Return("", errors.New("db down"))

	handler := handlers.NewTokenHandler(mockLoginer)

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "secret")

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTokenHandler_BadForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoginer := handlers.NewMockLoginer(ctrl)

	handler := handlers.NewTokenHandler(mockLoginer)

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
