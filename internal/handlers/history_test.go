package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/handlers"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/middlewares"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

func TestHistoryHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	first := models.HistoryEntryDB{
		ID:        uuid.New(),
		OwnerID:   identity.UserID,
		IPAddress: "8.8.8.8",
		IPAttr:    "Global IPv4 Address",
	}
	second := models.HistoryEntryDB{
		ID:        uuid.New(),
		OwnerID:   identity.UserID,
		IPAddress: "10.0.0.1",
		IPAttr:    "Private IPv4 Address",
	}

	mockSvc := handlers.NewMockHistoryLister(ctrl)
	mockSvc.EXPECT().
		History(gomock.Any(), identity.UserID, 0, 100).
		Return([]models.HistoryEntryDB{first, second}, nil)

	handler := handlers.NewHistoryHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/history/", nil)
	req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	want := `[
		{"id":"` + first.ID.String() + `","owner_id":"` + identity.UserID.String() + `","ipaddress":"8.8.8.8","ip_attr":"Global IPv4 Address"},
		{"id":"` + second.ID.String() + `","owner_id":"` + identity.UserID.String() + `","ipaddress":"10.0.0.1","ip_attr":"Private IPv4 Address"}
	]`
	assert.JSONEq(t, want, rec.Body.String())
}

func TestHistoryHandler_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	mockSvc := handlers.NewMockHistoryLister(ctrl)
	mockSvc.EXPECT().
		History(gomock.Any(), identity.UserID, 0, 100).
		Return([]models.HistoryEntryDB{}, nil)

	handler := handlers.NewHistoryHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/history/", nil)
	req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHistoryHandler_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	mockSvc := handlers.NewMockHistoryLister(ctrl)
	mockSvc.EXPECT().
		History(gomock.Any(), identity.UserID, 3, 7).
		Return([]models.HistoryEntryDB{}, nil)

	handler := handlers.NewHistoryHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/history/?offset=3&limit=7", nil)
	req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHistoryHandler_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := handlers.NewMockHistoryLister(ctrl)

	handler := handlers.NewHistoryHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/history/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Could not validate credentials"}`, rec.Body.String())
}

func TestHistoryHandler_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	mockSvc := handlers.NewMockHistoryLister(ctrl)
	mockSvc.EXPECT().
		History(gomock.Any(), identity.UserID, 0, 100).
		Return(nil, errors.New("db error"))

	handler := handlers.NewHistoryHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/history/", nil)
	req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
