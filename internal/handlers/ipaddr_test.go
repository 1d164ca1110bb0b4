package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/handlers"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/ipattr"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/middlewares"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

func newIPAddrRouter(svc handlers.LookupRecorder, identity *models.AuthenticatedIdentity) http.Handler {
	router := chi.NewRouter()
	if identity != nil {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(middlewares.SetIdentityToContext(r.Context(), identity)))
			})
		})
	}
	router.Get("/ipaddr/{ipstr}", handlers.NewIPAddrHandler(svc))
	return router
}

func TestIPAddrHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	mockSvc := handlers.NewMockLookupRecorder(ctrl)
	mockSvc.EXPECT().
		Lookup(gomock.Any(), identity, "8.8.8.8").
		Return(&models.HistoryEntryDB{
			ID:        uuid.New(),
			OwnerID:   identity.UserID,
			IPAddress: "8.8.8.8",
			IPAttr:    "Global IPv4 Address",
		}, nil)

	router := newIPAddrRouter(mockSvc, identity)

	req := httptest.NewRequest(http.MethodGet, "/ipaddr/8.8.8.8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ipaddr":"8.8.8.8","attr":"Global IPv4 Address","owner":"alice"}`, rec.Body.String())
}

func TestIPAddrHandler_NotAnIP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	mockSvc := handlers.NewMockLookupRecorder(ctrl)
	mockSvc.EXPECT().
		Lookup(gomock.Any(), identity, "not-an-ip").
		Return(&models.HistoryEntryDB{
			ID:        uuid.New(),
			OwnerID:   identity.UserID,
			IPAddress: "not-an-ip",
			IPAttr:    ipattr.ErrLabel,
		}, nil)

	router := newIPAddrRouter(mockSvc, identity)

	req := httptest.NewRequest(http.MethodGet, "/ipaddr/not-an-ip", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not IPv4 or IPv6 string format")
}

func TestIPAddrHandler_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := handlers.NewMockLookupRecorder(ctrl)

	router := newIPAddrRouter(mockSvc, nil)

	req := httptest.NewRequest(http.MethodGet, "/ipaddr/8.8.8.8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIPAddrHandler_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &models.AuthenticatedIdentity{UserID: uuid.New(), Username: "alice"}

	mockSvc := handlers.NewMockLookupRecorder(ctrl)
	mockSvc.EXPECT().
		Lookup(gomock.Any(), identity, "8.8.8.8").
		Return(nil, errors.New("insert failed"))

	router := newIPAddrRouter(mockSvc, identity)

	req := httptest.NewRequest(http.MethodGet, "/ipaddr/8.8.8.8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
