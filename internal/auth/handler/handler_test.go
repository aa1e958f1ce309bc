package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/handler/mocks"
	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.reset()
}

func (s *HandlerSuite) reset() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger, nil, testutil.StaticValidator{}, nil)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func admin() *models.User {
	return &models.User{ID: "u-1", Username: "admin", Role: models.RoleAdmin}
}

func (s *HandlerSuite) TestLogin() {
	creds := models.Credentials{Username: "admin", Password: "admin123"}

	s.Run("returns the token and user", func() {
		s.reset()
		s.service.EXPECT().Login(gomock.Any(), creds).
			Return(&models.LoginResult{Token: "signed", User: admin()}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login", creds))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`{"success":true,"message":"Login successful!","token":"signed","user":{"id":"u-1","username":"admin","role":"admin"}}`, rr.Body.String())
	})

	s.Run("bad credentials", func() {
		s.reset()
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid username or password."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login", creds))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
		testutil.AssertErrorDescription(s.T(), rr, "Invalid username or password.")
	})

	s.Run("malformed body", func() {
		s.reset()
		rr := testutil.DoRequest(s.router, testutil.NewRawJSONRequest(s.T(), http.MethodPost, "/api/auth/login", `{"username":`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("internal failure hides the description", func() {
		s.reset()
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login", creds))
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
		s.JSONEq(`{"error":"internal_error"}`, rr.Body.String())
	})
}

func (s *HandlerSuite) TestCreateAdmin() {
	creds := models.Credentials{Username: "operator", Password: "secret1"}

	s.Run("created", func() {
		s.reset()
		s.service.EXPECT().CreateAdmin(gomock.Any(), creds).
			Return(&models.User{ID: "u-2", Username: "operator", Role: models.RoleAdmin}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/create-admin", creds))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.JSONEq(`{"success":true,"message":"Admin account created successfully!","user":{"id":"u-2","username":"operator","role":"admin"}}`, rr.Body.String())
	})

	s.Run("duplicate username", func() {
		s.reset()
		s.service.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Username already exists."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/create-admin", creds))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
		testutil.AssertErrorDescription(s.T(), rr, "Username already exists.")
	})

	s.Run("rejects non-json content", func() {
		s.reset()
		req := testutil.NewRawJSONRequest(s.T(), http.MethodPost, "/api/auth/create-admin", `username=a`)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnsupportedMediaType)
	})
}

func (s *HandlerSuite) TestVerify() {
	issued := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	expires := issued.Add(24 * time.Hour)

	s.Run("valid token", func() {
		s.reset()
		s.service.EXPECT().Verify(gomock.Any(), "tok").
			Return(&models.Verification{User: admin(), IssuedAt: issued, ExpiresAt: expires}, nil)

		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/verify")
		req.Header.Set("Authorization", "Bearer tok")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`{"success":true,"message":"Token is valid","user":{"id":"u-1","username":"admin","role":"admin"},"tokenInfo":{"issuedAt":"2024-06-01T08:00:00Z","expiresAt":"2024-06-02T08:00:00Z"}}`, rr.Body.String())
	})

	s.Run("missing header", func() {
		s.reset()
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/verify"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("wrong scheme", func() {
		s.reset()
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/verify")
		req.Header.Set("Authorization", "Basic abc")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("expired token", func() {
		s.reset()
		s.service.EXPECT().Verify(gomock.Any(), "tok").
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Token has expired. Please login again."))

		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/verify")
		req.Header.Set("Authorization", "Bearer tok")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
		testutil.AssertErrorDescription(s.T(), rr, "Token has expired. Please login again.")
	})
}

func (s *HandlerSuite) TestLogout() {
	s.Run("requires a token", func() {
		s.reset()
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("revokes the bearer token", func() {
		s.reset()
		s.service.EXPECT().Logout(gomock.Any(), testutil.AdminToken).Return(nil)

		req := testutil.WithBearer(testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "success", true)
	})

	s.Run("revocation failure", func() {
		s.reset()
		s.service.EXPECT().Logout(gomock.Any(), testutil.AdminToken).
			Return(dErrors.New(dErrors.CodeInternal, "failed to revoke token"))

		req := testutil.WithBearer(testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	})
}

func (s *HandlerSuite) TestLimiter() {
	ctrl := gomock.NewController(s.T())
	svc := mocks.NewMockService(ctrl)
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, testutil.StaticValidator{}, nil, WithLimiter(blocked))
	router := chi.NewRouter()
	h.Register(router)

	creds := models.Credentials{Username: "admin", Password: "admin123"}
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login", creds))
	testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)
	rr = testutil.DoRequest(router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/create-admin", creds))
	testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)

	svc.EXPECT().Verify(gomock.Any(), "tok").Return(&models.Verification{User: admin()}, nil)
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/verify")
	req.Header.Set("Authorization", "Bearer tok")
	testutil.AssertStatus(s.T(), testutil.DoRequest(router, req), http.StatusOK)
}
