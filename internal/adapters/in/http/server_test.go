package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lao-sha/fissionmall/cmd"
	httpin "github.com/lao-sha/fissionmall/internal/adapters/in/http"
	"github.com/lao-sha/fissionmall/internal/adapters/out/events"
	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	e        *echo.Echo
	recorder *events.Recorder
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	config := cmd.ConfigFromLookup(func(key string) string {
		if key == "OPERATOR_ACCOUNTS" {
			return "ops"
		}
		return ""
	})
	s.recorder = events.NewRecorder()

	app, err := cmd.NewCompositionRoot(config, memory.NewStore(), s.recorder, memory.NewClock(0), logger)
	s.Require().NoError(err)

	s.e = echo.New()
	app.CreateServer().Register(s.e.Group("/api/v1"))
}

func (s *ServerTestSuite) do(method, path, account, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if account != "" {
		req.Header.Set(httpin.CallerHeader, account)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) createC2COrder(code string) {
	rec := s.do(http.MethodPost, "/c2c-orders", "alice",
		`{"code":"`+code+`","member_code":"M1","institution_code":"I1","direction":1,`+
			`"transaction_amount":100,"total_amount":150}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestC2COrder_Lifecycle() {
	s.createC2COrder("O1")

	rec := s.do(http.MethodPut, "/c2c-orders/O1/status", "alice", `{"status":1}`)
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/c2c-orders/O1", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var view queries.C2COrderView
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &view))
	s.Equal("O1", view.Code)
	s.Equal(uint8(1), view.Status)
	s.Equal("alice", view.Creator)
	s.Equal(uint64(150), view.TotalAmount)

	rec = s.do(http.MethodGet, "/indexes/c2c_order/status/1", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var bucket httpin.Bucket
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &bucket))
	s.Equal([]string{"O1"}, bucket.Keys)

	rec = s.do(http.MethodGet, "/indexes/audit", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var report queries.AuditIndexesQueryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Equal(1, report.Records)
	s.Empty(report.Violations)

	s.NotEmpty(s.recorder.Names())
}

func (s *ServerTestSuite) TestErrorStatuses() {
	s.createC2COrder("O1")

	tests := []struct {
		name    string
		method  string
		path    string
		account string
		body    string
		want    int
	}{
		{
			name:    "should answer 409 for a duplicate key",
			method:  http.MethodPost,
			path:    "/c2c-orders",
			account: "alice",
			body:    `{"code":"O1","member_code":"M1","institution_code":"I1","transaction_amount":1,"total_amount":1}`,
			want:    http.StatusConflict,
		},
		{
			name:   "should answer 404 for a missing record",
			method: http.MethodGet,
			path:   "/c2c-orders/NOPE",
			want:   http.StatusNotFound,
		},
		{
			name:    "should answer 403 for another caller",
			method:  http.MethodPost,
			path:    "/c2c-orders/O1/cancel",
			account: "mallory",
			want:    http.StatusForbidden,
		},
		{
			name:   "should answer 400 without a caller",
			method: http.MethodPost,
			path:   "/c2c-orders/O1/cancel",
			want:   http.StatusBadRequest,
		},
		{
			name:    "should answer 422 for an unknown status code",
			method:  http.MethodPut,
			path:    "/c2c-orders/O1/status",
			account: "alice",
			body:    `{"status":42}`,
			want:    http.StatusUnprocessableEntity,
		},
		{
			name:    "should answer 422 for a disallowed transition",
			method:  http.MethodPut,
			path:    "/c2c-orders/O1/status",
			account: "alice",
			body:    `{"status":5}`,
			want:    http.StatusUnprocessableEntity,
		},
		{
			name:    "should answer 400 for a malformed body",
			method:  http.MethodPut,
			path:    "/c2c-orders/O1/status",
			account: "alice",
			body:    `{"status":`,
			want:    http.StatusBadRequest,
		},
		{
			name:   "should answer 400 for an unknown kind",
			method: http.MethodGet,
			path:   "/indexes/widget/status/0",
			want:   http.StatusBadRequest,
		},
		{
			name:   "should answer 400 for a quote without weight",
			method: http.MethodGet,
			path:   "/freight-templates/north/quote",
			want:   http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.path, tt.account, tt.body)

			s.Equal(tt.want, rec.Code, rec.Body.String())
			var body httpin.Error
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			s.Equal(tt.want, body.Code)
		})
	}
}

func (s *ServerTestSuite) TestOperatorMayActOnAnyRecord() {
	s.createC2COrder("O1")

	rec := s.do(http.MethodPost, "/c2c-orders/O1/cancel", "ops", "")

	s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestInstitutionCatalogue() {
	rec := s.do(http.MethodPost, "/institutions", "alice",
		`{"id":"I1","name":"Shop","full_name":"Shop Ltd","license_image_url":"l","responsible_person":"Bob",`+
			`"business_scope":"retail"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/institutions/I1/payment-method", "alice", `{"alipay":"shop@alipay"}`)
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/institutions/I1/payment-method/fields/9", "alice", `{"value":"x"}`)
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/freight-templates", "alice",
		`{"area":"north","first_weight":1000,"first_weight_fee":10,"additional_weight_fee":2}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/freight-templates/north/quote?weight=1005", "", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var quote queries.FreightQuote
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &quote))
	s.Equal(uint32(20), quote.Fee)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"should map not found to 404", errs.NewObjectNotFoundError("code", "x"), http.StatusNotFound},
		{"should map validation to 400", errs.NewValueIsRequiredError("code"), http.StatusBadRequest},
		{"should map authorization to 403", errs.NewNotAuthorizedError("cancel", "bob"), http.StatusForbidden},
		{"should map conflicts to 409", errs.NewObjectAlreadyExistsError("code", "x"), http.StatusConflict},
		{"should map state errors to 422", errs.NewTransitionIsInvalidError("Paid", "Pending"), http.StatusUnprocessableEntity},
		{"should map capacity to 507", errs.NewIndexIsFullError("status", "0", 1), http.StatusInsufficientStorage},
		{"should map unreadable stored data to 500", errs.NewVersionIsInvalidError("c2c_order", errors.New("bad json")), http.StatusInternalServerError},
		{"should map anything else to 500", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpin.StatusOf(tt.err))
		})
	}
}
