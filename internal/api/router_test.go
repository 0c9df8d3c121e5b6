package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/rentdesk/internal/api/cron"
	"github.com/rentdesk/rentdesk/internal/api/dto"
	v1 "github.com/rentdesk/rentdesk/internal/api/v1"
	"github.com/rentdesk/rentdesk/internal/rest/middleware"
	"github.com/rentdesk/rentdesk/internal/sentry"
	"github.com/rentdesk/rentdesk/internal/service"
	"github.com/rentdesk/rentdesk/internal/testutil"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetClock(),
		stores.ContractRepo,
		stores.InstallmentRepo,
		s.GetWebhookPublisher(),
		s.GetIdempotencyGenerator(),
	)
	contracts := service.NewContractService(params)
	installments := service.NewInstallmentService(params)

	s.router = NewRouter(Handlers{
		Health:          v1.NewHealthHandler(s.GetLogger()),
		Contract:        v1.NewContractHandler(contracts, installments, s.GetLogger()),
		Installment:     v1.NewInstallmentHandler(installments, s.GetLogger()),
		PriceSuggestion: v1.NewPriceSuggestionHandler(service.NewPriceSuggestionService()),
		Statistics:      v1.NewStatisticsHandler(service.NewStatisticsService(params), s.GetLogger()),
		CronInstallment: cron.NewInstallmentCronHandler(installments, s.GetLogger()),
	}, s.GetConfig(), s.GetLogger(), sentry.NewSentryService(s.GetConfig(), s.GetLogger()))
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, into any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), into), w.Body.String())
}

func (s *RouterSuite) createContract() *dto.ContractResponse {
	w := s.do(http.MethodPost, "/v1/contracts", map[string]any{
		"contract_type":    "HOME",
		"home_id":          "home_1",
		"guest_id":         "guest_1",
		"start_date":       "2024-01-15",
		"duration_months":  6,
		"pay_cycle_months": 1,
		"price":            "5000000",
		"deposit":          "10000000",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ContractResponse
	s.decode(w, &resp)
	return &resp
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *RouterSuite) TestMetricsEndpoint() {
	w := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "go_goroutines")
}

func (s *RouterSuite) TestScheduleAndSettlementFlow() {
	ctr := s.createContract()
	s.Equal("2024-07-15", ctr.EndDate)

	w := s.do(http.MethodPost, "/v1/contracts/"+ctr.ID+"/schedule", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var generated dto.GenerateScheduleResponse
	s.decode(w, &generated)
	s.Equal(6, generated.Created)

	w = s.do(http.MethodPost, "/v1/contracts/"+ctr.ID+"/schedule", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var again dto.GenerateScheduleResponse
	s.decode(w, &again)
	s.Equal(0, again.Created)
	s.Equal(6, again.Skipped)

	w = s.do(http.MethodGet, "/v1/installments?contract_ids="+ctr.ID+"&limit=10", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListInstallmentsResponse
	s.decode(w, &list)
	s.Require().Len(list.Items, 6)
	s.Equal("2024-01-15", list.Items[0].DatePaymentExpec)
	s.Equal("2024-06-15", list.Items[5].DatePaymentExpec)

	// today is 2024-03-15: January is past due and gets corrected
	w = s.do(http.MethodPut, "/v1/installments/"+list.Items[0].ID, map[string]any{"status": 0})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var corrected map[string]any
	s.decode(w, &corrected)
	s.Equal(true, corrected["corrected"])
	s.Equal(float64(types.InstallmentStatusOverdue), corrected["status"])
	s.NotEmpty(corrected["warning"])

	// February is still unpaid, March cannot be settled
	w = s.do(http.MethodPut, "/v1/installments/"+list.Items[2].ID, map[string]any{"status": 1})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	var rejected middleware.ErrorResponse
	s.decode(w, &rejected)
	s.False(rejected.Success)
	s.Equal("earlier unpaid installments exist", rejected.Error.Message)
	s.Equal(list.Items[2].ID, rejected.Error.Details["installment_id"])

	// April is in the future
	w = s.do(http.MethodPut, "/v1/installments/"+list.Items[3].ID, map[string]any{"status": 1})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.decode(w, &rejected)
	s.Equal("cannot mark an installment paid before its due date", rejected.Error.Message)

	w = s.do(http.MethodPost, "/v1/cron/installments/overdue", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var sweep dto.MarkOverdueResponse
	s.decode(w, &sweep)
	s.Equal("2024-03-15", sweep.Date)
	s.Equal(1, sweep.Marked)

	// with every earlier row overdue, March can be settled today
	w = s.do(http.MethodPut, "/v1/installments/"+list.Items[2].ID, map[string]any{
		"status":    1,
		"totalSend": "5000000",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/statistics/installments?contract_id="+ctr.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var stats dto.InstallmentStatisticsResponse
	s.decode(w, &stats)
	s.Equal(6, stats.Count)
	s.Equal("25000000", stats.Outstanding.String())
}

func (s *RouterSuite) TestCreateInstallmentOutsideContract() {
	ctr := s.createContract()

	w := s.do(http.MethodPost, "/v1/installments", map[string]any{
		"contractId":       ctr.ID,
		"totalReceive":     "1000000",
		"datePaymentExpec": "2024-08-01",
		"type":             2,
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	var body middleware.ErrorResponse
	s.decode(w, &body)
	s.Equal("Due date cannot be after the contract end date", body.Error.Message)

	w = s.do(http.MethodPost, "/v1/installments", map[string]any{
		"contractId":       ctr.ID,
		"totalReceive":     "10000000",
		"datePaymentExpec": "2024-07-15",
		"type":             2,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.InstallmentResponse
	s.decode(w, &created)
	s.Equal("Tiền cọc", created.TypeLabel)
}

func (s *RouterSuite) TestNotFoundAndBadInput() {
	w := s.do(http.MethodGet, "/v1/installments/inst_missing", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/v1/contracts/ctr_missing", nil)
	s.Equal(http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/installments", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
	var body middleware.ErrorResponse
	s.decode(rec, &body)
	s.Equal("Invalid request format", body.Error.Message)
}

func (s *RouterSuite) TestPriceSuggestions() {
	w := s.do(http.MethodGet, "/v1/prices/suggestions?q=150", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"query":"150","suggestions":[150000,1500000]}`, w.Body.String())
}
