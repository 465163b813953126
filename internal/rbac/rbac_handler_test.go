package rbac_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-personnel/internal/domain"
	"go-personnel/internal/rbac"
	rbacMock "go-personnel/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type enforceEnvelope struct {
	Ok   bool                   `json:"ok"`
	Data domain.EnforceResponse `json:"data"`
}

func newEnforceRouter(svc rbac.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/rbac/enforce", func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("personnel_id", "prs-caller")
	}, rbac.NewHandler(svc).Enforce)
	return router
}

func postEnforce(router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)
	svc.EXPECT().
		Enforce(gomock.Any(), domain.EnforceRequest{
			PersonnelID: "prs-caller", CompanyID: "company-1", Resource: "personnel", Action: "read",
		}).
		Return(true, nil)

	body, _ := json.Marshal(rbac.EnforceRequest{Resource: "personnel", Action: "read"})
	w := postEnforce(newEnforceRouter(svc), body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp enforceEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_Enforce_OtherPersonnel(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)
	svc.EXPECT().
		Enforce(gomock.Any(), domain.EnforceRequest{
			PersonnelID: "prs-other", CompanyID: "company-1", Resource: "salary", Action: "delete",
		}).
		Return(false, nil)

	body, _ := json.Marshal(rbac.EnforceRequest{PersonnelID: "prs-other", Resource: "salary", Action: "delete"})
	w := postEnforce(newEnforceRouter(svc), body)

	var resp enforceEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Allowed)
}

func TestHandler_Enforce_MissingAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)

	w := postEnforce(newEnforceRouter(svc), []byte(`{"resource":"personnel"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
