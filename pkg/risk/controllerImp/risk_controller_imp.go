package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"riskbot/pkg/risk/service"
	"riskbot/pkg/workflow"
)

type RiskCtrl struct {
	svc    service.RiskService
	export workflow.Exporter
}

func NewRiskCtrl(svc service.RiskService, export workflow.Exporter) *RiskCtrl {
	return &RiskCtrl{svc: svc, export: export}
}

func (h *RiskCtrl) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	risks, total, err := h.svc.ListByPhase(c.QueryParam("phase"), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "risks": risks})
}

func (h *RiskCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	r, err := h.svc.GetByID(uint(id))
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "risk not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RiskCtrl) AddMitigation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	var body struct {
		UserID         int64  `json:"user_id"`
		Username       string `json:"username"`
		Mitigation     string `json:"mitigation"`
		ExpectedResult string `json:"expected_result"`
	}
	if err := c.Bind(&body); err != nil || body.Mitigation == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "mitigation required"})
	}
	err = h.svc.AppendMitigation(uint(id), body.UserID, body.Username, body.Mitigation, body.ExpectedResult)
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "risk not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "added"})
}

func (h *RiskCtrl) Report(c echo.Context) error {
	rep, err := h.svc.ReportByPhase(c.QueryParam("phase"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *RiskCtrl) Export(c echo.Context) error {
	name, err := h.export.Export()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"file": name})
}
