package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"riskbot/pkg/workflow"
)

type ChatCtrl struct{ engine *workflow.Engine }

func NewChatCtrl(engine *workflow.Engine) *ChatCtrl { return &ChatCtrl{engine: engine} }

type chatBody struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	Text     string `json:"text"`
}

func (h *ChatCtrl) userID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("user_id"), 10, 64)
}

func (h *ChatCtrl) Start(c echo.Context) error {
	uid, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad user_id"})
	}
	var body chatBody
	_ = c.Bind(&body)
	return c.JSON(http.StatusOK, h.engine.Start(uid, body.Username))
}

func (h *ChatCtrl) Choice(c echo.Context) error {
	uid, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad user_id"})
	}
	var body chatBody
	if err := c.Bind(&body); err != nil || body.Token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "token required"})
	}
	return c.JSON(http.StatusOK, h.engine.OnChoice(uid, body.Username, body.Token))
}

func (h *ChatCtrl) Text(c echo.Context) error {
	uid, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad user_id"})
	}
	var body chatBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	return c.JSON(http.StatusOK, h.engine.OnText(uid, body.Username, body.Text))
}
