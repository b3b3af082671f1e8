package handler

import (
	"net/http"

	"reloadtrigger/internal/common"
	"reloadtrigger/internal/display"
	"reloadtrigger/internal/execution"
	"reloadtrigger/internal/panel"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PanelHandler hosts the panel. Every request is a fresh paint: the
// configuration is loaded again and the panel mounted on a per-request view.
type PanelHandler struct {
	api        panel.ControlPlane
	loadConfig func() (common.Config, error)
	normalizer *execution.Normalizer
	logger     *zap.Logger
}

func NewPanelHandler(api panel.ControlPlane, loadConfig func() (common.Config, error), logger *zap.Logger) *PanelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PanelHandler{
		api:        api,
		loadConfig: loadConfig,
		normalizer: execution.NewNormalizer(),
		logger:     logger,
	}
}

func (h *PanelHandler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(templates())
	r.GET("/", h.Page)
	r.POST("/actions/start", h.StartAction)
	r.POST("/actions/check", h.CheckAction)

	api := r.Group("/api")
	api.GET("/panel", h.PanelInfo)
	api.POST("/start", h.Start)
	api.GET("/status", h.Status)
}

type pageData struct {
	Enabled    bool
	StartLabel string
	CheckLabel string
	Warning    []panel.Block
}

func (h *PanelHandler) mount(view panel.View) (*panel.Controller, error) {
	cfg, err := h.loadConfig()
	if err != nil {
		h.logger.Error("load config failed", zap.Error(err))
		return nil, err
	}
	return h.mountWith(cfg, view)
}

func (h *PanelHandler) mountWith(cfg common.Config, view panel.View) (*panel.Controller, error) {
	formatter, err := display.NewFormatterForZone(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return panel.Mount(cfg.Properties, panel.Deps{
		API:        h.api,
		Normalizer: h.normalizer,
		Formatter:  formatter,
		View:       view,
		Logger:     h.logger,
	})
}

func (h *PanelHandler) Page(c *gin.Context) {
	cfg, err := h.loadConfig()
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	view := &panel.Buffer{}
	_, err = h.mountWith(cfg, view)
	data := pageData{
		Enabled:    err == nil,
		StartLabel: cfg.Properties.StartButtonLabel(),
		CheckLabel: cfg.Properties.CheckButtonLabel(),
	}
	if warning, ok := view.Warning(); ok {
		data.Warning = []panel.Block{warning}
	}
	c.HTML(http.StatusOK, "panel", data)
}

func (h *PanelHandler) StartAction(c *gin.Context) {
	view := &panel.Buffer{}
	ctrl, err := h.mount(view)
	if err != nil {
		h.mountFailed(c, view, err)
		return
	}
	ctrl.Start(c.Request.Context())
	log, _ := view.Log()
	c.HTML(http.StatusOK, "blocks", []panel.Block{log})
}

func (h *PanelHandler) CheckAction(c *gin.Context) {
	view := &panel.Buffer{}
	ctrl, err := h.mount(view)
	if err != nil {
		h.mountFailed(c, view, err)
		return
	}
	ctrl.Check(c.Request.Context())
	c.HTML(http.StatusOK, "blocks", view.Status())
}

func (h *PanelHandler) mountFailed(c *gin.Context, view *panel.Buffer, err error) {
	if warning, ok := view.Warning(); ok {
		c.HTML(http.StatusOK, "blocks", []panel.Block{warning})
		return
	}
	c.String(http.StatusInternalServerError, err.Error())
}

func (h *PanelHandler) PanelInfo(c *gin.Context) {
	ctrl, err := h.mount(&panel.Buffer{})
	if err != nil {
		common.Error(c, err)
		return
	}
	common.Success(c, toPanelInfo(ctrl.Properties()))
}

func (h *PanelHandler) Start(c *gin.Context) {
	ctrl, err := h.mount(&panel.Buffer{})
	if err != nil {
		common.Error(c, err)
		return
	}
	out := ctrl.Start(c.Request.Context())
	if out.State == panel.StartNetworkError {
		common.Error(c, out.Err)
		return
	}
	common.Success(c, toStartResult(out))
}

func (h *PanelHandler) Status(c *gin.Context) {
	ctrl, err := h.mount(&panel.Buffer{})
	if err != nil {
		common.Error(c, err)
		return
	}
	report := ctrl.Check(c.Request.Context())
	if report.Err != nil {
		common.Error(c, report.Err)
		return
	}
	common.Success(c, toStatusReport(report))
}
