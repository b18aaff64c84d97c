package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loginattendance/internal/audit"
	"loginattendance/internal/export"
	"loginattendance/internal/httpmiddleware"
	"loginattendance/internal/live"
	"loginattendance/internal/metrics"
	"loginattendance/internal/queue"
	"loginattendance/internal/render"
	"loginattendance/internal/session"
	"loginattendance/internal/store"
)

// NoRecordsNotice is shown when an export is requested on an empty log.
const NoRecordsNotice = "No attendance records found."

// Deps are the collaborators of the HTTP layer. Everything except
// Controller and Table may be nil.
type Deps struct {
	Controller     *session.Controller
	Table          *render.Table
	Hub            *live.Hub
	Queue          queue.Queue
	Metrics        *metrics.Metrics
	Limiter        *httpmiddleware.LoginLimiter
	Redis          *store.Redis
	MetricsHandler http.Handler
	StaticDir      string
}

type api struct {
	Deps
}

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// NewRouter builds the gin engine serving the attendance page.
func NewRouter(d Deps) *gin.Engine {
	a := &api{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.SetHTMLTemplate(pageTmpl)

	if d.MetricsHandler == nil {
		d.MetricsHandler = promhttp.Handler()
	}
	r.GET("/metrics", gin.WrapH(d.MetricsHandler))
	r.GET("/healthz", a.health)

	r.GET("/", a.page)
	r.GET("/state", a.state)
	r.GET("/attendance", a.records)
	r.GET("/attendance.csv", a.exportCSV)
	r.POST("/logout", a.logout)

	login := []gin.HandlerFunc{}
	if d.Limiter != nil {
		login = append(login, d.Limiter.Middleware())
	}
	login = append(login, a.login)
	r.POST("/login", login...)

	if d.Hub != nil {
		r.GET("/ws", gin.WrapH(d.Hub))
	}
	if d.StaticDir != "" {
		if info, err := os.Stat(d.StaticDir); err == nil && info.IsDir() {
			r.Static("/static", d.StaticDir)
		}
	}

	return r
}

func (a *api) health(c *gin.Context) {
	if a.Redis == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	redisHealthy := a.Redis.Healthy(c.Request.Context())
	status := http.StatusOK
	if !redisHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy})
}

func (a *api) page(c *gin.Context) {
	c.HTML(http.StatusOK, "page", pageData{
		View: a.Controller.View(),
		Rows: a.Table.HTML(),
	})
}

func (a *api) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": a.Controller.View(), "rows": a.Table.Rows()})
}

func (a *api) records(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"records": a.Controller.Records()})
}

func (a *api) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := a.Controller.AttemptLogin(form.Username, form.Password)
	a.Metrics.ObserveLogin(res.Outcome.String(), a.Controller.Len())

	if !res.OK() {
		c.JSON(http.StatusUnauthorized, gin.H{
			"result":  res.Outcome.String(),
			"message": session.MsgInvalidCredentials,
			"alert":   true,
			"view":    a.Controller.View(),
		})
		return
	}

	a.publish(c.Request.Context(), queue.TypeLogin, audit.LoginEvent{
		RecordID:  res.Record.ID,
		Username:  res.Username,
		Timestamp: res.Timestamp,
	})

	c.JSON(http.StatusOK, gin.H{
		"result":    res.Outcome.String(),
		"message":   session.WelcomeMessage(res.Username),
		"timestamp": res.Timestamp,
		"alert":     false,
		"view":      a.Controller.View(),
	})
}

func (a *api) exportCSV(c *gin.Context) {
	records := a.Controller.Records()
	data, filename, err := export.CSV(records)
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			a.Metrics.ObserveExport("empty")
			c.JSON(http.StatusNotFound, gin.H{"notice": NoRecordsNotice})
			return
		}
		a.Metrics.ObserveExport("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	a.Metrics.ObserveExport("ok")
	a.publish(c.Request.Context(), queue.TypeExport, audit.ExportEvent{Records: len(records)})

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

func (a *api) logout(c *gin.Context) {
	a.Controller.Reset()
	a.Metrics.ObserveReset()
	c.JSON(http.StatusOK, gin.H{"view": a.Controller.View()})
}

// publish sends an audit event. Failures are logged and never reach the user.
func (a *api) publish(ctx context.Context, msgType string, body any) {
	if a.Queue == nil {
		return
	}
	msg, err := queue.NewMessage(msgType, body)
	if err != nil {
		log.Printf("encode %s event: %v", msgType, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := a.Queue.Publish(ctx, msg); err != nil {
		log.Printf("queue publish %s failed: %v", msgType, err)
	}
}
