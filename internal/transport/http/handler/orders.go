package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	mdw "go-shop-admin/internal/transport/http/middleware"
)

type Orders struct{ svc *service.OrderService }

type orderListQ struct {
	Status        string    `form:"status"`
	PaymentStatus string    `form:"paymentStatus"`
	Q             string    `form:"q"`
	From          time.Time `form:"from" time_format:"2006-01-02"`
	To            time.Time `form:"to" time_format:"2006-01-02"`
	Page          int       `form:"page"`
	Limit         int       `form:"limit"`
}

type orderStatusIn struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type orderPaymentIn struct {
	PaymentStatus domain.OrderPaymentStatus `json:"paymentStatus" binding:"required"`
}

func (h *Orders) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[orderListQ, *service.OrderList]{
		Method: http.MethodGet, Path: "/orders", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *orderListQ) (*service.OrderList, error) {
			q := service.OrderListQuery{
				OrderQuery: repo.OrderQuery{Status: in.Status, PaymentStatus: in.PaymentStatus, Q: in.Q},
				Page:       in.Page, Limit: in.Limit,
			}
			if !in.From.IsZero() {
				q.From = &in.From
			}
			// to 按天包含当天
			if !in.To.IsZero() {
				to := in.To.AddDate(0, 0, 1)
				q.To = &to
			}
			return result(h.svc.List(c, q))
		},
	})
	e.GET("/orders/:id", func(c *gin.Context) (any, error) {
		return result(h.svc.Get(c, c.Param("id")))
	})
	ez.RegisterAction(e, ez.Action[orderStatusIn, any]{
		Method: http.MethodPatch, Path: "/orders/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *orderStatusIn) (any, error) {
			return result(h.svc.UpdateStatus(c, c.Param("id"), in.Status))
		},
	})
	ez.RegisterAction(e, ez.Action[orderPaymentIn, any]{
		Method: http.MethodPatch, Path: "/orders/:id/payment", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *orderPaymentIn) (any, error) {
			return result(h.svc.UpdatePaymentStatus(c, c.Param("id"), in.PaymentStatus))
		},
	})
}

// MountAPI 前台下单，按 IP 限速
func (h *Orders) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("", mdw.RateLimitPerIP(1, 5)))
	ez.RegisterAction(e, ez.Action[service.CheckoutInput, any]{
		Method: http.MethodPost, Path: "/orders", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CheckoutInput) (any, error) {
			return result(h.svc.Checkout(c, *in))
		},
	})
}

type Payments struct{ svc *service.PaymentService }

type paymentListQ struct {
	Status  string `form:"status"`
	Method  string `form:"method"`
	OrderID string `form:"order_id"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

type paymentStatusIn struct {
	Status domain.PaymentStatus `json:"payment_status" binding:"required"`
}

func (h *Payments) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[paymentListQ, *service.PaymentList]{
		Method: http.MethodGet, Path: "/payments", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *paymentListQ) (*service.PaymentList, error) {
			return result(h.svc.List(c, service.PaymentListQuery{
				PaymentQuery: repo.PaymentQuery{Status: in.Status, Method: in.Method, OrderID: in.OrderID},
				Page:         in.Page, Limit: in.Limit,
			}))
		},
	})
	e.GET("/payments/:id", func(c *gin.Context) (any, error) {
		return result(h.svc.Get(c, c.Param("id")))
	})
	ez.RegisterAction(e, ez.Action[paymentStatusIn, any]{
		Method: http.MethodPut, Path: "/payments/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *paymentStatusIn) (any, error) {
			return result(h.svc.UpdateStatus(c, c.Param("id"), in.Status))
		},
	})
	ez.RegisterAction(e, ez.Action[service.RefundInput, any]{
		Method: http.MethodPost, Path: "/payments/:id/refund", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.RefundInput) (any, error) {
			return result(h.svc.Refund(c, c.Param("id"), *in))
		},
	})
}
