package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_order_failed", err)
	}
	if (req.OrderStatus != "" || req.PaymentStatus != "") && currentUser(c).Role != models.RoleAdmin {
		l.Warn("create_order_status_ignored", "order_status", req.OrderStatus, "payment_status", req.PaymentStatus)
		req.OrderStatus, req.PaymentStatus = "", ""
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "create_order_failed", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "tracking_number", order.TrackingNumber)
	return ok(c, http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	q := transport.ListOrdersQuery{
		Page:           util.ParseIntDefault(c.QueryParam("page"), 1),
		Limit:          util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		Status:         c.QueryParam("status"),
		Email:          c.QueryParam("email"),
		TrackingNumber: c.QueryParam("trackingNumber"),
		Search:         c.QueryParam("search"),
	}

	page, err := h.Svc.ListOrders(ctx, q)
	if err != nil {
		return fail(l, "list_orders_failed", err)
	}
	return ok(c, http.StatusOK, page)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.my_orders")

	user := currentUser(c)
	page, err := h.Svc.ListCustomerOrders(ctx, user.Username,
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	)
	if err != nil {
		return fail(l, "my_orders_failed", err)
	}
	return ok(c, http.StatusOK, page)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	order, err := h.Svc.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_order_failed", err)
	}
	return ok(c, http.StatusOK, order)
}

func (h *OrderHTTP) TrackOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.track_order")

	order, err := h.Svc.TrackOrder(ctx, c.Param("trackingNumber"))
	if err != nil {
		return fail(l, "track_order_failed", err)
	}
	return ok(c, http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_status_failed", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "update_status_failed", err)
	}

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.OrderStatus)
	return ok(c, http.StatusOK, order)
}

func (h *OrderHTTP) UpdatePaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_payment_status")

	var req transport.UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_payment_status_failed", err)
	}

	order, err := h.Svc.UpdatePaymentStatus(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "update_payment_status_failed", err)
	}

	l.Info("update_payment_status_success", "order_id", order.ID, "payment_status", order.PaymentStatus)
	return ok(c, http.StatusOK, order)
}
