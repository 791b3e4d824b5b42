package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CouponHTTP struct {
	Svc *service.CouponService
}

func (h *CouponHTTP) ListCoupons(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.list_coupons")

	items, err := h.Svc.ListCoupons(ctx)
	if err != nil {
		return fail(l, "list_coupons_failed", err)
	}
	return ok(c, http.StatusOK, items)
}

func (h *CouponHTTP) CreateCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.create_coupon")

	var req transport.CouponRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_coupon_failed", err)
	}

	coupon, err := h.Svc.CreateCoupon(ctx, req)
	if err != nil {
		return fail(l, "create_coupon_failed", err)
	}

	l.Info("create_coupon_success", "code", coupon.Code)
	return ok(c, http.StatusCreated, coupon)
}

func (h *CouponHTTP) PatchCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.patch_coupon")

	var req transport.PatchCouponRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "patch_coupon_failed", err)
	}

	coupon, err := h.Svc.PatchCoupon(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "patch_coupon_failed", err)
	}
	return ok(c, http.StatusOK, coupon)
}

func (h *CouponHTTP) DeleteCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.delete_coupon")

	id := c.Param("id")
	if err := h.Svc.DeleteCoupon(ctx, id); err != nil {
		return fail(l, "delete_coupon_failed", err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id})
}

func (h *CouponHTTP) ValidateCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.validate_coupon")

	var req transport.ValidateCouponRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "validate_coupon_failed", err)
	}

	res, err := h.Svc.ValidateCoupon(ctx, req)
	if err != nil {
		return fail(l, "validate_coupon_failed", err)
	}
	return ok(c, http.StatusOK, res)
}

type SettingsHTTP struct {
	Svc *service.SettingsService
}

func (h *SettingsHTTP) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get_settings")

	s, err := h.Svc.GetSettings(ctx)
	if err != nil {
		return fail(l, "get_settings_failed", err)
	}
	return ok(c, http.StatusOK, s)
}

func (h *SettingsHTTP) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.update_settings")

	var req transport.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_settings_failed", err)
	}

	s, err := h.Svc.UpdateSettings(ctx, req)
	if err != nil {
		return fail(l, "update_settings_failed", err)
	}

	l.Info("update_settings_success")
	return ok(c, http.StatusOK, s)
}

func (h *SettingsHTTP) Quote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.quote")

	var req transport.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "quote_failed", err)
	}

	q, err := h.Svc.Quote(ctx, req)
	if err != nil {
		return fail(l, "quote_failed", err)
	}
	return ok(c, http.StatusOK, q)
}

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	st, err := h.Svc.Stats(ctx)
	if err != nil {
		return fail(l, "admin_stats_failed", err)
	}
	return ok(c, http.StatusOK, st)
}

func (h *AdminHTTP) Customers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.customers")

	page, err := h.Svc.Customers(ctx,
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	)
	if err != nil {
		return fail(l, "admin_customers_failed", err)
	}
	return ok(c, http.StatusOK, page)
}
