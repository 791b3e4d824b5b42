package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create_review")

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_review_failed", err)
	}

	user := currentUser(c)
	review, err := h.Svc.CreateReview(ctx, service.Reviewer{UserID: user.ID, Username: user.Username}, req)
	if err != nil {
		return fail(l, "create_review_failed", err)
	}

	l.Info("create_review_success", "review_id", review.ID, "product_id", review.ProductID)
	return ok(c, http.StatusCreated, review)
}

func (h *ReviewHTTP) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list_reviews")

	page, err := h.Svc.ListReviews(ctx, c.QueryParam("productId"),
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	)
	if err != nil {
		return fail(l, "list_reviews_failed", err)
	}
	return ok(c, http.StatusOK, page)
}

func (h *ReviewHTTP) CheckReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.check_review")

	reviewed, err := h.Svc.HasReviewed(ctx, currentUser(c).ID, c.QueryParam("orderId"), c.QueryParam("productId"))
	if err != nil {
		return fail(l, "check_review_failed", err)
	}
	return ok(c, http.StatusOK, echo.Map{"reviewed": reviewed})
}

func (h *ReviewHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.summary")

	var req transport.ReviewSummaryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "review_summary_failed", err)
	}

	summary, err := h.Svc.Summary(ctx, req.ProductIDs)
	if err != nil {
		return fail(l, "review_summary_failed", err)
	}
	return ok(c, http.StatusOK, summary)
}
