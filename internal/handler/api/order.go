package api

import (
	"errors"
	"net/http"

	resdto "go-shop/internal/handler/dto/response"
	"go-shop/internal/handler/httperr"
	"go-shop/internal/handler/middleware"
	"go-shop/internal/infra"
	"go-shop/internal/usecase"
	"go-shop/internal/usecase/commands"
	"go-shop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkout commands.CheckoutCommands
	invoices usecase.InvoiceUseCase
	q        queries.OrderQueries
}

func NewOrderHandler(checkout commands.CheckoutCommands, invoices usecase.InvoiceUseCase, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{checkout: checkout, invoices: invoices, q: q}
}

// @Summary Place order
// @Description Snapshot the cart into an order and clear the cart. Retrying
// @Description with the same cart content replays the placed order with 200.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.PlaceOrderResponse
// @Success 200 {object} resdto.PlaceOrderResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrCheckoutInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Checkout already in progress", nil)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "A cart product no longer exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to place order", nil)
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromPlaceOrderResult(result))
}

// @Summary List orders
// @Description List the authenticated user's orders, oldest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OrderListItemResponse
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	items, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": resdto.FromOrderList(items)})
}

// @Summary Get order
// @Description Get one of the authenticated user's orders with its lines
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOrderNotOwned):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case infra.IsKind(err, infra.KindNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Download invoice
// @Description Render the order invoice as a PDF. The same bytes are kept on disk.
// @Tags orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	rendered, err := h.invoices.RenderInvoice(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotOrderOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, usecase.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render invoice", nil)
		}
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+rendered.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", rendered.Data)
}

// @Summary Create payment session
// @Description Create a hosted payment session for the current cart
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.PaymentSessionResponse
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout/session [post]
func (h *OrderHandler) CreatePaymentSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	session, err := h.checkout.CreatePaymentSession(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "A cart product no longer exists", nil)
		case errors.Is(err, commands.ErrPaymentSessionFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create payment session", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentSession(session))
}
