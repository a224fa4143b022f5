//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"go-shop/internal/domain/user"
	"go-shop/internal/handler/api"
	resdto "go-shop/internal/handler/dto/response"
	"go-shop/internal/infra"
	"go-shop/internal/usecase"
	"go-shop/internal/usecase/commands"
	"go-shop/internal/usecase/queries"
	"go-shop/tests/common/httptest"
	commandsmock "go-shop/tests/mock/commands"
	queriesmock "go-shop/tests/mock/queries"
	usecasemock "go-shop/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
	mockInvoices *usecasemock.MockInvoiceUseCase
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	userID       uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockInvoices = usecasemock.NewMockInvoiceUseCase(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCheckout, s.mockInvoices, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/orders", authMiddleware, s.handler.Place)
	s.router.GET("/orders", authMiddleware, s.handler.List)
	s.router.GET("/orders/:id", authMiddleware, s.handler.Get)
	s.router.GET("/orders/:id/invoice", authMiddleware, s.handler.Invoice)
	s.router.POST("/checkout/session", authMiddleware, s.handler.CreatePaymentSession)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

// ================================================================================
// TestPlace
// ================================================================================

func (s *OrderHandlerTestSuite) TestPlace() {
	url := "/orders"

	s.Run("success: returns 201 Created for a fresh order", func() {
		orderID := uuid.New()
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID).
			Return(&commands.PlaceOrderResult{OrderID: orderID, IsReplayed: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var resp resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(orderID.String(), resp.OrderID)
		s.False(resp.Replayed)
	})

	s.Run("success: returns 200 OK when the order is replayed", func() {
		orderID := uuid.New()
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID).
			Return(&commands.PlaceOrderResult{OrderID: orderID, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var resp resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(orderID.String(), resp.OrderID)
		s.True(resp.Replayed)
	})

	s.Run("error: returns 422 for an empty cart", func() {
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID).
			Return(nil, commands.ErrEmptyCart).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Cart is empty")
	})

	s.Run("error: returns 409 when checkout is in progress", func() {
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID).
			Return(nil, commands.ErrCheckoutInProgress).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Checkout already in progress")
	})

	s.Run("error: returns 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *OrderHandlerTestSuite) TestList() {
	url := "/orders"

	s.Run("success: returns the user's orders", func() {
		items := []*queries.OrderListItem{
			{ID: uuid.New(), Total: decimal.RequireFromString("12.24"), LineCount: 2, CreatedAt: time.Now()},
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp struct {
			Orders []resdto.OrderListItemResponse `json:"orders"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp.Orders, 1)
		s.Equal("12.24", resp.Orders[0].Total)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *OrderHandlerTestSuite) TestGet() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	s.Run("success: returns the order with lines", func() {
		view := &queries.OrderView{
			ID:        orderID,
			UserID:    s.userID,
			Total:     decimal.RequireFromString("19.98"),
			CreatedAt: time.Now(),
			Lines: []*queries.OrderLineView{
				{ProductID: uuid.New(), Title: "Book", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 2, Subtotal: decimal.RequireFromString("19.98")},
			},
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, orderID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("19.98", resp.Total)
		s.Len(resp.Lines, 1)
		s.Equal("Book", resp.Lines[0].Title)
	})

	s.Run("error: returns 403 for another user's order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, orderID).
			Return(nil, queries.ErrOrderNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: returns 404 for a missing order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, orderID).
			Return(nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: returns 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestInvoice
// ================================================================================

func (s *OrderHandlerTestSuite) TestInvoice() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/invoice"

	s.Run("success: streams the rendered PDF", func() {
		rendered := &usecase.RenderedInvoice{
			Filename: "invoice-" + orderID.String() + ".pdf",
			Data:     []byte("%PDF-1.3 fake"),
		}
		s.mockInvoices.EXPECT().RenderInvoice(gomock.Any(), s.userID, orderID).Return(rendered, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/pdf", rec.Header().Get("Content-Type"))
		s.Contains(rec.Header().Get("Content-Disposition"), rendered.Filename)
		s.Equal(rendered.Data, rec.Body.Bytes())
	})

	s.Run("error: returns 403 for another user's order", func() {
		s.mockInvoices.EXPECT().RenderInvoice(gomock.Any(), s.userID, orderID).
			Return(nil, usecase.ErrNotOrderOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: returns 404 for a missing order", func() {
		s.mockInvoices.EXPECT().RenderInvoice(gomock.Any(), s.userID, orderID).
			Return(nil, usecase.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

// ================================================================================
// TestCreatePaymentSession
// ================================================================================

func (s *OrderHandlerTestSuite) TestCreatePaymentSession() {
	url := "/checkout/session"

	s.Run("success: returns 201 with the session url", func() {
		session := &commands.PaymentSession{ID: "cs_test_123", URL: "https://pay.example.com/cs_test_123"}
		s.mockCheckout.EXPECT().CreatePaymentSession(gomock.Any(), s.userID).Return(session, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var resp resdto.PaymentSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal("cs_test_123", resp.SessionID)
		s.Equal("https://pay.example.com/cs_test_123", resp.URL)
	})

	s.Run("error: returns 422 for an empty cart", func() {
		s.mockCheckout.EXPECT().CreatePaymentSession(gomock.Any(), s.userID).
			Return(nil, commands.ErrEmptyCart).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Cart is empty")
	})

	s.Run("error: returns 502 when the provider fails", func() {
		s.mockCheckout.EXPECT().CreatePaymentSession(gomock.Any(), s.userID).
			Return(nil, commands.ErrPaymentSessionFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment provider unavailable")
	})
}
