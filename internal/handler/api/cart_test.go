//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"go-shop/internal/domain/cart"
	"go-shop/internal/domain/user"
	"go-shop/internal/handler/api"
	reqdto "go-shop/internal/handler/dto/request"
	resdto "go-shop/internal/handler/dto/response"
	"go-shop/internal/usecase/commands"
	"go-shop/internal/usecase/queries"
	"go-shop/tests/common/httptest"
	commandsmock "go-shop/tests/mock/commands"
	queriesmock "go-shop/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCmds    *commandsmock.MockCartCommands
	mockQueries *queriesmock.MockCartQueries
	handler     *api.CartHandler
	userID      uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCmds, s.mockQueries)
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

	s.router.GET("/cart", authMiddleware, s.handler.Get)
	s.router.DELETE("/cart", authMiddleware, s.handler.Clear)
	s.router.POST("/cart/items", authMiddleware, s.handler.AddItem)
	s.router.DELETE("/cart/items/:id", authMiddleware, s.handler.RemoveItem)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) cartView(productID uuid.UUID) *queries.CartView {
	return &queries.CartView{
		Items: []*queries.CartItemView{
			{
				ProductID: productID,
				Title:     "Test Book",
				UnitPrice: decimal.RequireFromString("9.99"),
				Quantity:  2,
				Subtotal:  decimal.RequireFromString("19.98"),
			},
		},
		Total: decimal.RequireFromString("19.98"),
	}
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CartHandlerTestSuite) TestGet() {
	url := "/cart"

	s.Run("success: returns items with subtotals and the total", func() {
		productID := uuid.New()
		s.mockQueries.EXPECT().GetByUser(gomock.Any(), s.userID).
			Return(s.cartView(productID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp.Items, 1)
		s.Equal(productID.String(), resp.Items[0].ProductID)
		s.Equal("19.98", resp.Items[0].Subtotal)
		s.Equal("19.98", resp.Total)
	})

	s.Run("success: returns an empty cart", func() {
		s.mockQueries.EXPECT().GetByUser(gomock.Any(), s.userID).
			Return(&queries.CartView{Items: []*queries.CartItemView{}, Total: decimal.Zero}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp.Items)
		s.Equal("0.00", resp.Total)
	})

	s.Run("error: returns 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"

	s.Run("success: adds the product and returns the refreshed cart", func() {
		productID := uuid.New()
		body := reqdto.AddCartItemRequest{ProductID: productID.String(), Quantity: 2}

		s.mockCmds.EXPECT().AddItem(gomock.Any(), s.userID, productID, 2).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByUser(gomock.Any(), s.userID).
			Return(s.cartView(productID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var resp resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int32(2), resp.Items[0].Quantity)
	})

	s.Run("error: returns 400 for a missing product id", func() {
		body := reqdto.AddCartItemRequest{Quantity: 2}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: returns 400 for a non-positive quantity", func() {
		body := reqdto.AddCartItemRequest{ProductID: uuid.New().String(), Quantity: 0}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: returns 404 for an unknown product", func() {
		productID := uuid.New()
		body := reqdto.AddCartItemRequest{ProductID: productID.String(), Quantity: 1}

		s.mockCmds.EXPECT().AddItem(gomock.Any(), s.userID, productID, 1).
			Return(commands.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})

	s.Run("error: returns 422 when the quantity is rejected", func() {
		productID := uuid.New()
		body := reqdto.AddCartItemRequest{ProductID: productID.String(), Quantity: 1}

		s.mockCmds.EXPECT().AddItem(gomock.Any(), s.userID, productID, 1).
			Return(cart.ErrInvalidQuantity).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Quantity must be positive")
	})
}

// ================================================================================
// TestRemoveItem
// ================================================================================

func (s *CartHandlerTestSuite) TestRemoveItem() {
	s.Run("success: removes the line and returns the refreshed cart", func() {
		productID := uuid.New()
		url := "/cart/items/" + productID.String()

		s.mockCmds.EXPECT().RemoveItem(gomock.Any(), s.userID, productID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByUser(gomock.Any(), s.userID).
			Return(&queries.CartView{Items: []*queries.CartItemView{}, Total: decimal.Zero}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		var resp resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp.Items)
	})

	s.Run("error: returns 400 for a malformed product id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product id")
	})
}

// ================================================================================
// TestClear
// ================================================================================

func (s *CartHandlerTestSuite) TestClear() {
	url := "/cart"

	s.Run("success: returns 204", func() {
		s.mockCmds.EXPECT().Clear(gomock.Any(), s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: returns 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
