package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/supplier-hub/internal/core/domain"
	"github.com/rl1809/supplier-hub/internal/core/service"
	"github.com/rl1809/supplier-hub/internal/metrics"
)

type HTTPHandler struct {
	orders     *service.OrderService
	aggregator *service.AggregatorService
	products   *service.ProductService
	metrics    *metrics.Metrics
}

func NewHTTPHandler(orders *service.OrderService, aggregator *service.AggregatorService, products *service.ProductService, m *metrics.Metrics) *HTTPHandler {
	return &HTTPHandler{
		orders:     orders,
		aggregator: aggregator,
		products:   products,
		metrics:    m,
	}
}

func (h *HTTPHandler) Register(r *gin.Engine) {
	r.Use(h.observe)
	r.GET("/health", h.healthCheck)

	api := r.Group("/api")
	api.GET("/suppliers/:id/orders", h.listOrders)
	api.POST("/orders/:id/confirm", h.confirmOrder)
	api.POST("/orders/:id/cancel", h.cancelOrder)
	api.GET("/suppliers/:id/products", h.listProducts)
	api.POST("/products", h.createProduct)
	api.PUT("/products/:id", h.updateProduct)
	api.DELETE("/products/:id", h.deleteProduct)
}

func (h *HTTPHandler) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	handlerName := c.FullPath()
	if handlerName == "" {
		handlerName = "unmatched"
	}
	h.metrics.Requests.WithLabelValues(handlerName, strconv.Itoa(c.Writer.Status())).Inc()
	h.metrics.LatencyMS.WithLabelValues(handlerName).Observe(float64(time.Since(start).Milliseconds()))
}

func (h *HTTPHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) listOrders(c *gin.Context) {
	supplierID, ok := pathID(c)
	if !ok {
		return
	}

	views, err := h.aggregator.LoadOrders(c.Request.Context(), supplierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
		return
	}

	if views == nil {
		views = []domain.OrderView{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

func (h *HTTPHandler) confirmOrder(c *gin.Context) {
	h.transition(c, domain.OrderStatusConfirmed)
}

func (h *HTTPHandler) cancelOrder(c *gin.Context) {
	h.transition(c, domain.OrderStatusCancelled)
}

func (h *HTTPHandler) transition(c *gin.Context, target domain.OrderStatus) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.orders.TransitionOrder(c.Request.Context(), orderID, target)
	if err != nil {
		h.metrics.Transitions.WithLabelValues(string(target), transitionOutcome(err)).Inc()
		status, message := transitionError(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	h.metrics.Transitions.WithLabelValues(string(target), "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message, "result": res})
}

func transitionError(err error) (int, string) {
	var partial *service.PartialFailureError

	switch {
	case errors.Is(err, service.ErrTransitionInFlight):
		return http.StatusConflict, "order is already being processed"
	case errors.As(err, &partial):
		return http.StatusInternalServerError, "stock was restored but the order status could not be updated"
	case errors.Is(err, service.ErrOrderNotPending):
		return http.StatusConflict, "order is no longer pending"
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, service.ErrInvalidTarget):
		return http.StatusBadRequest, "invalid target status"
	default:
		return http.StatusInternalServerError, "could not update the order"
	}
}

func transitionOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrTransitionInFlight):
		return "in_flight"
	case errors.Is(err, service.ErrOrderNotPending):
		return "not_pending"
	default:
		return "error"
	}
}

func (h *HTTPHandler) listProducts(c *gin.Context) {
	supplierID, ok := pathID(c)
	if !ok {
		return
	}

	products, err := h.products.List(c.Request.Context(), supplierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load products"})
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type productRequest struct {
	SupplierID int64   `json:"supplier_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Size       string  `json:"size"`
	Category   string  `json:"category"`
	ImageURL   string  `json:"image_url"`
}

func (r productRequest) toDomain() domain.Product {
	return domain.Product{
		SupplierID: r.SupplierID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		Price:      r.Price,
		Size:       r.Size,
		Category:   r.Category,
		ImageURL:   r.ImageURL,
	}
}

func (h *HTTPHandler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p := req.toDomain()
	if err := h.products.Create(c.Request.Context(), &p); err != nil {
		c.JSON(productErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *HTTPHandler) updateProduct(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p := req.toDomain()
	p.ID = productID
	if err := h.products.Update(c.Request.Context(), p); err != nil {
		c.JSON(productErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *HTTPHandler) deleteProduct(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

func productErrorStatus(err error) int {
	if errors.Is(err, service.ErrInvalidProduct) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
