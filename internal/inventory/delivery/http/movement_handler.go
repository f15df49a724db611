package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
	"github.com/ledgerkeep/inventory/internal/inventory/usecase/command"
	"github.com/ledgerkeep/inventory/internal/inventory/usecase/query"
	"github.com/ledgerkeep/inventory/kafka"
	"github.com/ledgerkeep/inventory/pkg/logger"
)

// ProductCacheInvalidator drops cached product entries after a
// reconciliation changed the cached stock quantity
type ProductCacheInvalidator interface {
	Invalidate(id uint)
}

// MovementHandler handles HTTP requests for stock movements
type MovementHandler struct {
	createHandler *command.CreateMovementHandler
	updateHandler *command.UpdateMovementHandler
	deleteHandler *command.DeleteMovementHandler

	getHandler  *query.GetMovementHandler
	listHandler *query.ListMovementsHandler

	movements domain.MovementRepository
	products  domain.ProductRepository

	kafkaPublisher *kafka.Publisher
	cache          ProductCacheInvalidator

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	unitsOnHand    prometheus.Gauge
	stockRejected  *prometheus.CounterVec
}

// NewMovementHandler creates a new movement handler. kafkaPublisher and
// cache may be nil.
func NewMovementHandler(
	createHandler *command.CreateMovementHandler,
	updateHandler *command.UpdateMovementHandler,
	deleteHandler *command.DeleteMovementHandler,
	getHandler *query.GetMovementHandler,
	listHandler *query.ListMovementsHandler,
	movements domain.MovementRepository,
	products domain.ProductRepository,
	kafkaPublisher *kafka.Publisher,
	cache ProductCacheInvalidator,
) *MovementHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movement_requests_total",
			Help: "Total number of stock movement requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_movement_request_duration_seconds",
			Help:    "Duration of stock movement requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	unitsOnHand := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stock_units_on_hand",
			Help: "Sum of cached stock quantities across all products",
		},
	)

	stockRejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movement_rejections_total",
			Help: "Reconciliations rejected because stock would go negative",
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(unitsOnHand)
	prometheus.MustRegister(stockRejected)

	return &MovementHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		movements:      movements,
		products:       products,
		kafkaPublisher: kafkaPublisher,
		cache:          cache,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		unitsOnHand:    unitsOnHand,
		stockRejected:  stockRejected,
	}
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *MovementHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all stock movement routes. Reads need
// authentication, writes need staff privilege.
func (h *MovementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/stock-movements", h.metricsMiddleware("/api/stock-movements", AuthMiddleware(h.ListMovements))).Methods("GET")
	router.HandleFunc("/api/stock-movements/{id}", h.metricsMiddleware("/api/stock-movements/{id}", AuthMiddleware(h.GetMovement))).Methods("GET")

	router.HandleFunc("/api/stock-movements", h.metricsMiddleware("/api/stock-movements", StaffMiddleware(h.CreateMovement))).Methods("POST")
	router.HandleFunc("/api/stock-movements/{id}", h.metricsMiddleware("/api/stock-movements/{id}", StaffMiddleware(h.UpdateMovement))).Methods("PUT")
	router.HandleFunc("/api/stock-movements/{id}", h.metricsMiddleware("/api/stock-movements/{id}", StaffMiddleware(h.DeleteMovement))).Methods("DELETE")
}

// CreateMovement handles POST /api/stock-movements
func (h *MovementHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID    uint   `json:"product_id"`
		MovementType string `json:"movement_type"`
		Quantity     int    `json:"quantity"`
		Reason       string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	movement, err := h.createHandler.Handle(r.Context(), command.CreateMovementCommand{
		ProductID:    req.ProductID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
	})
	if err != nil {
		h.observeRejection("create", err)
		logger.Logger.Error().Err(err).Msg("Failed to create stock movement")
		respondDomainError(w, err)
		return
	}

	h.afterReconciliation(r, kafka.EventTypeMovementRecorded, movement, movement.ProductID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock movement recorded successfully",
		Data:    movement,
	})
}

// ListMovements handles GET /api/stock-movements
func (h *MovementHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)

	q := query.ListMovementsQuery{
		Limit:     limit,
		Offset:    offset,
		ProductID: uint(productID),
	}

	movements, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list stock movements")
		respondError(w, http.StatusInternalServerError, "Failed to list stock movements")
		return
	}

	count, _ := h.movements.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"movements": movements,
			"total":     count,
			"limit":     q.Limit,
			"offset":    offset,
		},
	})
}

// GetMovement handles GET /api/stock-movements/{id}
func (h *MovementHandler) GetMovement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movement ID")
		return
	}

	movement, err := h.getHandler.Handle(query.GetMovementQuery{ID: id})
	if err != nil {
		respondError(w, http.StatusNotFound, "Movement not found")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    movement,
	})
}

// UpdateMovement handles PUT /api/stock-movements/{id}
func (h *MovementHandler) UpdateMovement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movement ID")
		return
	}

	var req struct {
		ProductID    uint   `json:"product_id"`
		MovementType string `json:"movement_type"`
		Quantity     int    `json:"quantity"`
		Reason       string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Remember the original product so a cross-product move invalidates both
	original, err := h.movements.FindByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Movement not found")
		return
	}
	originalProductID := original.ProductID

	movement, err := h.updateHandler.Handle(r.Context(), command.UpdateMovementCommand{
		ID:           id,
		ProductID:    req.ProductID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
	})
	if err != nil {
		h.observeRejection("update", err)
		logger.Logger.Error().Err(err).Msg("Failed to update stock movement")
		respondDomainError(w, err)
		return
	}

	h.afterReconciliation(r, kafka.EventTypeMovementUpdated, movement, originalProductID, movement.ProductID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock movement updated successfully",
		Data:    movement,
	})
}

// DeleteMovement handles DELETE /api/stock-movements/{id}
func (h *MovementHandler) DeleteMovement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movement ID")
		return
	}

	movement, err := h.movements.FindByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Movement not found")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteMovementCommand{ID: id}); err != nil {
		h.observeRejection("delete", err)
		logger.Logger.Error().Err(err).Msg("Failed to delete stock movement")
		respondDomainError(w, err)
		return
	}

	h.afterReconciliation(r, kafka.EventTypeMovementDeleted, movement, movement.ProductID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock movement deleted successfully",
	})
}

// afterReconciliation refreshes caches and metrics and publishes the
// movement event once a reconciliation has committed
func (h *MovementHandler) afterReconciliation(r *http.Request, eventType string, movement *domain.StockMovement, productIDs ...uint) {
	if h.cache != nil {
		for _, id := range productIDs {
			h.cache.Invalidate(id)
		}
	}

	if total, err := h.products.TotalStock(); err == nil {
		h.unitsOnHand.Set(float64(total))
	}

	if h.kafkaPublisher != nil {
		stock := 0
		if product, err := h.products.FindByID(movement.ProductID); err == nil {
			stock = product.StockQuantity
		}

		event := kafka.StockMovementEvent{
			EventType:     eventType,
			MovementID:    movement.ID,
			ProductID:     movement.ProductID,
			MovementType:  movement.MovementType,
			Quantity:      movement.Quantity,
			StockQuantity: stock,
			Reason:        movement.Reason,
		}
		if err := h.kafkaPublisher.PublishStockMovement(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish stock movement event")
		}
	}
}

// observeRejection counts reconciliations blocked by the stock guard
func (h *MovementHandler) observeRejection(operation string, err error) {
	if errors.Is(err, domain.ErrInsufficientStock) {
		h.stockRejected.WithLabelValues(operation).Inc()
	}
}
