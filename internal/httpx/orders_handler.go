package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/webshop/order-api/internal/kafka"
	"github.com/webshop/order-api/internal/orders"
	"github.com/webshop/order-api/internal/redisx"
)

// OrderStore is what the order handlers need from the orders repo.
type OrderStore interface {
	Place(ctx context.Context, items []orders.ItemInput, status orders.Status) (int64, error)
	Get(ctx context.Context, id int64) (orders.Order, error)
	List(ctx context.Context) ([]orders.Order, error)
	UpdateStatus(ctx context.Context, id int64, status orders.Status) (orders.Order, error)
}

// Publisher is the async event sink; satisfied by kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Store OrderStore
	Redis *redis.Client // optional read cache

	// per-topic producers, both optional
	Placed        Publisher
	StatusChanged Publisher

	Service string
}

type PlaceOrderReq struct {
	Items  []orders.ItemInput `json:"items"`
	Status orders.Status      `json:"status,omitempty"`
}

type UpdateStatusReq struct {
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Patch("/orders/{id}/status", h.updateStatus)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}
	if req.Status == "" {
		req.Status = orders.StatusPending
	}
	if err := validateOrderItems(req.Items); err != nil {
		writeError(w, err)
		return
	}
	if err := validateStatus(req.Status); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID, err := h.Store.Place(ctx, req.Items, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	o, err := h.Store.Get(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheOrder(ctx, o)
	h.publish(h.Placed, orders.EventOrderPlaced, o.ID, r,
		orders.OrderPlacedPayload{OrderID: o.ID, Status: o.Status, Items: o.Items})

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, err := h.Store.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache first, DB stays the source of truth
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.OrderKey(id)).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	o, err := h.Store.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheOrder(ctx, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}
	if err := validateStatus(req.Status); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheOrder(ctx, o)
	h.publish(h.StatusChanged, orders.EventOrderStatusChanged, o.ID, r,
		orders.OrderStatusChangedPayload{OrderID: o.ID, Status: o.Status})

	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) cacheOrder(ctx context.Context, o orders.Order) {
	if h.Redis == nil {
		return
	}
	b, err := json.Marshal(o)
	if err != nil {
		return
	}
	_ = h.Redis.Set(ctx, redisx.OrderKey(o.ID), b, redisx.TTLOrderCache).Err()
}

func (h *OrdersHandler) publish(pub Publisher, eventType string, orderID int64, r *http.Request, payload any) {
	if pub == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       middleware.GetReqID(r.Context()),
		CorrelationID: string(orders.PartitionKey(orderID)),
		Payload:       kafkax.MustMarshal(payload),
	}
	pub.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
