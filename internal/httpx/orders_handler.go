package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/retailcore/go-pos/internal/kafka"
	"github.com/retailcore/go-pos/internal/payment"
	"github.com/retailcore/go-pos/internal/pos"
	"github.com/retailcore/go-pos/internal/redisx"
)

type CustomerReq struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Email      string `json:"email"`
}

type LineItemReq struct {
	Item           string `json:"item"`
	Qty            int    `json:"qty"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

type RegisterOrderReq struct {
	ExternalID string        `json:"external_id"`
	Customer   CustomerReq   `json:"customer"`
	Items      []LineItemReq `json:"items"`
}

type RegisterOrderResp struct {
	OrderID    string `json:"order_id"`
	TotalCents int    `json:"total_cents"`
	Idempotent bool   `json:"idempotent"`
}

type OrderStatusResp struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	TotalCents int    `json:"total_cents"`
}

// OrdersHandler fronts the in-memory POS system. Redis and Producer are
// optional fast paths; the POS system stays the store of record.
type OrdersHandler struct {
	POS      *pos.System
	Producer kafkax.Publisher
	Redis    *redis.Client
	Service  string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.registerOrder)
	r.Post("/orders/{id}/pay", h.payOrder)
	r.Get("/orders/{id}", h.getOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *OrdersHandler) registerOrder(w http.ResponseWriter, r *http.Request) {
	var req RegisterOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ExternalID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing external_id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Fast-path idempotency via Redis, keyed by external_id.
	idemKey := fmt.Sprintf(redisx.KeyIdemOrderRegister, req.ExternalID)
	if h.Redis != nil {
		if existingID, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && existingID != "" {
			if existing, err := h.POS.FindOrder(existingID); err == nil {
				writeJSON(w, http.StatusAccepted, RegisterOrderResp{
					OrderID:    existing.ID,
					TotalCents: existing.TotalCents(),
					Idempotent: true,
				})
				return
			}
		}
	}

	order := pos.NewOrder(pos.Customer{
		ID:         req.Customer.ID,
		Name:       req.Customer.Name,
		Address:    req.Customer.Address,
		PostalCode: req.Customer.PostalCode,
		City:       req.Customer.City,
		Email:      req.Customer.Email,
	})
	for _, it := range req.Items {
		li, err := pos.NewLineItem(it.Item, it.Qty, it.UnitPriceCents)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		order.AddLineItem(li)
	}

	orderID, err := h.POS.RegisterOrder(order)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.Redis != nil {
		_ = h.Redis.Set(ctx, idemKey, orderID, redisx.TTLIdempotency).Err()
		statusKey := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		_ = h.Redis.Set(ctx, statusKey, kafkax.MustMarshal(OrderStatusResp{
			OrderID:    orderID,
			Status:     string(pos.StatusOpen),
			TotalCents: order.TotalCents(),
		}), redisx.TTLStatusCache).Err()
	}

	h.publish(pos.EventOrderRegistered, orderID, r.Header.Get("X-Request-Id"), pos.OrderRegisteredPayload{
		OrderID:    orderID,
		ExternalID: req.ExternalID,
		CustomerID: req.Customer.ID,
		Items:      order.LineItems(),
		TotalCents: order.TotalCents(),
	})

	writeJSON(w, http.StatusAccepted, RegisterOrderResp{OrderID: orderID, TotalCents: order.TotalCents()})
}

func (h *OrdersHandler) payOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	order, err := h.POS.FindOrder(orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	if err := h.POS.ProcessOrder(r.Context(), order); err != nil {
		switch {
		case errors.Is(err, payment.ErrNotConnected):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		case errors.Is(err, pos.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	if h.Redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		statusKey := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		_ = h.Redis.Set(ctx, statusKey, kafkax.MustMarshal(OrderStatusResp{
			OrderID:    orderID,
			Status:     string(order.Status()),
			TotalCents: order.TotalCents(),
		}), redisx.TTLStatusCache).Err()
	}

	writeJSON(w, http.StatusOK, OrderStatusResp{
		OrderID:    orderID,
		Status:     string(order.Status()),
		TotalCents: order.TotalCents(),
	})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) try cache
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	// 2) fall back to the in-memory store of record
	order, err := h.POS.FindOrder(orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	resp := OrderStatusResp{
		OrderID:    orderID,
		Status:     string(order.Status()),
		TotalCents: order.TotalCents(),
	}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(resp), redisx.TTLStatusCache).Err()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrdersHandler) publish(eventType, orderID, traceID string, payload any) {
	if h.Producer == nil {
		return
	}
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(pos.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
