// Package http exposes the order service over the legacy route layout:
// /api/orders/current/{userId}/... for active-order mutation and
// /api/orders/completed/{userId} for history. Any business error maps to a
// server-error response carrying the rendered message.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cpearson/order-service/internal/orders/application"
	"github.com/cpearson/order-service/internal/orders/domain"
	"github.com/cpearson/order-service/pkg/pipeline"
)

type Handler struct {
	log      *slog.Logger
	orders   *application.Service
	products *application.ProductService
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, orders *application.Service, products *application.ProductService) *Handler {
	return &Handler{
		log:      log,
		orders:   orders,
		products: products,
		tracer:   otel.Tracer("orders-http"),
	}
}

type orderDTO struct {
	ID                  int64         `json:"id"`
	UserID              int64         `json:"userId"`
	OrderLines          map[int64]int `json:"orderLines"`
	CompletionTimestamp *int64        `json:"completionTimestamp"`
}

func orderDTOFrom(o domain.Order) orderDTO {
	dto := orderDTO{
		ID:         o.ID,
		UserID:     o.UserID,
		OrderLines: o.Lines,
	}
	if o.CompletedAt.IsSome() {
		ts := o.CompletedAt.Unwrap()
		dto.CompletionTimestamp = &ts
	}
	return dto
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Get("/{id}", h.getProduct)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/completed/{userId}", h.completedOrders)
			r.Route("/current/{userId}", func(r chi.Router) {
				r.Get("/", h.currentOrder)
				r.Get("/addOneOf/{productId}", h.addProduct)
				r.Get("/removeOneOf/{productId}", h.removeProduct)
				r.Get("/setQuantity/{productId}/{quantity}", h.setQuantity)
				r.Get("/clear", h.clearOrder)
				r.Get("/complete", h.completeOrder)
			})
		})
	})
	return r
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	products, err := h.products.GetAll()(ctx)
	if err != nil {
		h.fault(w, "list products", err)
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	found, err := h.products.GetByID(id)(ctx)
	if err != nil {
		h.fault(w, "get product", err)
		return
	}
	if found.IsNone() {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, found.Unwrap())
}

func (h *Handler) currentOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCurrentOrder")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	h.respondOrder(ctx, w, h.orders.GetOrCreateActiveOrderForUser(userID))
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddProduct")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	productID, ok := h.pathID(w, r, "productId")
	if !ok {
		return
	}
	h.respondOrder(ctx, w, h.orders.AddProductToActiveOrder(userID, productID))
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveProduct")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	productID, ok := h.pathID(w, r, "productId")
	if !ok {
		return
	}
	h.respondOrder(ctx, w, h.orders.RemoveProductFromActiveOrder(userID, productID))
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SetQuantity")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	productID, ok := h.pathID(w, r, "productId")
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(chi.URLParam(r, "quantity"))
	if err != nil {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}
	h.respondOrder(ctx, w, h.orders.SetProductQuantityOnActiveOrder(userID, productID, quantity))
}

func (h *Handler) clearOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClearOrder")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	h.respondOrder(ctx, w, h.orders.ClearProductsForActiveOrder(userID))
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompleteOrder")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	h.respondOrder(ctx, w, h.orders.CompleteActiveOrder(userID))
}

func (h *Handler) completedOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCompletedOrders")
	defer span.End()

	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	res, err := h.orders.GetCompletedOrdersForUser(userID)(ctx)
	if err != nil {
		h.fault(w, "completed orders", err)
		return
	}
	if !res.IsOk() {
		http.Error(w, res.UnwrapErr().Error(), http.StatusInternalServerError)
		return
	}
	orders := res.Unwrap()
	dtos := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, orderDTOFrom(o))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// respondOrder unwraps an order operation: 200 with the order DTO on success,
// 500 with the rendered message on a business error, 500 without detail on a
// fault.
func (h *Handler) respondOrder(ctx context.Context, w http.ResponseWriter, task pipeline.Task[application.OrderResult]) {
	res, err := task(ctx)
	if err != nil {
		h.fault(w, "order operation", err)
		return
	}
	if !res.IsOk() {
		http.Error(w, res.UnwrapErr().Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, orderDTOFrom(res.Unwrap()))
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("response encode failed", "err", err)
	}
}

func (h *Handler) fault(w http.ResponseWriter, op string, err error) {
	h.log.Error("handler fault", "op", op, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
