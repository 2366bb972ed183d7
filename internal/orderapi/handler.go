// internal/orderapi/handler.go
//
// Pizza – local order API: request handlers.
//
// Context
//   POST /api/order accepts the form's JSON payload, runs the same
//   validation pass as the client, rejects topping ids outside the catalog
//   or listed twice, stores the order, and answers with a `message` the
//   client can show.
//
//   Status codes:
//     201  accepted           {message, order}
//     400  malformed JSON     {message}
//     422  validation failed  {message, errors}
//     500  storage failure    {message}
//
//------------------------------------------------------------------------------

package orderapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/pizzaorder/internal/form"
	"github.com/yanizio/pizzaorder/internal/metrics"
	"github.com/yanizio/pizzaorder/internal/requestinfo"
)

const (
	maxBodyBytes       = 64 << 10
	defaultRecentLimit = 10

	msgBadJSON          = "Invalid JSON body"
	msgStoreFailed      = "Could not save order"
	msgUnknownTopping   = "Unknown topping"
	msgDuplicateTopping = "Duplicate topping"
)

// Handler serves the order endpoints.
type Handler struct {
	store     Store
	def       *form.Definition
	catalog   *form.Catalog
	validator *form.Validator
	log       *zap.SugaredLogger

	now   func() time.Time
	newID func() uuid.UUID
}

// NewHandler wires a Handler.  A nil log falls back to the global logger.
func NewHandler(store Store, def *form.Definition, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.S()
	}
	return &Handler{
		store:     store,
		def:       def,
		catalog:   def.Catalog(),
		validator: form.NewValidator(),
		log:       log,
		now:       time.Now,
		newID:     uuid.New,
	}
}

// orderResponse is the 201 body.
type orderResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Message string      `json:"message"`
	Errors  form.Errors `json:"errors,omitempty"`
}

// CreateOrder handles POST /api/order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req form.OrderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		metrics.OrdersRejectedTotal.WithLabelValues("bad_json").Inc()
		h.log.Debugw("order body rejected", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: msgBadJSON})
		return
	}

	draft := form.Draft{FullName: req.FullName, Size: form.Size(req.Size), Toppings: req.Toppings}
	errs := h.validator.Validate(draft)
	if msg := h.toppingError(req.Toppings); msg != "" {
		if errs == nil {
			errs = form.Errors{}
		}
		errs[form.FieldToppings] = msg
	}
	if !errs.Empty() {
		metrics.OrdersRejectedTotal.WithLabelValues("validation").Inc()
		h.log.Infow("order rejected", "errors", errs)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: errs[errs.Fields()[0]],
			Errors:  errs,
		})
		return
	}

	toppings := req.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	o := Order{
		ID:        h.newID(),
		FullName:  draft.Name(),
		Size:      req.Size,
		Toppings:  toppings,
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.Save(r.Context(), o); err != nil {
		metrics.OrdersRejectedTotal.WithLabelValues("store").Inc()
		h.log.Errorw("order store failed", "id", o.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: msgStoreFailed})
		return
	}

	device, country := "other", ""
	if c := requestinfo.FromContext(r.Context()); c != nil {
		device, country = c.UA.Device, c.Country
	}
	metrics.OrdersAcceptedTotal.WithLabelValues(device).Inc()
	h.log.Infow("order accepted",
		"id", o.ID,
		"size", o.Size,
		"toppings", len(o.Toppings),
		"device", device,
		"country", country,
	)
	writeJSON(w, http.StatusCreated, orderResponse{Message: h.acceptMessage(o), Order: o})
}

// toppingError reports ids outside the catalog, then ids listed more than
// once.  Toppings are a set; "" means the list is acceptable.
func (h *Handler) toppingError(ids []string) string {
	if unknown := h.catalog.Unknown(ids); len(unknown) > 0 {
		return fmt.Sprintf("%s: %s", msgUnknownTopping, strings.Join(unknown, ", "))
	}
	seen := make(map[string]bool, len(ids))
	var dups []string
	for _, id := range ids {
		if seen[id] && !slices.Contains(dups, id) {
			dups = append(dups, id)
		}
		seen[id] = true
	}
	if len(dups) > 0 {
		return fmt.Sprintf("%s: %s", msgDuplicateTopping, strings.Join(dups, ", "))
	}
	return ""
}

// RecentOrders handles GET /api/order/recent?limit=N.
func (h *Handler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	orders, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		h.log.Errorw("recent orders failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Could not load orders"})
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// acceptMessage mirrors the wording customers see in the form.
func (h *Handler) acceptMessage(o Order) string {
	var with string
	switch n := len(o.Toppings); n {
	case 0:
		with = form.NoToppings
	case 1:
		with = "1 topping"
	default:
		with = fmt.Sprintf("%d toppings", n)
	}
	size := strings.ToLower(h.def.SizeLabel(form.Size(o.Size)))
	return fmt.Sprintf("Thank you for your order, %s! Your %s pizza with %s is on the way.", o.FullName, size, with)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Debugw("write response failed", "err", err)
	}
}
