// internal/orderapi/handler_test.go
//
// Unit-tests for the order API routes.
//
// Context
// -------
// Requests go through NewRouter so the middleware chain (request log,
// security headers, CORS) is exercised alongside the handlers.  These tests
// verify:
//
//   • Valid order           → 201, message, stored
//   • Invalid fields        → 422, per-field errors, nothing stored
//   • Unknown or repeated   → 422 on toppings
//     topping ids
//   • Malformed JSON        → 400
//   • Store failure         → 500
//   • Recent orders listing and the form Submitter end to end
//   • Accepted orders counted by client device
//
// Run: go test ./internal/orderapi -v

package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/yanizio/pizzaorder/internal/form"
	"github.com/yanizio/pizzaorder/internal/metrics"
)

var fixedID = uuid.MustParse("0b7f5a4e-3c2d-4e1f-9a8b-7c6d5e4f3a2b")

type failingStore struct{}

func (failingStore) Save(context.Context, Order) error { return errors.New("disk full") }
func (failingStore) Recent(context.Context, int) ([]Order, error) {
	return nil, errors.New("disk full")
}

func newTestRouter(store Store) http.Handler {
	h := NewHandler(store, form.DefaultDefinition(), zap.NewNop().Sugar())
	h.now = func() time.Time { return time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC) }
	h.newID = func() uuid.UUID { return fixedID }
	return NewRouter(h, RouterOptions{CORSOrigins: []string{"*"}, Log: zap.NewNop().Sugar()})
}

func postOrder(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateOrder_Accepted(t *testing.T) {
	store := NewMemoryStore(10)
	rr := postOrder(t, newTestRouter(store), `{"fullName":" Alice ","size":"L","toppings":["1","3"]}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body)
	}
	var resp orderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "Thank you for your order, Alice! Your large pizza with 2 toppings is on the way."
	if resp.Message != want {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Order.ID != fixedID || resp.Order.FullName != "Alice" {
		t.Fatalf("order = %+v", resp.Order)
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("security headers missing")
	}

	stored, _ := store.Recent(context.Background(), 10)
	if len(stored) != 1 || stored[0].ID != fixedID {
		t.Fatalf("stored = %v", stored)
	}
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string]string
	}{
		{
			name: "short name and bad size",
			body: `{"fullName":"Al","size":"XL","toppings":[]}`,
			wantFields: map[string]string{
				form.FieldFullName: form.MsgFullNameTooShort,
				form.FieldSize:     form.MsgSizeIncorrect,
			},
		},
		{
			name:       "missing size",
			body:       `{"fullName":"Alice"}`,
			wantFields: map[string]string{form.FieldSize: form.MsgSizeRequired},
		},
		{
			name:       "unknown topping",
			body:       `{"fullName":"Alice","size":"S","toppings":["1","42"]}`,
			wantFields: map[string]string{form.FieldToppings: "Unknown topping: 42"},
		},
		{
			name:       "repeated topping",
			body:       `{"fullName":"Alice","size":"L","toppings":["1","3","1","1"]}`,
			wantFields: map[string]string{form.FieldToppings: "Duplicate topping: 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(10)
			rr := postOrder(t, newTestRouter(store), tt.body)

			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rr.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Errors) != len(tt.wantFields) {
				t.Fatalf("errors = %v, want %v", resp.Errors, tt.wantFields)
			}
			for f, msg := range tt.wantFields {
				if resp.Errors[f] != msg {
					t.Fatalf("errors[%s] = %q, want %q", f, resp.Errors[f], msg)
				}
			}
			if resp.Message == "" {
				t.Fatal("top-level message empty")
			}
			if store.lru.Len() != 0 {
				t.Fatal("invalid order was stored")
			}
		})
	}
}

func TestCreateOrder_BadJSON(t *testing.T) {
	rr := postOrder(t, newTestRouter(NewMemoryStore(1)), `{"fullName":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), msgBadJSON) {
		t.Fatalf("body = %s", rr.Body)
	}
}

func TestCreateOrder_StoreFailure(t *testing.T) {
	rr := postOrder(t, newTestRouter(failingStore{}), `{"fullName":"Alice","size":"M"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestRecentOrders(t *testing.T) {
	store := NewMemoryStore(10)
	_ = store.Save(context.Background(), Order{ID: uuid.New(), FullName: "Bob", Size: "S", Toppings: []string{}})
	h := newTestRouter(store)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/order/recent?limit=5", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got []Order
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil || len(got) != 1 || got[0].FullName != "Bob" {
		t.Fatalf("recent = %v, err %v", got, err)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/order/recent?limit=-1", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("negative limit status = %d, want 400", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(NewMemoryStore(1)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || !bytes.Contains(rr.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("healthz = %d %s", rr.Code, rr.Body)
	}
}

// The form client and this API must agree on the wire format.
func TestSubmitterAgainstAPI(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(NewMemoryStore(10)))
	defer srv.Close()

	cat := form.DefaultCatalog()
	st := form.NewState(cat)
	st.SetFullName("Alice")
	st.SetSize(form.SizeLarge)
	_ = st.ToggleTopping("1")
	_ = st.ToggleTopping("3")

	snap, err := form.NewSession(st, form.NewSubmitter(srv.URL, cat)).Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := "Thank you for your order, Alice! Your L pizza with Pepperoni, Pineapple is on the way."
	if snap.Result.Success != want {
		t.Fatalf("success = %q", snap.Result.Success)
	}
	if !snap.Draft.Empty() {
		t.Fatalf("draft not reset: %+v", snap.Draft)
	}
}

func TestCreateOrder_CountsByDevice(t *testing.T) {
	bots := metrics.OrdersAcceptedTotal.WithLabelValues("bot")
	before := testutil.ToFloat64(bots)

	req := httptest.NewRequest(http.MethodPost, "/api/order",
		strings.NewReader(`{"fullName":"Crawler","size":"S","toppings":[]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	rr := httptest.NewRecorder()
	newTestRouter(NewMemoryStore(10)).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body)
	}
	if got := testutil.ToFloat64(bots) - before; got != 1 {
		t.Fatalf("bot orders counted = %v, want 1", got)
	}
}
