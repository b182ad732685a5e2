package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

var (
	salesman    = entities.Actor{ID: "s-1", Role: entities.RoleSalesman}
	storekeeper = entities.Actor{ID: "k-1", Role: entities.RoleStorekeeper}
	checker     = entities.Actor{ID: "c-1", Role: entities.RoleChecker}
	biller      = entities.Actor{ID: "b-1", Role: entities.RoleBiller}
	admin       = entities.Actor{ID: "adm", Role: entities.RoleAdmin, IsAdmin: true}
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ActorMiddleware())
	return r
}

func serve(r *gin.Engine, method, path string, body string, actor *entities.Actor) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set(HeaderActorID, actor.ID)
		req.Header.Set(HeaderActorRole, string(actor.Role))
		if actor.IsAdmin {
			req.Header.Set(HeaderActorAdmin, "true")
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not a json object: %s", w.Body.String())
	}
	return body
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		key  string
	}{
		{"invalid input", usecase.ErrInvalidOrderID, http.StatusBadRequest, "INVALID_REQUEST"},
		{"invalid payload", usecase.ErrInvalidMPPayload, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unauthorized", entities.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
		{"cancelled", entities.ErrOrderCancelled, http.StatusConflict, "ORDER_CANCELLED"},
		{"guard", entities.Guard("not all items in stock"), http.StatusConflict, "TRANSITION_NOT_ALLOWED"},
		{"not billed", usecase.ErrOrderNotBilled, http.StatusConflict, "TRANSITION_NOT_ALLOWED"},
		{"claimed", &entities.AlreadyClaimed{Resource: "order o-1", Role: entities.RoleChecker, By: "c-2"}, http.StatusConflict, "ALREADY_CLAIMED"},
		{"limit", &entities.LimitExceeded{Resource: "line images", Limit: 3}, http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
		{"not found", &entities.NotFound{Kind: "order", ID: "o-9"}, http.StatusNotFound, "NOT_FOUND"},
		{"payment not found", usecase.ErrBillPaymentNotFound, http.StatusNotFound, "PAYMENT_NOT_FOUND"},
		{"gateway bad request", usecase.ErrPaymentGatewayBadRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"gateway customer", usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest, "PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND"},
		{"gateway users", usecase.ErrPaymentGatewayInvalidUsers, http.StatusBadRequest, "PAYMENT_PROVIDER_INVALID_USERS"},
		{"gateway unauthorized", usecase.ErrPaymentGatewayUnauthorized, http.StatusUnauthorized, "PAYMENT_PROVIDER_UNAUTHORIZED"},
		{"gateway missing", usecase.ErrPaymentGatewayNotConfigured, http.StatusServiceUnavailable, "PAYMENT_PROVIDER_NOT_CONFIGURED"},
		{"race", entities.ErrConcurrentUpdate, http.StatusConflict, "CONCURRENT_UPDATE"},
		{"storage", &entities.StorageError{Op: "load", Err: errors.New("timeout")}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"other", errors.New("other"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(tc.err)
			if got.HTTPStatus != tc.code || got.Code != tc.key {
				t.Fatalf("for err %v expected %d %s, got %d %s", tc.err, tc.code, tc.key, got.HTTPStatus, got.Code)
			}
		})
	}
}

func TestActorMiddleware(t *testing.T) {
	r := newTestRouter()
	var seen entities.Actor
	r.POST("/whoami", func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		seen = actor
		c.Status(http.StatusNoContent)
	})

	t.Run("missing headers", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/whoami", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if w.Header().Get(HeaderRequestID) == "" {
			t.Fatalf("request id should be generated")
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/whoami", "", &entities.Actor{ID: "x", Role: "janitor"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("admin header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/whoami", nil)
		req.Header.Set(HeaderActorID, " k-1 ")
		req.Header.Set(HeaderActorRole, "Storekeeper")
		req.Header.Set(HeaderActorAdmin, "1")
		req.Header.Set(HeaderRequestID, "req-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		want := entities.Actor{ID: "k-1", Role: entities.RoleStorekeeper, IsAdmin: true}
		if seen != want {
			t.Fatalf("expected %+v, got %+v", want, seen)
		}
		if w.Header().Get(HeaderRequestID) != "req-1" {
			t.Fatalf("request id should be echoed")
		}
	})

	t.Run("admin role implies admin", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/whoami", "", &entities.Actor{ID: "adm", Role: entities.RoleAdmin})
		if w.Code != http.StatusNoContent || !seen.IsAdmin {
			t.Fatalf("expected admin actor, got %d %+v", w.Code, seen)
		}
	})
}
