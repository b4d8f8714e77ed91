package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
	"github.com/AlexBaum-ai/outreach-backend/internal/services"
)

func newBlockRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.POST("/blocks", h.CreateBlock)
	r.DELETE("/blocks/:organizationID/:recipientID", h.DeleteBlock)
	return r
}

func TestCreateBlock_BadInput_Success_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Bad JSON -> 400
	{
		h := New(stubDispatcher{}, stubTemplates{}, stubBlocks{}, nil, time.Hour, 0)
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewBufferString("{bad"))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bad json -> %d", w.Code)
		}
	}

	// Whitespace-only identifiers -> 400, service never called
	{
		called := false
		b := stubBlocks{block: func(context.Context, string, string, string) (*domain.Block, error) {
			called = true
			return nil, nil
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/blocks",
			bytes.NewBufferString(`{"recipient_id":"   ","organization_id":"org-1"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("blank recipient -> %d", w.Code)
		}
		if called {
			t.Fatalf("service should not run for blank identifiers")
		}
	}

	// Success -> 201 with the created block
	{
		var got struct{ rid, oid, reason string }
		b := stubBlocks{block: func(_ context.Context, rid, oid, reason string) (*domain.Block, error) {
			got.rid, got.oid, got.reason = rid, oid, reason
			return &domain.Block{ID: "b1", RecipientID: rid, OrganizationID: oid, Reason: reason}, nil
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/blocks",
			bytes.NewBufferString(`{"recipient_id":"cand-42","organization_id":"org-1","reason":"unsolicited outreach"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
		}
		if got.rid != "cand-42" || got.oid != "org-1" || got.reason != "unsolicited outreach" {
			t.Fatalf("service args mismatch: %+v", got)
		}
		var out domain.Block
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if out.ID != "b1" {
			t.Fatalf("unexpected block: %+v", out)
		}
	}

	// Duplicate -> 409 conflict
	{
		b := stubBlocks{block: func(context.Context, string, string, string) (*domain.Block, error) {
			return nil, services.ErrAlreadyBlocked
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/blocks",
			bytes.NewBufferString(`{"recipient_id":"cand-42","organization_id":"org-1"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusConflict {
			t.Fatalf("duplicate -> %d", w.Code)
		}
		var er ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
			t.Fatalf("json: %v", err)
		}
		if er.Code != ErrCodeConflict {
			t.Fatalf("code = %q", er.Code)
		}
	}

	// Service-level validation -> 400
	{
		b := stubBlocks{block: func(context.Context, string, string, string) (*domain.Block, error) {
			return nil, services.ErrInvalidBlock
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/blocks",
			bytes.NewBufferString(`{"recipient_id":"cand-42","organization_id":"org-1"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("invalid block -> %d", w.Code)
		}
	}

	// Unexpected error -> 500
	{
		b := stubBlocks{block: func(context.Context, string, string, string) (*domain.Block, error) {
			return nil, gorm.ErrInvalidField
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/blocks",
			bytes.NewBufferString(`{"recipient_id":"cand-42","organization_id":"org-1"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("internal -> %d", w.Code)
		}
	}
}

func TestDeleteBlock_Success_NotFound_Error(t *testing.T) {
	gin.SetMode(gin.TestMode)

	del := func(h *Handlers) *httptest.ResponseRecorder {
		r := newBlockRouter(h)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/blocks/org-1/cand-42", nil)
		r.ServeHTTP(w, req)
		return w
	}

	// Success -> 204, path params passed through
	{
		var got struct{ rid, oid string }
		b := stubBlocks{unblock: func(_ context.Context, rid, oid string) error {
			got.rid, got.oid = rid, oid
			return nil
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		w := del(h)
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete -> %d", w.Code)
		}
		if got.rid != "cand-42" || got.oid != "org-1" {
			t.Fatalf("service args mismatch: %+v", got)
		}
	}

	// Missing block -> 404
	{
		b := stubBlocks{unblock: func(context.Context, string, string) error {
			return services.ErrBlockNotFound
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		if w := del(h); w.Code != http.StatusNotFound {
			t.Fatalf("missing block -> %d", w.Code)
		}
	}

	// Unexpected error -> 500
	{
		b := stubBlocks{unblock: func(context.Context, string, string) error {
			return gorm.ErrInvalidField
		}}
		h := New(stubDispatcher{}, stubTemplates{}, b, nil, time.Hour, 0)
		if w := del(h); w.Code != http.StatusInternalServerError {
			t.Fatalf("internal -> %d", w.Code)
		}
	}
}
