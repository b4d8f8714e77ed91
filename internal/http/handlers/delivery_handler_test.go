package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/services"
)

func postDeliveryEvent(h *Handlers, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/delivery/events", h.PostDeliveryEvent)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/delivery/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPostDeliveryEvent_BadJSON_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(stubDispatcher{}, stubTemplates{}, stubBlocks{}, nil, time.Hour, 0)

	if w := postDeliveryEvent(h, "{bad"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json -> %d", w.Code)
	}
	// message_id and event are both required
	if w := postDeliveryEvent(h, `{"event":"delivered"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing message_id -> %d", w.Code)
	}
	if w := postDeliveryEvent(h, `{"message_id":"msg-1"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing event -> %d", w.Code)
	}
}

func TestPostDeliveryEvent_Success_PassesArgs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	occurred := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	var got struct {
		messageID, event string
		at               time.Time
	}
	d := stubDispatcher{applyEvt: func(_ context.Context, messageID, event string, at time.Time) error {
		got.messageID, got.event, got.at = messageID, event, at
		return nil
	}}
	h := New(d, stubTemplates{}, stubBlocks{}, nil, time.Hour, 0)

	w := postDeliveryEvent(h,
		`{"message_id":"msg-7f3a","event":"read","occurred_at":"2026-08-30T12:00:00Z"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("event -> %d body=%s", w.Code, w.Body.String())
	}
	if got.messageID != "msg-7f3a" || got.event != "read" || !got.at.Equal(occurred) {
		t.Fatalf("service args mismatch: %+v", got)
	}
}

func TestPostDeliveryEvent_ErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(err error) *httptest.ResponseRecorder {
		d := stubDispatcher{applyEvt: func(context.Context, string, string, time.Time) error {
			return err
		}}
		h := New(d, stubTemplates{}, stubBlocks{}, nil, time.Hour, 0)
		return postDeliveryEvent(h, `{"message_id":"msg-1","event":"delivered"}`)
	}

	if w := serve(services.ErrDeliveryMessageNotFound); w.Code != http.StatusNotFound {
		t.Fatalf("unknown message -> %d", w.Code)
	}
	// Backward or unknown transitions surface as a conflict.
	if w := serve(services.ErrInvalidDeliveryEvent); w.Code != http.StatusConflict {
		t.Fatalf("invalid transition -> %d", w.Code)
	}
	if w := serve(gorm.ErrInvalidField); w.Code != http.StatusInternalServerError {
		t.Fatalf("internal -> %d", w.Code)
	}
}
