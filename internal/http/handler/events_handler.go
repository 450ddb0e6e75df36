package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/harborline/caseflow-api/internal/bus"
	"go.uber.org/zap"
)

// EventsHandler streams bus events to clients over Server-Sent Events.
// Events are fan-out only; a client that connects late does not receive
// events published before the subscription.
type EventsHandler struct {
	bus    *bus.Bus
	logger *zap.Logger
}

func NewEventsHandler(eventBus *bus.Bus, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		bus:    eventBus,
		logger: logger,
	}
}

// Stream godoc
// @Summary Subscribe to server events
// @Description Server-Sent Events stream of caseUpdated, customerUpdated and documentCreated events. Each SSE event name matches the bus event name; the data field carries the event payload as JSON.
// @Tags Events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /events [get]
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Buffered so a slow client cannot block the publisher. If the buffer
	// fills, events for this client are dropped.
	events := make(chan bus.Event, 64)
	unsubscribe := h.bus.Subscribe(func(ev bus.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Warn("failed to marshal event",
					zap.String("event", ev.Name()),
					zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name(), payload)
			flusher.Flush()
		}
	}
}
