package toasts

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// StackSelector is the element the stream patches.
const StackSelector = "#toasts"

// stream keeps the client's toast stack in sync with the queue until the
// client disconnects or the queue is closed. Only this queue's events are
// rendered, so the ids in the markup are always ids of this queue.
func (m *module) stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub := m.queue.Subscribe(ctx)
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	m.log.LogAttrs(ctx, slog.LevelDebug, "toast stream opened",
		logger.Subscribers(m.queue.Subscribers()),
	)

	if err := m.patch(sse, m.queue.Notifications()); err != nil {
		m.log.LogAttrs(ctx, slog.LevelDebug, "toast stream closed", logger.Error(err))
		return
	}

	events := sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.LogAttrs(ctx, slog.LevelDebug, "toast stream closed")
			return
		case msg, ok := <-events:
			if !ok {
				m.log.LogAttrs(ctx, slog.LevelDebug, "toast stream closed", logger.Event("queue_closed"))
				return
			}
			if err := m.patch(sse, msg.Data.Visible); err != nil {
				m.log.LogAttrs(ctx, slog.LevelDebug, "toast stream closed", logger.Error(err))
				return
			}
		}
	}
}

func (m *module) patch(sse *datastar.ServerSentEventGenerator, visible []toast.Notification) error {
	err := sse.PatchElementTempl(
		Stack(m.cfg.basePath, visible),
		datastar.WithSelector(StackSelector),
		datastar.WithMode(datastar.ElementPatchModeInner),
	)
	if err != nil {
		return err
	}

	signals, err := json.Marshal(map[string]any{"toastCount": len(visible)})
	if err != nil {
		return err
	}
	return sse.PatchSignals(signals)
}
