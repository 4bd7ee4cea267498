package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/realtime"
	"github.com/momentumafrica/momentum-api/internal/services"
)

// FeedHandler streams community feed events over server-sent events
type FeedHandler struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Publisher *realtime.Publisher
}

const feedHeartbeat = 15 * time.Second

// Subscribe handles GET /api/feed/:communityId
// @Summary Community feed stream
// @Description Server-sent event stream of post, reply and collaboration
// @Description events for one community. Only the latest undelivered event is
// @Description retained per subscriber; slow consumers observe the newest
// @Description state, not a backlog.
// @Tags Feed
// @Produce text/event-stream
// @Param communityId path string true "Community ID"
// @Success 200 {string} string "event stream"
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /feed/{communityId} [get]
func (h *FeedHandler) Subscribe(c *fiber.Ctx) error {
	communityID := c.Params("communityId")

	if _, err := requireSession(c); err != nil {
		return err
	}
	if _, err := services.GetCommunity(h.DB, communityID); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	sub := h.Publisher.Hub().Subscribe(communityID)
	log := h.Log.With("topic", communityID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Cancel()

		ticker := time.NewTicker(feedHeartbeat)
		defer ticker.Stop()

		for {
			select {
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if err := writeEvent(w, ev); err != nil {
					log.Debug("feed client disconnected", "error", err)
					return
				}
			case <-ticker.C:
				// Heartbeat keeps proxies from closing idle streams and
				// surfaces dead clients so the subscription gets released.
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, ev realtime.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data); err != nil {
		return err
	}
	return w.Flush()
}
