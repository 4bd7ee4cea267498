package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/realtime"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/session"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// requireSession returns the authenticated session or an Unauthenticated error.
// Routes behind AuthUser always have one; this guards direct handler use.
func requireSession(c *fiber.Ctx) (*session.Session, error) {
	s := session.FromCtx(c)
	if s == nil {
		return nil, types.Unauthenticated("No active session")
	}
	return s, nil
}

// requireProfile loads the caller's platform profile. A valid identity
// without a profile has not completed signup yet.
func requireProfile(c *fiber.Ctx, db *gorm.DB) (models.UserProfile, error) {
	s, err := requireSession(c)
	if err != nil {
		return models.UserProfile{}, err
	}
	profile, err := services.GetProfile(db, s.UserID)
	if err != nil {
		if types.IsType(err, types.TypeNotFound) {
			return models.UserProfile{}, &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Profile not found; complete signup first",
				Type:    types.TypeNotFound,
			}
		}
		return models.UserProfile{}, err
	}
	return profile, nil
}

// eventPayload marshals v for a feed event. Marshal failures fall back to an
// empty object so the event still carries topic and kind.
func eventPayload(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

// feedEvent builds a feed event for a community topic.
func feedEvent(topic, kind string, payload interface{}) realtime.Event {
	return realtime.Event{
		Topic:   topic,
		Kind:    kind,
		Payload: eventPayload(payload),
	}
}
