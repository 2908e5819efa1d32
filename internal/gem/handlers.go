package gem

import (
	"errors"

	"backend-geogems/internal/city"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/users/:user_id/gems", func(c *fiber.Ctx) error {
		includeMined := c.Query("include_mined") == "true"
		views, err := svc.UserFeed(c.Context(), c.Params("user_id"), includeMined)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"gems": views})
	})

	r.Get("/cities/:cityCode/gems", func(c *fiber.Ctx) error {
		top := c.Query("top") == "true"
		views, err := svc.CityFeed(c.Context(), c.Params("cityCode"), top)
		if err != nil {
			if errors.Is(err, city.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "City not found"})
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"gems": views})
	})

	r.Post("/gems/:gem_id/votes", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string   `json:"userId"`
			Type   VoteType `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId required")
		}
		if !body.Type.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "type must be UPVOTE or DOWNVOTE")
		}
		vote, err := svc.CastVote(c.Context(), c.Params("gem_id"), body.UserID, body.Type)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(vote)
	})

	r.Post("/gems", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateGemInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UserID == "" || req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId and title required")
		}
		if !req.Type.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown gem type")
		}
		if !req.Location.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "coordinate out of range")
		}
		for _, m := range req.Media {
			if !m.Type.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "unknown media type")
			}
		}
		created, err := svc.CreateGem(c.Context(), req)
		if err != nil {
			if errors.Is(err, city.ErrNoCities) {
				return fiber.NewError(fiber.StatusBadRequest, "no cities to assign gem to")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}
