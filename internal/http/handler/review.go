package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/model"
	"reviewapi/internal/publicurl"
	"reviewapi/internal/service"
)

// reviewPayload is the public wire shape of a review. Image carries the
// resolved absolute URL, never the raw storage locator.
type reviewPayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Rating    *int      `json:"rating"`
	Text      string    `json:"text"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// adminReviewPayload adds the moderation state for the operator listing.
type adminReviewPayload struct {
	reviewPayload
	Approved bool `json:"approved"`
}

// requestInfo derives the transport context for URL resolution, honoring
// X-Forwarded-Proto so links stay correct behind reverse proxies.
func requestInfo(c *fiber.Ctx) publicurl.Request {
	proto := c.Protocol()
	if fwd := c.Get("X-Forwarded-Proto"); fwd != "" {
		proto = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return publicurl.Request{Proto: proto, Host: c.Hostname()}
}

func toPayload(rev model.Review, resolver publicurl.Resolver, req publicurl.Request) reviewPayload {
	p := reviewPayload{
		ID:        rev.ID,
		Name:      rev.Name,
		City:      rev.City,
		Rating:    rev.Rating,
		Text:      rev.Text,
		CreatedAt: rev.CreatedAt,
	}
	if rev.Image != nil {
		u := resolver.Resolve(*rev.Image, req)
		p.Image = &u
	}
	return p
}

// SubmitReview handles the multipart review submission form
// (fields name, city, rating, text; optional file field image).
func SubmitReview(svc service.IntakeService, resolver publicurl.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.SubmitReviewInput{
			Name: c.FormValue("name"),
			City: c.FormValue("city"),
			Text: c.FormValue("text"),
		}
		if v := c.FormValue("rating"); v != "" {
			// Unparseable ratings are stored as absent, not rejected.
			if n, err := strconv.Atoi(v); err == nil {
				in.Rating = &n
			}
		}

		if fh, err := c.FormFile("image"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "Cannot read uploaded image")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			in.Image = &service.ReviewUpload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			}
		}

		rev, err := svc.Submit(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameTextRequired):
				return writeError(c, fiber.StatusBadRequest, "Name and review text required")
			case errors.Is(err, service.ErrAttachmentTooLarge):
				return writeError(c, fiber.StatusRequestEntityTooLarge, "Image exceeds the 5 MiB limit")
			default:
				return writeError(c, fiber.StatusInternalServerError, "Server error")
			}
		}

		message := "Thank you! Your review is published."
		if !rev.Approved {
			message = "Thank you! Your review is awaiting approval."
		}

		return c.JSON(fiber.Map{
			"ok":      true,
			"message": message,
			"review":  toPayload(*rev, resolver, requestInfo(c)),
		})
	}
}

// ListPublicReviews returns the approved-only feed, newest first. No auth,
// no server-side pagination: the widget slices client-side.
func ListPublicReviews(svc service.FeedService, resolver publicurl.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListApproved(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}

		req := requestInfo(c)
		out := make([]reviewPayload, 0, len(items))
		for _, rev := range items {
			out = append(out, toPayload(rev, resolver, req))
		}
		return c.JSON(fiber.Map{"ok": true, "reviews": out})
	}
}

// ListAdminReviews returns every review in every moderation state.
func ListAdminReviews(svc service.ModerationService, resolver publicurl.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListAll(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}

		req := requestInfo(c)
		out := make([]adminReviewPayload, 0, len(items))
		for _, rev := range items {
			out = append(out, adminReviewPayload{
				reviewPayload: toPayload(rev, resolver, req),
				Approved:      rev.Approved,
			})
		}
		return c.JSON(fiber.Map{"ok": true, "reviews": out})
	}
}

// ApproveReview transitions a review into the public feed.
func ApproveReview(svc service.ModerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid review id")
		}

		if err := svc.Approve(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Review not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Approved"})
	}
}

// DeleteReview removes a review row and best-effort-deletes its attachment.
func DeleteReview(svc service.ModerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid review id")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Review not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Deleted"})
	}
}
