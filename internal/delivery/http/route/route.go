package route

import (
	"github.com/ferdian3456/clubconnect/internal/delivery/http"
	"github.com/ferdian3456/clubconnect/internal/delivery/http/middleware"
	"github.com/ferdian3456/clubconnect/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App                    *fiber.App
	AuthMiddleware         *middleware.AuthMiddleware
	AuthRateLimiter        fiber.Handler
	UserController         *http.UserController
	ClubController         *http.ClubController
	MembershipController   *http.MembershipController
	EventController        *http.EventController
	AnnouncementController *http.AnnouncementController
	MessageController      *http.MessageController
	PostController         *http.PostController
}

func (c *RouteConfig) SetupRoute() {
	protected := c.AuthMiddleware.ProtectedRoute()
	optional := c.AuthMiddleware.OptionalRoute()

	c.App.Get("/metrics", metrics.Handler())

	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	if c.AuthRateLimiter != nil {
		authGroup.Use(c.AuthRateLimiter)
	}
	authGroup.Post("/register", c.UserController.Register)
	authGroup.Post("/login", c.UserController.Login)

	userGroup := api.Group("/users", protected)
	userGroup.Get("/me", c.UserController.GetMe)
	userGroup.Post("/logout", c.UserController.Logout)
	userGroup.Get("/me/memberships", c.UserController.GetMyMemberships)
	userGroup.Get("/me/messages", c.UserController.GetInbox)
	userGroup.Patch("/me/messages/:messageId/read", c.UserController.MarkMessageRead)

	// Public and protected club routes share the prefix, so auth is attached per route.
	clubGroup := api.Group("/clubs")
	clubGroup.Get("/", optional, c.ClubController.GetClubs)
	clubGroup.Get("/search", optional, c.ClubController.SearchClubs)
	clubGroup.Get("/:clubId", optional, c.ClubController.GetClub)
	clubGroup.Post("/", protected, c.ClubController.CreateClub)
	clubGroup.Put("/:clubId", protected, c.ClubController.UpdateClub)
	clubGroup.Put("/:clubId/logo", protected, c.ClubController.UpdateClubLogo)
	clubGroup.Get("/:clubId/founders/candidates", protected, c.ClubController.GetFounderCandidates)
	clubGroup.Post("/:clubId/founders", protected, c.ClubController.AssignFounder)

	clubGroup.Post("/:clubId/memberships", protected, c.MembershipController.RequestMembership)
	clubGroup.Get("/:clubId/memberships", protected, c.MembershipController.GetClubMemberships)
	clubGroup.Delete("/:clubId/members/:userId", protected, c.MembershipController.LeaveClub)

	clubGroup.Post("/:clubId/events", protected, c.EventController.CreateEvent)
	clubGroup.Post("/:clubId/announcements", protected, c.AnnouncementController.CreateClubAnnouncement)

	clubGroup.Post("/:clubId/messages/founder", protected, c.MessageController.MessageFounder)
	clubGroup.Get("/:clubId/chat", protected, c.MessageController.GetClubChat)
	clubGroup.Post("/:clubId/chat", protected, c.MessageController.SendChatMessage)

	clubGroup.Get("/:clubId/posts", protected, c.PostController.GetClubPosts)
	clubGroup.Post("/:clubId/posts", protected, c.PostController.CreatePost)

	membershipGroup := api.Group("/memberships", protected)
	membershipGroup.Post("/:membershipId/approve", c.MembershipController.ApproveMembership)
	membershipGroup.Post("/:membershipId/reject", c.MembershipController.RejectMembership)

	eventGroup := api.Group("/events", protected)
	eventGroup.Put("/:eventId/image", c.EventController.UpdateEventImage)

	announcementGroup := api.Group("/announcements")
	announcementGroup.Get("/", c.AnnouncementController.GetGlobalAnnouncements)
	announcementGroup.Post("/", protected, c.AnnouncementController.CreateGlobalAnnouncement)
	announcementGroup.Delete("/:announcementId", protected, c.AnnouncementController.DeleteAnnouncement)

	postGroup := api.Group("/posts", protected)
	postGroup.Post("/:postId/likes", c.PostController.LikePost)
	postGroup.Delete("/:postId/likes", c.PostController.UnlikePost)
}
