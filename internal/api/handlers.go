package api

import (
	"net/http"
	"strings"
	"time"

	"clienthub/internal/models"
	"clienthub/internal/services"
	"clienthub/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler holds service dependencies
type Handler struct {
	store            *store.Store
	messagingService *services.MessagingService
	dashboardService *services.DashboardService
	renewalService   *services.RenewalService
	authService      *services.AuthService
}

// NewHandler creates a new API handler
func NewHandler(
	st *store.Store,
	messagingService *services.MessagingService,
	dashboardService *services.DashboardService,
	renewalService *services.RenewalService,
	authService *services.AuthService,
) *Handler {
	return &Handler{
		store:            st,
		messagingService: messagingService,
		dashboardService: dashboardService,
		renewalService:   renewalService,
		authService:      authService,
	}
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api/v1")
	{
		// Authentication
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/validate", handler.ValidateToken)
		api.POST("/auth/change-password", handler.ChangePassword)

		// Client management
		api.GET("/clients", handler.ListClients)
		api.POST("/clients", handler.CreateClient)
		api.GET("/clients/:id", handler.GetClient)
		api.PUT("/clients/:id", handler.UpdateClient)
		api.DELETE("/clients/:id", handler.DeleteClient)

		// Trash bin
		api.GET("/trash", handler.ListTrash)
		api.GET("/trash/expired", handler.ListLongExpired)
		api.POST("/trash/:id/restore", handler.RestoreClient)
		api.DELETE("/trash/:id", handler.PermanentDeleteClient)

		// Dashboard
		api.GET("/dashboard/metrics", handler.GetMetrics)
		api.GET("/dashboard/chart", handler.GetExpiryChart)
		api.GET("/dashboard/activity", handler.GetActivity)

		// Messaging center
		api.GET("/messaging", handler.ListEligible)
		api.POST("/messaging/:id/send", handler.SendMessage)
		api.POST("/messaging/mark-all-sent", handler.MarkAllSent)

		// Website renewals
		api.GET("/renewals", handler.ListRenewals)
		api.POST("/renewals/:id/renew", handler.MarkRenewed)

		// System settings
		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.UpdateSettings)

		// Integration points without a backing implementation yet
		api.POST("/backup/export", handler.notImplemented("backup export"))
		api.POST("/backup/restore", handler.notImplemented("backup restore"))
		api.POST("/razorpay/sync", handler.notImplemented("razorpay sync"))
		api.POST("/razorpay/webhook", handler.notImplemented("razorpay webhook"))
		api.DELETE("/dashboard/activity", handler.notImplemented("activity log clearing"))
	}
}

// clientView is a client annotated with derived expiry state for list views
type clientView struct {
	models.Client
	DaysLeft    int    `json:"days_left"`
	ExpiryLabel string `json:"expiry_label"`
}

func toView(c models.Client, now time.Time) clientView {
	daysLeft := services.DaysLeft(c.ExpiryDate, now)
	return clientView{
		Client:      c,
		DaysLeft:    daysLeft,
		ExpiryLabel: services.ExpiryLabel(daysLeft),
	}
}

type createClientRequest struct {
	Name       string    `json:"name" binding:"required"`
	Phone      string    `json:"phone" binding:"required"`
	Email      string    `json:"email"`
	Website    string    `json:"website" binding:"required"`
	Price      float64   `json:"price" binding:"required,gt=0"`
	ExpiryDate time.Time `json:"expiry_date" binding:"required"`
	Status     string    `json:"status"`
	AutoPay    bool      `json:"auto_pay"`
	Notes      string    `json:"notes"`
}

// ListClients retrieves active clients, optionally filtered by a search
// query and a status
func (h *Handler) ListClients(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))
	status := c.Query("status")
	now := time.Now()

	views := make([]clientView, 0)
	for _, client := range h.store.Clients() {
		if search != "" &&
			!strings.Contains(strings.ToLower(client.Name), search) &&
			!strings.Contains(client.Phone, c.Query("search")) &&
			!strings.Contains(strings.ToLower(client.Website), search) {
			continue
		}
		if status != "" && status != "all" && client.Status != status {
			continue
		}
		views = append(views, toView(client, now))
	}

	c.JSON(http.StatusOK, views)
}

// CreateClient adds a new client
func (h *Handler) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.store.HasDuplicateContact(req.Phone, req.Website, "") {
		c.JSON(http.StatusConflict, gin.H{"error": "A client with this phone or website already exists"})
		return
	}

	client := h.store.AddClient(models.Client{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Website:    req.Website,
		Price:      req.Price,
		ExpiryDate: req.ExpiryDate,
		Status:     req.Status,
		AutoPay:    req.AutoPay,
		Notes:      req.Notes,
	})

	c.JSON(http.StatusCreated, client)
}

// GetClient retrieves a single active client
func (h *Handler) GetClient(c *gin.Context) {
	client, ok := h.store.Client(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, toView(client, time.Now()))
}

// UpdateClient merges a partial edit into a client
func (h *Handler) UpdateClient(c *gin.Context) {
	var upd models.ClientUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	current, ok := h.store.Client(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	phone := current.Phone
	if upd.Phone != nil {
		phone = *upd.Phone
	}
	website := current.Website
	if upd.Website != nil {
		website = *upd.Website
	}
	if h.store.HasDuplicateContact(phone, website, id) {
		c.JSON(http.StatusConflict, gin.H{"error": "A client with this phone or website already exists"})
		return
	}

	client, ok := h.store.UpdateClient(id, upd)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient moves a client to the trash bin
func (h *Handler) DeleteClient(c *gin.Context) {
	client, ok := h.store.DeleteClient(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client moved to trash", "client": client})
}

// ListTrash retrieves trashed clients
func (h *Handler) ListTrash(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Trashed())
}

// ListLongExpired retrieves active clients expired beyond the danger-zone
// window
func (h *Handler) ListLongExpired(c *gin.Context) {
	out := h.renewalService.LongExpired(time.Now())
	if out == nil {
		out = []services.RenewalDue{}
	}
	c.JSON(http.StatusOK, out)
}

// RestoreClient moves a client from the trash back to the active set
func (h *Handler) RestoreClient(c *gin.Context) {
	client, ok := h.store.RestoreClient(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found in trash"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// PermanentDeleteClient removes a client from the trash irreversibly
func (h *Handler) PermanentDeleteClient(c *gin.Context) {
	if !h.store.PermanentDeleteClient(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found in trash"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client permanently deleted"})
}

// GetMetrics retrieves dashboard statistics
func (h *Handler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Metrics(time.Now()))
}

// GetExpiryChart retrieves the expiry timeline buckets
func (h *Handler) GetExpiryChart(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.ExpiryChart(time.Now()))
}

// GetActivity retrieves the activity log, newest first
func (h *Handler) GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Activity())
}

// ListEligible retrieves the outreach queue with per-category counts
func (h *Handler) ListEligible(c *gin.Context) {
	eligible := h.messagingService.Eligible(time.Now())
	counts := services.Counts(eligible)

	if category := c.Query("category"); category != "" && category != "all" {
		eligible = services.FilterCategory(eligible, services.ExpiryCategory(category))
	}
	if eligible == nil {
		eligible = []services.EligibleClient{}
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": eligible,
		"counts":  counts,
	})
}

// SendMessage composes the category message for a client and returns the
// deep link; the client is stamped and a message_sent entry is logged
func (h *Handler) SendMessage(c *gin.Context) {
	result, ok := h.messagingService.Send(c.Param("id"), time.Now())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkAllSent stamps every currently eligible client as messaged
func (h *Handler) MarkAllSent(c *gin.Context) {
	category := services.ExpiryCategory(c.Query("category"))
	if category == "all" {
		category = ""
	}

	marked := h.messagingService.MarkAllSent(category, time.Now())
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// ListRenewals retrieves auto-pay clients whose hosting needs manual renewal
func (h *Handler) ListRenewals(c *gin.Context) {
	out := h.renewalService.Due(time.Now())
	if out == nil {
		out = []services.RenewalDue{}
	}
	c.JSON(http.StatusOK, out)
}

// MarkRenewed extends a client's expiry by one year
func (h *Handler) MarkRenewed(c *gin.Context) {
	client, ok := h.renewalService.MarkRenewed(c.Param("id"), time.Now())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// GetSettings retrieves the session settings
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Settings())
}

// UpdateSettings replaces the session settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.UpdateSettings(settings)
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}

// notImplemented answers for surfaces that are integration points only.
// TODO: backup export/restore need an agreed snapshot format, the Razorpay
// endpoints need API credentials and a subscription mapping.
func (h *Handler) notImplemented(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": feature + " is not implemented"})
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if !h.authService.Authenticate(loginReq.Username, loginReq.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.authService.GenerateToken(loginReq.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"username": loginReq.Username},
	})
}

// ValidateToken validates a JWT token
func (h *Handler) ValidateToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	claims, err := h.authService.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  gin.H{"username": claims.Username},
	})
}

// ChangePassword handles an admin password change
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		Username    string `json:"username" binding:"required"`
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 6 characters"})
		return
	}

	if err := h.authService.ChangePassword(req.Username, req.OldPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or old password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed, please log in with the new password"})
}
