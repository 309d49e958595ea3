package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Gab661-coder/Gabinvest/internal/domain"
	"github.com/Gab661-coder/Gabinvest/internal/repository"
	"github.com/Gab661-coder/Gabinvest/internal/service"
)

// Handler wires HTTP routes to domain services. It is the presentation
// boundary: every domain error is recovered here and rendered as a single
// transient message, never retried or escalated.
type Handler struct {
	sessions    service.SessionService
	investments service.InvestmentService
	logger      *logrus.Logger
}

func NewHandler(sessions service.SessionService, investments service.InvestmentService, logger *logrus.Logger) *Handler {
	return &Handler{
		sessions:    sessions,
		investments: investments,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogMiddleware(h.logger))

	api := router.Group("/api")
	{
		api.POST("/signup", h.signup)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/session", h.session)
		api.GET("/dashboard", h.dashboard)
		api.GET("/plans", h.listPlans)
		api.POST("/investments", h.initiateInvestment)
		api.POST("/investments/confirm", h.confirmInvestment)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type initiateInvestmentRequest struct {
	Plan   string  `json:"plan" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type confirmInvestmentRequest struct {
	PaymentProof string `json:"paymentProof"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.sessions.Signup(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created! Welcome bonus of ₦1,000 added!",
		"user":    userToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    userToResponse(user),
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.investments.ClearPending()
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully!"})
}

func (h *Handler) session(c *gin.Context) {
	user, ok := h.sessions.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

func (h *Handler) dashboard(c *gin.Context) {
	user, ok := h.sessions.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	investments := make([]InvestmentResponse, len(user.Investments))
	for i := range user.Investments {
		investments[i] = investmentToResponse(user.Investments[i])
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Balance:       user.Balance,
		TotalInvested: user.TotalInvested,
		TotalReturns:  user.TotalReturns,
		Investments:   investments,
	})
}

func (h *Handler) listPlans(c *gin.Context) {
	plans := domain.Plans()
	resp := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		terms := plan.Terms()
		resp[i] = PlanResponse{
			Name:     string(plan),
			Minimum:  terms.Minimum,
			Rate:     terms.Rate,
			Duration: terms.Duration,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) initiateInvestment(c *gin.Context) {
	var req initiateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidate, err := h.investments.Initiate(c.Request.Context(), req.Plan, req.Amount)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Confirm your payment to complete the investment.",
		"pending": PendingInvestmentResponse{
			Plan:     string(candidate.Plan),
			Amount:   candidate.Amount,
			Rate:     candidate.Terms.Rate,
			Duration: candidate.Terms.Duration,
		},
	})
}

func (h *Handler) confirmInvestment(c *gin.Context) {
	var req confirmInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investment, err := h.investments.Confirm(c.Request.Context(), req.PaymentProof)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Investment successful! Payment is being processed.",
		"investment": investmentToResponse(investment),
	})
}

func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownPlan),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrMissingProof),
		errors.Is(err, service.ErrNoPendingInvestment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// UserResponse is the user summary rendered to clients. The plaintext
// password stays in the stored records and is never echoed here.
type UserResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Balance       float64 `json:"balance"`
	TotalInvested float64 `json:"totalInvested"`
	TotalReturns  float64 `json:"totalReturns"`
	JoinDate      string  `json:"joinDate"`
}

type InvestmentResponse struct {
	ID        int64   `json:"id"`
	Plan      string  `json:"plan"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Duration  int     `json:"duration"`
	StartDate string  `json:"startDate"`
	Status    string  `json:"status"`
}

type DashboardResponse struct {
	Balance       float64              `json:"balance"`
	TotalInvested float64              `json:"totalInvested"`
	TotalReturns  float64              `json:"totalReturns"`
	Investments   []InvestmentResponse `json:"investments"`
}

type PlanResponse struct {
	Name     string  `json:"name"`
	Minimum  float64 `json:"minimum"`
	Rate     float64 `json:"rate"`
	Duration int     `json:"duration"`
}

type PendingInvestmentResponse struct {
	Plan     string  `json:"plan"`
	Amount   float64 `json:"amount"`
	Rate     float64 `json:"rate"`
	Duration int     `json:"duration"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Balance:       user.Balance,
		TotalInvested: user.TotalInvested,
		TotalReturns:  user.TotalReturns,
		JoinDate:      user.JoinDate.Format(time.RFC3339),
	}
}

func investmentToResponse(inv domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:        inv.ID,
		Plan:      string(inv.Plan),
		Amount:    inv.Amount,
		Rate:      inv.Rate,
		Duration:  inv.Duration,
		StartDate: inv.StartDate.Format(time.RFC3339),
		Status:    string(inv.Status),
	}
}
