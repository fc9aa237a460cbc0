package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/theramiway/fintelify/models"
	"github.com/theramiway/fintelify/services"
	"github.com/theramiway/fintelify/store"
)

// server holds the capabilities every handler needs: the three domain
// services, the auth collaborator's DB handle and the JWT secret.
type server struct {
	db        *gorm.DB
	ledger    *services.LedgerService
	goals     *services.GoalService
	insights  *services.InsightService
	jwtSecret []byte
	cors      []string
}

func newServer(cfg Config, db *gorm.DB, ledger *services.LedgerService, goals *services.GoalService, insights *services.InsightService) *server {
	return &server{
		db:        db,
		ledger:    ledger,
		goals:     goals,
		insights:  insights,
		jwtSecret: []byte(cfg.JWTSecret),
		cors:      cfg.CORSOrigins,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cors,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Finance App Backend API is running...")
	})

	api := r.Group("/api")
	api.POST("/transactions", s.createTransaction)
	api.GET("/transactions", s.listTransactions)
	api.DELETE("/transactions/:id", s.deleteTransaction)
	api.POST("/goals", s.createGoal)
	api.GET("/goals", s.listGoals)
	api.PUT("/goals/:id", s.updateGoal)
	api.DELETE("/goals/:id", s.deleteGoal)
	api.POST("/insights", s.createInsight)
	api.GET("/insights", s.listInsights)
	api.DELETE("/insights/:id", s.deleteInsight)

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/refresh", s.refresh)
	auth.POST("/revoke", s.revokeRefresh)
	auth.GET("/me", s.jwtAuthMiddleware(), s.me)

	return r
}

// writeError maps a domain failure to the response contract: validation to
// 400, unknown identifier to 404, anything else to 500.
func (s *server) writeError(c *gin.Context, err error, notFoundMessage string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
	}
}

// parseDate accepts the two formats the dashboard sends: RFC3339 timestamps
// and bare yyyy-mm-dd values from date inputs. Empty means "not provided".
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *server) createTransaction(c *gin.Context) {
	var req struct {
		Description string   `json:"description"`
		Amount      *float64 `json:"amount"`
		Type        string   `json:"type"`
		Category    string   `json:"category"`
		Date        string   `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date"})
		return
	}
	tx, err := s.ledger.Create(c.Request.Context(), services.TransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Date:        date,
	})
	if err != nil {
		s.writeError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (s *server) listTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := s.ledger.List(c.Request.Context(), limit)
	if err != nil {
		s.writeError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *server) deleteTransaction(c *gin.Context) {
	if err := s.ledger.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// goalRequest is shared by create and update: the replace semantics of PUT
// take the exact same document as POST.
type goalRequest struct {
	Title         string   `json:"title"`
	TargetAmount  *float64 `json:"targetAmount"`
	CurrentAmount float64  `json:"currentAmount"`
	Deadline      string   `json:"deadline"`
	Status        string   `json:"status"`
}

func (r goalRequest) input() (services.GoalInput, bool) {
	deadline, ok := parseDate(r.Deadline)
	if !ok {
		return services.GoalInput{}, false
	}
	return services.GoalInput{
		Title:         r.Title,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      deadline,
		Status:        models.GoalStatus(r.Status),
	}, true
}

func (s *server) createGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	in, ok := req.input()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deadline"})
		return
	}
	g, err := s.goals.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err, "Goal not found")
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (s *server) listGoals(c *gin.Context) {
	items, err := s.goals.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Goal not found")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *server) updateGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	in, ok := req.input()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deadline"})
		return
	}
	g, err := s.goals.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err, "Goal not found")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *server) deleteGoal(c *gin.Context) {
	if err := s.goals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err, "Goal not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

func (s *server) createInsight(c *gin.Context) {
	var req struct {
		Text            string `json:"text"`
		Title           string `json:"title"`
		RelatedCategory string `json:"relatedCategory"`
		Date            string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date"})
		return
	}
	insight, err := s.insights.Create(c.Request.Context(), services.InsightInput{
		Text:            req.Text,
		Title:           req.Title,
		RelatedCategory: req.RelatedCategory,
		Date:            date,
	})
	if err != nil {
		s.writeError(c, err, "Insight not found")
		return
	}
	c.JSON(http.StatusCreated, insight)
}

func (s *server) listInsights(c *gin.Context) {
	items, err := s.insights.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Insight not found")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *server) deleteInsight(c *gin.Context) {
	if err := s.insights.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err, "Insight not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Insight deleted successfully"})
}

func (s *server) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		token, err := jwt.Parse(authHeader[7:], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		c.Set("email", email)
		c.Next()
	}
}

func (s *server) issueAccessToken(user models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := RegisterUser(s.db, req.Name, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	// the dashboard stores the token straight from the register response
	tokenString, err := s.issueAccessToken(user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(s.db, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": refreshToken, "name": user.Name, "email": user.Email})
}

func (s *server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(s.db, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	tokenString, err := s.issueAccessToken(user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(s.db, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": refreshToken, "name": user.Name, "email": user.Email})
}

// refresh exchanges a refresh token for a new access token and rotates the refresh token
func (s *server) refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(s.db, req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := s.db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := s.issueAccessToken(user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate: revoke the presented token and hand out a fresh one
	s.db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(s.db, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefresh revokes a given refresh token (useful on logout)
func (s *server) revokeRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(s.db, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := s.db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func (s *server) me(c *gin.Context) {
	emailVal, _ := c.Get("email")
	email, _ := emailVal.(string)
	if email == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing email"})
		return
	}
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": user.Name, "email": user.Email})
}
