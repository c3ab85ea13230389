package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"financas/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/usuarios/cadastro", registerHandler)
	r.POST("/usuarios/login", loginHandler)
	r.POST("/usuarios/refresh", refreshHandler)
	r.POST("/usuarios/revoke", revokeRefreshHandler)
	r.GET("/usuarios", listUsersHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/chatbot", chatbotHandler)

	gastos := authGroup.Group("/gastos")
	gastos.POST("", registerExpenseHandler)
	gastos.GET("", listExpensesHandler)
	gastos.PUT("/:id", updateExpenseHandler)
	gastos.DELETE("/:id", deleteExpenseHandler)
	gastos.GET("/filtrar", expensesByPeriodHandler)
	gastos.GET("/categoria", expensesByCategoryHandler)
	gastos.GET("/resumo/mes-atual", monthTotalHandler)
	gastos.GET("/resumo-categorias", categorySummaryHandler)
	gastos.GET("/total-periodo", periodTotalHandler)

	contas := authGroup.Group("/api/contas-fixas")
	contas.POST("", createBillHandler)
	contas.GET("", listBillsHandler)
	contas.PUT("/:id", updateBillHandler)
	contas.DELETE("/:id", deleteBillHandler)
	contas.GET("/total-mensal", billsMonthlyTotalHandler)
	contas.PUT("", syncBillsHandler)

	recebimentos := authGroup.Group("/api/recebimentos")
	recebimentos.POST("", createIncomeHandler)
	recebimentos.GET("", listIncomesHandler)
	recebimentos.PUT("/:id", updateIncomeHandler)
	recebimentos.DELETE("/:id", deleteIncomeHandler)
	recebimentos.GET("/proximos", upcomingIncomesHandler)
	recebimentos.GET("/total-mensal", incomesMonthlyTotalHandler)
	recebimentos.PUT("", syncIncomesHandler)

	economia := authGroup.Group("/api/economia")
	economia.GET("", getSavingsHandler)
	economia.POST("", setSavingsHandler)
	economia.POST("/adicionar", addSavingsHandler)
	economia.POST("/remover", subtractSavingsHandler)

	authGroup.GET("/api/dashboard", dashboardHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Token não fornecido."})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Token inválido ou expirado."})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Token inválido ou expirado."})
			c.Abort()
			return
		}
		id, _ := claims["id"].(float64)
		if id <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Token inválido ou expirado."})
			c.Abort()
			return
		}
		name, _ := claims["nome"].(string)
		c.Set("usuario_id", uint(id))
		c.Set("usuario_nome", name)
		c.Next()
	}
}

// currentUserID returns the authenticated owner id set by jwtAuthMiddleware.
// Every protected handler starts here; there is no anonymous fallback.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("usuario_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

func meHandler(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Usuário não encontrado."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "nome": user.Name, "email": user.Email})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Nome  string `json:"nome" binding:"required"`
		Email string `json:"email" binding:"required"`
		Senha string `json:"senha" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Preencha todos os campos."})
		return
	}
	if err := RegisterUser(req.Nome, req.Email, req.Senha); err != nil {
		c.JSON(http.StatusConflict, gin.H{"mensagem": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensagem": "Usuário cadastrado com sucesso!"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Senha string `json:"senha" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Email e senha são obrigatórios."})
		return
	}
	user, err := Authenticate(req.Email, req.Senha)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Credenciais inválidas."})
		return
	}
	tokenString, err := signAccessToken(user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao fazer login."})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao fazer login."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Login bem-sucedido!", "token": tokenString, "refresh_token": refreshToken})
}

func listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := db.Select("id", "name", "email").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao listar usuários."})
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "nome": u.Name, "email": u.Email})
	}
	c.JSON(http.StatusOK, out)
}

func signAccessToken(user models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"nome": user.Name,
		"exp":  time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	// generate random 32-byte token (hex)
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	// hash for storage
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || !rt.Usable(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Refresh token inválido ou expirado."})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não encontrado."})
		return
	}
	tokenString, err := signAccessToken(user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao gerar token."})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao renovar sessão."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Refresh token não encontrado."})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao revogar token."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Refresh token revogado."})
}
