package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"financas/models"
	"financas/pkg/chatbot"
	"financas/pkg/ledger"

	"github.com/gin-gonic/gin"
)

// chatbotHandler interprets a free-text message and answers in chat style.
// An unrecognized message is still a 200: the help text is an answer, not an
// error, and the chat UI must not render it as a failure.
func chatbotHandler(c *gin.Context) {
	var req struct {
		Mensagem string `json:"mensagem" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Mensagem não enviada."})
		return
	}
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}

	switch intent := chatbot.Interpret(req.Mensagem).(type) {
	case chatbot.RegisterExpense:
		expense := models.Expense{
			UserID:      uid,
			Description: "Adicionado via chat",
			Category:    intent.Category,
			Amount:      intent.Amount,
			Date:        time.Now(),
		}
		if err := db.Create(&expense).Error; err != nil {
			log.Printf("chatbot register expense: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao interpretar mensagem."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"mensagem": fmt.Sprintf(
			"✅ Gasto de R$%s com *%s* registrado com sucesso!",
			ledger.FormatAmount(intent.Amount), intent.Category)})

	case chatbot.QueryToday:
		start, end := ledger.DayBounds(time.Now())
		total, err := sumExpenses(uid, start, end)
		if err != nil {
			log.Printf("chatbot today total: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao interpretar mensagem."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"mensagem": fmt.Sprintf(
			"🗓️ Você gastou R$%s hoje.", ledger.FormatAmount(total))})

	case chatbot.QueryMonth:
		start, end := ledger.MonthBounds(time.Now())
		total, err := sumExpenses(uid, start, end)
		if err != nil {
			log.Printf("chatbot month total: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao interpretar mensagem."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"mensagem": fmt.Sprintf(
			"📅 Total de gastos no mês: R$%s.", ledger.FormatAmount(total))})

	case chatbot.Unrecognized:
		c.JSON(http.StatusOK, gin.H{"mensagem": intent.Help})
	}
}

// sumExpenses totals a user's expenses inside the inclusive window. An empty
// window sums to 0, never an error.
func sumExpenses(userID uint, start, end time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
