package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"financas/models"
	"financas/pkg/savings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func todayStamp() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// getSavingsHandler returns the user's savings row, or a zero-valued body
// when none exists yet (200, not 404 — the record is created lazily).
func getSavingsHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var s models.Savings
	err := db.Where("user_id = ?", uid).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"valor_atual": 0, "valor_meta": 0, "data_atualizacao": nil})
		return
	}
	if err != nil {
		log.Printf("get savings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao obter dados de economia."})
		return
	}
	body := gin.H{
		"id":               s.ID,
		"valor_atual":      s.CurrentAmount,
		"valor_meta":       s.GoalAmount,
		"data_atualizacao": s.UpdatedOn,
	}
	// progress is undefined without a goal; the bar is capped at 100%
	if p, defined := savings.Progress(s.CurrentAmount, s.GoalAmount); defined {
		body["progresso"] = p
	}
	c.JSON(http.StatusOK, body)
}

// setSavingsHandler upserts balance and goal in one statement keyed on the
// unique user_id index, so there is no exists-check/write race.
func setSavingsHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var req struct {
		ValorAtual *float64 `json:"valor_atual"`
		ValorMeta  *float64 `json:"valor_meta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ValorAtual == nil || req.ValorMeta == nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valor atual e meta são obrigatórios."})
		return
	}
	if !savings.ValidAmount(*req.ValorAtual) || !savings.ValidAmount(*req.ValorMeta) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valores inválidos."})
		return
	}
	// existence decides only the status code; the write itself is atomic
	var count int64
	db.Model(&models.Savings{}).Where("user_id = ?", uid).Count(&count)

	s := models.Savings{
		UserID:        uid,
		CurrentAmount: *req.ValorAtual,
		GoalAmount:    *req.ValorMeta,
		UpdatedOn:     todayStamp(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_amount", "goal_amount", "updated_on"}),
	}).Create(&s).Error
	if err != nil {
		log.Printf("set savings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao salvar economia."})
		return
	}
	status := http.StatusOK
	msg := "Economia atualizada com sucesso!"
	if count == 0 {
		status = http.StatusCreated
		msg = "Economia cadastrada com sucesso!"
	}
	c.JSON(status, gin.H{"mensagem": msg, "economia": s})
}

// addSavingsHandler increments the balance, lazily creating the row with a
// zero goal on first use. The increment happens inside the upsert.
func addSavingsHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var req struct {
		Valor *float64 `json:"valor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Valor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valor não informado."})
		return
	}
	if !savings.ValidDelta(*req.Valor) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valor inválido."})
		return
	}
	var count int64
	db.Model(&models.Savings{}).Where("user_id = ?", uid).Count(&count)

	s := models.Savings{
		UserID:        uid,
		CurrentAmount: *req.Valor,
		GoalAmount:    0,
		UpdatedOn:     todayStamp(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"current_amount": gorm.Expr("savings.current_amount + ?", *req.Valor),
			"updated_on":     todayStamp(),
		}),
	}).Create(&s).Error
	if err != nil {
		log.Printf("add savings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao adicionar valor à economia."})
		return
	}
	var out models.Savings
	if err := db.Where("user_id = ?", uid).First(&out).Error; err != nil {
		log.Printf("add savings reload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao adicionar valor à economia."})
		return
	}
	status := http.StatusOK
	if count == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"mensagem": "Valor adicionado com sucesso!", "economia": out})
}

// subtractSavingsHandler removes from the balance, floored at zero. Unlike
// add it refuses to run without an existing row.
func subtractSavingsHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var req struct {
		Valor *float64 `json:"valor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Valor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valor não informado."})
		return
	}
	if !savings.ValidDelta(*req.Valor) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valor inválido."})
		return
	}
	var s models.Savings
	err := db.Where("user_id = ?", uid).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Não há registro de economia para este usuário."})
		return
	}
	if err != nil {
		log.Printf("subtract savings load: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao remover valor da economia."})
		return
	}
	s.CurrentAmount = savings.Subtract(s.CurrentAmount, *req.Valor)
	s.UpdatedOn = todayStamp()
	if err := db.Model(&models.Savings{}).Where("id = ?", s.ID).
		Updates(map[string]any{"current_amount": s.CurrentAmount, "updated_on": s.UpdatedOn}).Error; err != nil {
		log.Printf("subtract savings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao remover valor da economia."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Valor removido com sucesso!", "economia": s})
}
