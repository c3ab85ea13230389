package main

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financas/models"
	"financas/pkg/ledger"

	"github.com/gin-gonic/gin"
)

// registerExpenseHandler creates an expense dated now for the authenticated user
func registerExpenseHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var req struct {
		Descricao string  `json:"descricao" binding:"required"`
		Categoria string  `json:"categoria" binding:"required"`
		Valor     float64 `json:"valor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Descrição, Categoria e valor são obrigatórios."})
		return
	}
	if req.Valor < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Valor deve ser positivo."})
		return
	}
	expense := models.Expense{
		UserID:      uid,
		Description: req.Descricao,
		Category:    strings.ToLower(strings.TrimSpace(req.Categoria)),
		Amount:      req.Valor,
		Date:        time.Now(),
	}
	if err := db.Create(&expense).Error; err != nil {
		log.Printf("create expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao registrar gasto."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensagem": "Gasto registrado com sucesso!", "gasto": expense})
}

// listExpensesHandler lists every expense of the authenticated user, newest first
func listExpensesHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var items []models.Expense
	if err := db.Where("user_id = ?", uid).Order("date desc").Find(&items).Error; err != nil {
		log.Printf("list expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao listar gastos."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func updateExpenseHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "ID inválido."})
		return
	}
	var req struct {
		Descricao string  `json:"descricao" binding:"required"`
		Categoria string  `json:"categoria" binding:"required"`
		Valor     float64 `json:"valor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Descrição, Categoria e valor são obrigatórios."})
		return
	}
	res := db.Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", id, uid).
		Updates(map[string]any{
			"description": req.Descricao,
			"category":    strings.ToLower(strings.TrimSpace(req.Categoria)),
			"amount":      req.Valor,
		})
	if res.Error != nil {
		log.Printf("update expense %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao atualizar gasto."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Gasto não encontrado."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Gasto atualizado com sucesso!"})
}

func deleteExpenseHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "ID inválido."})
		return
	}
	res := db.Where("id = ? AND user_id = ?", id, uid).Delete(&models.Expense{})
	if res.Error != nil {
		log.Printf("delete expense %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao excluir gasto."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Gasto não encontrado."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Gasto excluído com sucesso!"})
}

// parsePeriod reads inicio/fim query params (YYYY-MM-DD). The end bound is
// pushed to the last second of its day so the range is inclusive.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	inicio := c.Query("inicio")
	fim := c.Query("fim")
	if inicio == "" || fim == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.ParseInLocation("2006-01-02", inicio, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", fim, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end.Add(24*time.Hour - time.Second), true
}

// expensesByPeriodHandler returns the rows between inicio and fim. Zero rows
// is a 404 here while the sum endpoint reports 0 with a 200; that asymmetry
// is part of the published API.
func expensesByPeriodHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	start, end, ok := parsePeriod(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Informe as datas de início e fim no formato YYYY-MM-DD."})
		return
	}
	var items []models.Expense
	if err := db.Where("user_id = ? AND date BETWEEN ? AND ?", uid, start, end).Find(&items).Error; err != nil {
		log.Printf("expenses by period: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao buscar gastos por período."})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Nenhum gasto encontrado nesse período."})
		return
	}
	c.JSON(http.StatusOK, items)
}

// expensesByCategoryHandler filters by exact category match on the stored value
func expensesByCategoryHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	categoria := c.Query("categoria")
	if categoria == "" {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Informe a categoria a ser filtrada."})
		return
	}
	var items []models.Expense
	if err := db.Where("user_id = ? AND category = ?", uid, categoria).Order("date desc").Find(&items).Error; err != nil {
		log.Printf("expenses by category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao buscar gastos por categoria."})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Nenhum gasto encontrado na categoria \"" + categoria + "\"."})
		return
	}
	c.JSON(http.StatusOK, items)
}

// monthTotalHandler sums the current calendar month. Empty month is 0, never an error.
func monthTotalHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	start, end := ledger.MonthBounds(time.Now())
	var total float64
	err := db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", uid, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		log.Printf("month total: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao calcular o total do mês."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// categorySummaryHandler groups the current month's expenses by category
func categorySummaryHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	start, end := ledger.MonthBounds(time.Now())
	type row struct {
		Categoria string  `json:"categoria"`
		Total     float64 `json:"total"`
	}
	var rows []row
	err := db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", uid, start, end).
		Select("category as categoria, SUM(amount) as total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		log.Printf("category summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao gerar resumo por categoria."})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// periodTotalHandler distinguishes "no rows" (200 with total 0 and a note)
// from missing parameters (400) and real failures (500).
func periodTotalHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	start, end, ok := parsePeriod(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Informe as datas de início e fim no formato YYYY-MM-DD."})
		return
	}
	var total sql.NullFloat64
	err := db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", uid, start, end).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		log.Printf("period total: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao calcular o total de gastos no período."})
		return
	}
	if !total.Valid {
		c.JSON(http.StatusOK, gin.H{"mensagem": "Nenhum gasto registrado nesse período.", "total": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total.Float64})
}
