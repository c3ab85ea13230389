package main

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"financas/models"
	"financas/pkg/ledger"
	"financas/pkg/reconcile"

	"github.com/gin-gonic/gin"
)

func createIncomeHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var req struct {
		Descricao      string  `json:"descricao" binding:"required"`
		Valor          float64 `json:"valor" binding:"required"`
		DiaRecebimento int     `json:"dia_recebimento" binding:"required"`
		Tipo           string  `json:"tipo" binding:"required"`
		Recorrencia    string  `json:"recorrencia"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Todos os campos são obrigatórios."})
		return
	}
	if !validDayOfMonth(req.DiaRecebimento) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Dia de recebimento deve estar entre 1 e 31."})
		return
	}
	if req.Recorrencia == "" {
		req.Recorrencia = "mensal"
	}
	income := models.Income{
		UserID:      uid,
		Description: req.Descricao,
		Amount:      req.Valor,
		ReceiptDay:  req.DiaRecebimento,
		Type:        req.Tipo,
		Recurrence:  req.Recorrencia,
	}
	if err := db.Create(&income).Error; err != nil {
		log.Printf("create income: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao cadastrar recebimento."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensagem": "Recebimento cadastrado com sucesso!", "recebimento": income})
}

func listIncomesHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var items []models.Income
	if err := db.Where("user_id = ?", uid).Order("receipt_day").Find(&items).Error; err != nil {
		log.Printf("list incomes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao listar recebimentos."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func updateIncomeHandler(c *gin.Context) {
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
		Descricao      string  `json:"descricao" binding:"required"`
		Valor          float64 `json:"valor" binding:"required"`
		DiaRecebimento int     `json:"dia_recebimento" binding:"required"`
		Tipo           string  `json:"tipo" binding:"required"`
		Recorrencia    string  `json:"recorrencia"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Todos os campos são obrigatórios."})
		return
	}
	if !validDayOfMonth(req.DiaRecebimento) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Dia de recebimento deve estar entre 1 e 31."})
		return
	}
	res := db.Model(&models.Income{}).
		Where("id = ? AND user_id = ?", id, uid).
		Updates(map[string]any{
			"description": req.Descricao,
			"amount":      req.Valor,
			"receipt_day": req.DiaRecebimento,
			"type":        req.Tipo,
			"recurrence":  req.Recorrencia,
		})
	if res.Error != nil {
		log.Printf("update income %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao atualizar recebimento."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Recebimento não encontrado."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Recebimento atualizado com sucesso!"})
}

func deleteIncomeHandler(c *gin.Context) {
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
	res := db.Where("id = ? AND user_id = ?", id, uid).Delete(&models.Income{})
	if res.Error != nil {
		log.Printf("delete income %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao excluir recebimento."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Recebimento não encontrado."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Recebimento excluído com sucesso!"})
}

// upcomingIncomesHandler lists incomes ordered by distance from today's
// day-of-month: receipts from today onward first, then the ones that already
// passed this month.
func upcomingIncomesHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var items []models.Income
	if err := db.Where("user_id = ?", uid).Find(&items).Error; err != nil {
		log.Printf("upcoming incomes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao listar próximos recebimentos."})
		return
	}
	today := time.Now().Day()
	sort.SliceStable(items, func(i, j int) bool {
		return ledger.UpcomingKey(items[i].ReceiptDay, today) < ledger.UpcomingKey(items[j].ReceiptDay, today)
	})
	c.JSON(http.StatusOK, items)
}

func incomesMonthlyTotalHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var total float64
	err := db.Model(&models.Income{}).
		Where("user_id = ?", uid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		log.Printf("incomes monthly total: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao calcular total de recebimentos."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// incomeStore adapts gorm to the reconcile engine, owner-scoped.
type incomeStore struct {
	userID uint
}

func (s incomeStore) Create(i models.Income) error {
	i.ID = 0
	i.UserID = s.userID
	if i.Recurrence == "" {
		i.Recurrence = "mensal"
	}
	return db.Create(&i).Error
}

func (s incomeStore) Update(i models.Income) error {
	res := db.Model(&models.Income{}).
		Where("id = ? AND user_id = ?", i.ID, s.userID).
		Updates(map[string]any{
			"description": i.Description,
			"amount":      i.Amount,
			"receipt_day": i.ReceiptDay,
			"type":        i.Type,
			"recurrence":  i.Recurrence,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound(i.ID)
	}
	return nil
}

func (s incomeStore) Delete(id uint) error {
	res := db.Where("id = ? AND user_id = ?", id, s.userID).Delete(&models.Income{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound(id)
	}
	return nil
}

// syncIncomesHandler is the income counterpart of syncBillsHandler, sharing
// the same reconcile engine.
func syncIncomesHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var submitted []models.Income
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Lista de recebimentos inválida."})
		return
	}
	for _, i := range submitted {
		if i.Description == "" || i.Amount <= 0 || i.Type == "" || !validDayOfMonth(i.ReceiptDay) {
			c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Preencha todos os campos de todos os recebimentos."})
			return
		}
	}
	var stored []models.Income
	if err := db.Where("user_id = ?", uid).Find(&stored).Error; err != nil {
		log.Printf("sync incomes load: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao salvar recebimentos."})
		return
	}
	result := reconcile.Sync[models.Income](incomeStore{userID: uid}, stored, submitted)
	for _, f := range result.Failures {
		log.Printf("sync incomes user=%d op=%s id=%d: %s", uid, f.Op, f.ID, f.Err)
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Recebimentos salvos.", "resultado": result})
}
