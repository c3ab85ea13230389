package main

import (
	"log"
	"net/http"
	"strconv"

	"financas/models"
	"financas/pkg/reconcile"

	"github.com/gin-gonic/gin"
)

func validDayOfMonth(day int) bool {
	// 1..31 only; day 31 in a 30-day month is accepted on purpose.
	return day >= 1 && day <= 31
}

func createBillHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var req struct {
		Descricao     string  `json:"descricao" binding:"required"`
		ValorTotal    float64 `json:"valor_total" binding:"required"`
		DiaVencimento int     `json:"dia_vencimento" binding:"required"`
		Categoria     string  `json:"categoria"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Descrição, valor e dia de vencimento são obrigatórios."})
		return
	}
	if !validDayOfMonth(req.DiaVencimento) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Dia de vencimento deve estar entre 1 e 31."})
		return
	}
	if req.Categoria == "" {
		req.Categoria = "cartao"
	}
	bill := models.FixedBill{
		UserID:      uid,
		Description: req.Descricao,
		TotalAmount: req.ValorTotal,
		DueDay:      req.DiaVencimento,
		Category:    req.Categoria,
		Status:      models.BillStatusActive,
	}
	if err := db.Create(&bill).Error; err != nil {
		log.Printf("create bill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao cadastrar conta fixa."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensagem": "Conta fixa cadastrada com sucesso!", "conta_fixa": bill})
}

func listBillsHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var bills []models.FixedBill
	if err := db.Where("user_id = ?", uid).Order("due_day").Find(&bills).Error; err != nil {
		log.Printf("list bills: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao listar contas fixas."})
		return
	}
	c.JSON(http.StatusOK, bills)
}

func updateBillHandler(c *gin.Context) {
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
		Descricao     string  `json:"descricao" binding:"required"`
		ValorTotal    float64 `json:"valor_total" binding:"required"`
		DiaVencimento int     `json:"dia_vencimento" binding:"required"`
		Categoria     string  `json:"categoria"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Descrição, valor e dia de vencimento são obrigatórios."})
		return
	}
	if !validDayOfMonth(req.DiaVencimento) {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Dia de vencimento deve estar entre 1 e 31."})
		return
	}
	res := db.Model(&models.FixedBill{}).
		Where("id = ? AND user_id = ?", id, uid).
		Updates(map[string]any{
			"description":  req.Descricao,
			"total_amount": req.ValorTotal,
			"due_day":      req.DiaVencimento,
			"category":     req.Categoria,
		})
	if res.Error != nil {
		log.Printf("update bill %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao atualizar conta fixa."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Conta fixa não encontrada."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Conta fixa atualizada com sucesso!"})
}

func deleteBillHandler(c *gin.Context) {
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
	res := db.Where("id = ? AND user_id = ?", id, uid).Delete(&models.FixedBill{})
	if res.Error != nil {
		log.Printf("delete bill %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao excluir conta fixa."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Conta fixa não encontrada."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Conta fixa excluída com sucesso!"})
}

// billsMonthlyTotalHandler sums active bills only; 0 when there are none
func billsMonthlyTotalHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var total float64
	err := db.Model(&models.FixedBill{}).
		Where("user_id = ? AND status = ?", uid, models.BillStatusActive).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		log.Printf("bills monthly total: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao calcular total de contas fixas."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// billStore adapts gorm to the reconcile engine, owner-scoped.
type billStore struct {
	userID uint
}

func (s billStore) Create(b models.FixedBill) error {
	b.ID = 0
	b.UserID = s.userID
	if b.Category == "" {
		b.Category = "cartao"
	}
	if b.Status == "" {
		b.Status = models.BillStatusActive
	}
	return db.Create(&b).Error
}

func (s billStore) Update(b models.FixedBill) error {
	res := db.Model(&models.FixedBill{}).
		Where("id = ? AND user_id = ?", b.ID, s.userID).
		Updates(map[string]any{
			"description":  b.Description,
			"total_amount": b.TotalAmount,
			"due_day":      b.DueDay,
			"category":     b.Category,
			"status":       b.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound(b.ID)
	}
	return nil
}

func (s billStore) Delete(id uint) error {
	res := db.Where("id = ? AND user_id = ?", id, s.userID).Delete(&models.FixedBill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound(id)
	}
	return nil
}

// syncBillsHandler reconciles the submitted full bill list against storage:
// items without id are created, known ids are updated, stored ids missing
// from the submission are deleted. Best-effort; per-item failures are
// reported, not fatal.
func syncBillsHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var submitted []models.FixedBill
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Lista de contas fixas inválida."})
		return
	}
	// validate before touching storage
	for _, b := range submitted {
		if b.Description == "" || b.TotalAmount <= 0 || !validDayOfMonth(b.DueDay) {
			c.JSON(http.StatusBadRequest, gin.H{"mensagem": "Preencha todos os campos de todas as contas fixas."})
			return
		}
	}
	var stored []models.FixedBill
	if err := db.Where("user_id = ?", uid).Find(&stored).Error; err != nil {
		log.Printf("sync bills load: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao salvar contas fixas."})
		return
	}
	result := reconcile.Sync[models.FixedBill](billStore{userID: uid}, stored, submitted)
	for _, f := range result.Failures {
		log.Printf("sync bills user=%d op=%s id=%d: %s", uid, f.Op, f.ID, f.Err)
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Contas fixas salvas.", "resultado": result})
}
