package main

import (
	"log"
	"net/http"

	"financas/models"
	"financas/pkg/ledger"

	"github.com/gin-gonic/gin"
)

// dashboardHandler assembles the grouped view the dashboard renders: bills
// and incomes bucketed by the principal due days (plus an "other dates"
// bucket), overall totals and the resulting balance, which may be negative.
func dashboardHandler(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"mensagem": "Usuário não autenticado."})
		return
	}
	var bills []models.FixedBill
	if err := db.Where("user_id = ?", uid).Order("due_day").Find(&bills).Error; err != nil {
		log.Printf("dashboard bills: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao carregar dados."})
		return
	}
	var incomes []models.Income
	if err := db.Where("user_id = ?", uid).Order("receipt_day").Find(&incomes).Error; err != nil {
		log.Printf("dashboard incomes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro ao carregar dados."})
		return
	}

	billBuckets := ledger.GroupByDay(bills,
		func(b models.FixedBill) int { return b.DueDay },
		func(b models.FixedBill) float64 { return b.TotalAmount })
	incomeBuckets := ledger.GroupByDay(incomes,
		func(i models.Income) int { return i.ReceiptDay },
		func(i models.Income) float64 { return i.Amount })

	var totalBills, totalIncomes float64
	for _, b := range bills {
		totalBills += b.TotalAmount
	}
	for _, i := range incomes {
		totalIncomes += i.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"contas_por_dia":       billBuckets,
		"recebimentos_por_dia": incomeBuckets,
		"total_contas_fixas":   totalBills,
		"total_recebimentos":   totalIncomes,
		"saldo":                ledger.NetBalance(totalIncomes, totalBills),
	})
}
