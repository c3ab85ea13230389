package report

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"financas/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// RunReport prints a month-bounded spending report for the user identified by
// email (month in YYYY-MM): overall total, per-category totals and optionally
// the matching expense rows.
func RunReport(email, month string, list bool) {
	gdb := mustDBFromEnv()

	var user models.User
	if err := gdb.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("user not found: %v", err)
	}

	t, err := time.Parse("2006-01", month)
	if err != nil {
		log.Fatalf("invalid month format, expected YYYY-MM: %v", err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var total sql.NullFloat64
	var cnt int64
	if err := gdb.Raw(`SELECT COALESCE(SUM(amount),0) AS total, COUNT(*) AS cnt FROM expenses WHERE user_id = ? AND date >= ? AND date < ?`, user.ID, start, end).Row().Scan(&total, &cnt); err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Printf("Report for user=%s month=%s (UTC):\n", user.Email, month)
	fmt.Printf("  records=%d total_amount=%.2f\n", cnt, total.Float64)

	type categoryRow struct {
		Category string
		Total    float64
	}
	var byCategory []categoryRow
	if err := gdb.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end).
		Select("category, SUM(amount) as total").
		Group("category").
		Order("total desc").
		Scan(&byCategory).Error; err != nil {
		log.Fatalf("category query failed: %v", err)
	}
	for _, r := range byCategory {
		fmt.Printf("  %-20s %.2f\n", r.Category, r.Total)
	}

	if list {
		var rows []models.Expense
		if err := gdb.Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end).Order("id").Find(&rows).Error; err != nil {
			log.Fatalf("fetch rows failed: %v", err)
		}
		for _, r := range rows {
			fmt.Printf("%d|%s|%s|%.2f|%s\n", r.ID, r.Description, r.Category, r.Amount, r.Date.Format(time.RFC3339))
		}
	}
}
