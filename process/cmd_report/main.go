package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"financas/process/report"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "email of the user to report for")
	month := flag.String("month", time.Now().Format("2006-01"), "month to report (YYYY-MM)")
	list := flag.Bool("list", false, "list matching rows")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: go run ./process/cmd_report --email user@example.com [--month YYYY-MM] [--list]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	if os.Getenv("DB_DSN") == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}

	report.RunReport(*email, *month, *list)
}
