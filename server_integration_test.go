package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("integration-test-secret")
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/usuarios/cadastro",
		jsonBody(t, map[string]string{"nome": "Usuário Teste", "email": email, "senha": "senha123"}), "")
	if resp.Code != http.StatusCreated && resp.Code != http.StatusConflict {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/usuarios/login",
		jsonBody(t, map[string]string{"email": email, "senha": "senha123"}), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}
	return token
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)
	email := fmt.Sprintf("user%d@example.com", time.Now().UnixNano())
	token := registerAndLogin(t, r, email)

	// 1. Register an expense
	resp := performRequest(r, http.MethodPost, "/gastos",
		jsonBody(t, map[string]any{"descricao": "Aluguel", "categoria": "Moradia", "valor": 120.50}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create expense failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. List expenses; the new one is there with a lower-cased category
	resp = performRequest(r, http.MethodGet, "/gastos", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("list expenses failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var expenses []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &expenses)
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense got %d", len(expenses))
	}
	if got := expenses[0]["categoria"]; got != "moradia" {
		t.Fatalf("expected lower-cased category, got %v", got)
	}

	// 3. Month total includes it
	resp = performRequest(r, http.MethodGet, "/gastos/resumo/mes-atual", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("month total failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var totalResp map[string]float64
	_ = json.Unmarshal(resp.Body.Bytes(), &totalResp)
	if totalResp["total"] != 120.50 {
		t.Fatalf("expected total 120.50 got %v", totalResp["total"])
	}

	// 4. Category filter finds it
	resp = performRequest(r, http.MethodGet, "/gastos/categoria?categoria=moradia", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("category filter failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Period total over the current month includes it
	start := time.Now().Format("2006-01-02")
	resp = performRequest(r, http.MethodGet, "/gastos/total-periodo?inicio="+start+"&fim="+start, nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("period total failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 6. Chatbot registers an expense and reports today's total
	resp = performRequest(r, http.MethodPost, "/chatbot",
		jsonBody(t, map[string]string{"mensagem": "gastei 50,30 com comida"}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("chatbot register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/chatbot",
		jsonBody(t, map[string]string{"mensagem": "quanto gastei hoje"}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("chatbot today failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 7. Unrecognized chatbot message is still a 200 with help text
	resp = performRequest(r, http.MethodPost, "/chatbot",
		jsonBody(t, map[string]string{"mensagem": "blah blah"}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("chatbot fallback failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 8. Bulk bill reconcile: create two, then resubmit keeping one and adding one
	resp = performRequest(r, http.MethodPut, "/api/contas-fixas",
		jsonBody(t, []map[string]any{
			{"descricao": "Internet", "valor_total": 90.0, "dia_vencimento": 10, "categoria": "assinatura"},
			{"descricao": "Aluguel", "valor_total": 1200.0, "dia_vencimento": 5, "categoria": "moradia"},
		}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("bills sync failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/contas-fixas", nil, token)
	var bills []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &bills)
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills got %d", len(bills))
	}
	keep := bills[0]
	resp = performRequest(r, http.MethodPut, "/api/contas-fixas",
		jsonBody(t, []map[string]any{
			{"id": keep["id"], "descricao": keep["descricao"], "valor_total": 95.0, "dia_vencimento": 10, "categoria": "assinatura"},
			{"descricao": "Academia", "valor_total": 110.0, "dia_vencimento": 17, "categoria": "saude"},
		}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("bills resync failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/contas-fixas", nil, token)
	bills = nil
	_ = json.Unmarshal(resp.Body.Bytes(), &bills)
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills after resync got %d", len(bills))
	}

	// 9. Savings: add creates lazily, subtract floors at zero
	resp = performRequest(r, http.MethodPost, "/api/economia/adicionar",
		jsonBody(t, map[string]any{"valor": 200.0}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("savings add failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/api/economia/remover",
		jsonBody(t, map[string]any{"valor": 500.0}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("savings subtract failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/economia", nil, token)
	var sav map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &sav)
	if v, _ := sav["valor_atual"].(float64); v != 0 {
		t.Fatalf("expected floored balance 0 got %v", sav["valor_atual"])
	}

	// 10. Dashboard groups bills by day, including the "other dates" bucket for day 17
	resp = performRequest(r, http.MethodGet, "/api/dashboard", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 11. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/gastos", nil, "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list got %d", unauth.Code)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
