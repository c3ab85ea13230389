// Package chatbot classifies free-text chat messages into a fixed set of
// intents using ordered regular expressions. There is no fuzzy matching: the
// patterns are tried in order and the first match wins.
package chatbot

import (
	"regexp"
	"strings"

	"financas/pkg/ledger"
)

// Help is returned with the Unrecognized intent when no pattern matches.
// It is a successful answer, not an error: the chat UI just shows it.
const Help = `Formato da mensagem inválido. Exemplo: "gastei 50 com comida" ou "quanto gastei hoje?"`

// Intent is the classified meaning of a chat message.
type Intent interface {
	isIntent()
}

// RegisterExpense asks for a new expense of Amount in Category, dated now.
type RegisterExpense struct {
	Amount   float64
	Category string
}

// QueryToday asks for the total spent during the current day.
type QueryToday struct{}

// QueryMonth asks for the total spent during the current calendar month.
type QueryMonth struct{}

// Unrecognized is the fallback when no pattern matched.
type Unrecognized struct {
	Help string
}

func (RegisterExpense) isIntent() {}
func (QueryToday) isIntent()      {}
func (QueryMonth) isIntent()      {}
func (Unrecognized) isIntent()    {}

type matcher struct {
	re      *regexp.Regexp
	extract func(groups []string) Intent
}

// Order matters: the register pattern is tried before the query phrasings.
var matchers = []matcher{
	{
		re: regexp.MustCompile(`(?i)gastei\s+(\d+(?:[.,]\d{1,2})?)\s+com\s+(.+)`),
		extract: func(groups []string) Intent {
			return RegisterExpense{
				Amount:   ledger.ParseAmount(groups[1]),
				Category: strings.ToLower(strings.TrimSpace(groups[2])),
			}
		},
	},
	{
		re:      regexp.MustCompile(`(?i)quanto\s+gastei\s+hoje|gastos\s+do\s+dia|meu\s+gasto\s+hoje`),
		extract: func([]string) Intent { return QueryToday{} },
	},
	{
		re:      regexp.MustCompile(`(?i)quanto\s+gastei\s+(?:esse\s+)?m[eê]s|gastos\s+do\s+m[eê]s|gasto\s+mensal`),
		extract: func([]string) Intent { return QueryMonth{} },
	},
}

// Interpret classifies message into an Intent. It never fails; anything the
// patterns cannot place comes back as Unrecognized carrying Help.
func Interpret(message string) Intent {
	for _, m := range matchers {
		if groups := m.re.FindStringSubmatch(message); groups != nil {
			return m.extract(groups)
		}
	}
	return Unrecognized{Help: Help}
}
