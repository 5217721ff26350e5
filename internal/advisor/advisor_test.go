package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bilancio/internal/core"
)

func historyPeriod(month int, spent int64) core.BudgetPeriod {
	return core.BudgetPeriod{
		Type:     core.Monthly,
		Year:     2025,
		Month:    month,
		Currency: "€",
		Income: []core.IncomeItem{
			{ID: "i1", Name: "Stipendio", Actual: core.Money{Cents: 300000}},
		},
		Expenses: []core.ExpenseItem{
			{ID: "e1", Name: "Spesa", Budgeted: core.Money{Cents: 60000}, Spent: core.Money{Cents: spent}},
			{ID: "e2", Name: "Trasporti", Budgeted: core.Money{Cents: 20000}, Spent: core.Money{Cents: 10000}},
		},
	}
}

func TestAdvise(t *testing.T) {
	var gotReq adviceRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(adviceResponse{Text: "spend less on groceries"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 5*time.Second)
	text, err := client.Advise(context.Background(), "summary here")
	if err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if text != "spend less on groceries" {
		t.Errorf("Advise() = %q", text)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q, want test-model", gotReq.Model)
	}
	if gotReq.Prompt != "summary here" {
		t.Errorf("request prompt = %q", gotReq.Prompt)
	}
}

func TestAdviceForDegradesToUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "empty text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(adviceResponse{Text: "   "})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, "test-model", 5*time.Second)
			got := client.AdviceFor(context.Background(), []core.BudgetPeriod{historyPeriod(1, 45000)})
			if got != UnavailableMessage {
				t.Errorf("AdviceFor() = %q, want UnavailableMessage", got)
			}
		})
	}
}

func TestAdviceForUnreachableEndpoint(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-model", 500*time.Millisecond)
	got := client.AdviceFor(context.Background(), nil)
	if got != UnavailableMessage {
		t.Errorf("AdviceFor() = %q, want UnavailableMessage", got)
	}
}

func TestBuildPromptSummarizesHistory(t *testing.T) {
	prompt := BuildPrompt([]core.BudgetPeriod{historyPeriod(1, 45000)})

	for _, want := range []string{"January 2025", "Spesa"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Trasporti") {
		t.Error("prompt should name only the top expense category")
	}
}

func TestBuildPromptCapsHistory(t *testing.T) {
	var history []core.BudgetPeriod
	for m := 1; m <= 9; m++ {
		history = append(history, historyPeriod(m, 10000))
	}

	prompt := BuildPrompt(history)
	if strings.Contains(prompt, "January 2025") {
		t.Error("prompt should drop periods beyond the most recent six")
	}
	if !strings.Contains(prompt, "September 2025") {
		t.Error("prompt should keep the most recent period")
	}
}

func TestBuildPromptEmptyHistory(t *testing.T) {
	prompt := BuildPrompt(nil)
	if !strings.Contains(prompt, "No budget history") {
		t.Errorf("empty-history prompt = %q", prompt)
	}
}
