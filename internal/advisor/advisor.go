package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bilancio/internal/core"
)

// UnavailableMessage is returned whenever advice cannot be produced. Any
// transport, status or decode failure collapses to this one string; the
// caller never sees why.
const UnavailableMessage = "Financial advice is currently unavailable. Please try again later."

// promptPeriods caps how much history goes into a prompt.
const promptPeriods = 6

// Client talks to a generative text endpoint: POST {model, prompt},
// read {text}.
type Client struct {
	httpClient *http.Client
	url        string
	model      string
}

func NewClient(url, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		model:      model,
	}
}

func (c *Client) Model() string {
	return c.model
}

type adviceRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type adviceResponse struct {
	Text string `json:"text"`
}

// Advise posts the prompt and returns the generated text.
func (c *Client) Advise(ctx context.Context, prompt string) (string, error) {
	if c.url == "" {
		return "", fmt.Errorf("advisor URL not configured")
	}

	body, err := json.Marshal(adviceRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call advisor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var out adviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode advice response: %w", err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", fmt.Errorf("advisor returned empty text")
	}

	return out.Text, nil
}

// AdviceFor builds a prompt from the history and asks the advisor. It never
// returns an error: failure degrades to the fixed unavailability message.
func (c *Client) AdviceFor(ctx context.Context, history []core.BudgetPeriod) string {
	text, err := c.Advise(ctx, BuildPrompt(history))
	if err != nil {
		slog.WarnContext(ctx, "Advisor unavailable", "error", err)
		return UnavailableMessage
	}
	return text
}

// BuildPrompt renders a compact statistical summary of the most recent
// periods. Only derived numbers go out, never raw line items.
func BuildPrompt(history []core.BudgetPeriod) string {
	if len(history) > promptPeriods {
		history = history[len(history)-promptPeriods:]
	}

	var b strings.Builder
	b.WriteString("You are a personal finance advisor. Based on the budget history below, ")
	b.WriteString("give three short, concrete suggestions to improve this household's finances. ")
	b.WriteString("Be specific about amounts and categories.\n\n")

	if len(history) == 0 {
		b.WriteString("No budget history is available yet.\n")
		return b.String()
	}

	for _, p := range history {
		t := p.Totals()
		fmt.Fprintf(&b, "Period %s: income %s, outflow %s, left to spend %s",
			p.Label(),
			t.Income.Format(p.Currency),
			t.TotalOut.Format(p.Currency),
			t.LeftToSpend.Format(p.Currency))
		if name, spent := topExpense(p); name != "" {
			fmt.Fprintf(&b, ", top expense category %q at %s", name, spent.Format(p.Currency))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func topExpense(p core.BudgetPeriod) (string, core.Money) {
	var (
		name string
		max  core.Money
	)
	for _, e := range p.Expenses {
		if e.Spent.Cents > max.Cents {
			name = e.Name
			max = e.Spent
		}
	}
	return name, max
}
