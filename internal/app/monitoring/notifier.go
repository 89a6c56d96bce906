package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"transcript-sheets/internal/config"
)

const (
	alertTitle   = "🚨 Transcript Sheets Service Alert"
	alertFooter  = "transcript-sheets monitoring"
	discordRed   = 15158332
	serviceName  = "transcript-sheets"
	alertTimeout = 10 * time.Second
)

// Notifier delivers alerts to every configured webhook
type Notifier struct {
	slackURL   string
	discordURL string
	customURL  string
	client     *http.Client
	logger     *zap.Logger
}

// NewNotifier creates a notifier from monitoring configuration
func NewNotifier(cfg config.MonitoringConfig, logger *zap.Logger) *Notifier {
	return &Notifier{
		slackURL:   cfg.SlackWebhookURL,
		discordURL: cfg.DiscordWebhookURL,
		customURL:  cfg.CustomWebhookURL,
		client:     &http.Client{Timeout: alertTimeout},
		logger:     logger,
	}
}

// Configured reports whether any alert channel is set
func (n *Notifier) Configured() bool {
	return n.slackURL != "" || n.discordURL != "" || n.customURL != ""
}

// Notify sends the report to every channel when it is unhealthy. It returns
// per-channel delivery results and whether any channel succeeded.
func (n *Notifier) Notify(ctx context.Context, report *Report) (map[string]bool, bool) {
	sent := make(map[string]bool)
	if report.Healthy() {
		return sent, true
	}

	message := FormatAlert(report)
	now := time.Now()

	if n.slackURL != "" {
		sent["slack"] = n.post(ctx, "slack", n.slackURL, map[string]interface{}{
			"attachments": []map[string]interface{}{{
				"color":  "danger",
				"title":  alertTitle,
				"text":   message,
				"footer": alertFooter,
				"ts":     now.Unix(),
			}},
		}, http.StatusOK)
	}

	if n.discordURL != "" {
		sent["discord"] = n.post(ctx, "discord", n.discordURL, map[string]interface{}{
			"embeds": []map[string]interface{}{{
				"title":       alertTitle,
				"description": message,
				"color":       discordRed,
				"timestamp":   now.UTC().Format(time.RFC3339),
				"footer":      map[string]string{"text": alertFooter},
			}},
		}, http.StatusNoContent)
	}

	if n.customURL != "" {
		sent["custom"] = n.post(ctx, "custom", n.customURL, map[string]interface{}{
			"service":        serviceName,
			"alert_type":     "health_check_failure",
			"timestamp":      now.UTC().Format(time.RFC3339),
			"health_results": report,
		}, http.StatusOK, http.StatusCreated, http.StatusAccepted)
	}

	delivered := false
	for _, ok := range sent {
		delivered = delivered || ok
	}
	return sent, delivered
}

func (n *Notifier) post(ctx context.Context, channel, url string, payload interface{}, accepted ...int) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("Failed to encode alert", zap.String("channel", channel), zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("Failed to build alert request", zap.String("channel", channel), zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("Failed to send alert", zap.String("channel", channel), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	for _, code := range accepted {
		if resp.StatusCode == code {
			return true
		}
	}
	n.logger.Warn("Alert rejected", zap.String("channel", channel), zap.Int("status", resp.StatusCode))
	return false
}

// FormatAlert renders the failed checks of a report as a chat message
func FormatAlert(report *Report) string {
	names := make([]string, 0, len(report.Checks))
	for name, result := range report.Checks {
		if result.Status == "fail" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Service is healthy ✅"
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("**Service Health Check Failed**\n\n")
	fmt.Fprintf(&b, "**URL:** %s\n", report.BaseURL)
	fmt.Fprintf(&b, "**Time:** %s\n", report.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Overall Status:** %s\n\n", strings.ToUpper(report.OverallStatus))
	b.WriteString("**Failed Checks:**\n")
	for _, name := range names {
		errMsg := report.Checks[name].Error
		if errMsg == "" {
			errMsg = "Unknown error"
		}
		fmt.Fprintf(&b, "• %s: %s\n", titleCase(name), errMsg)
	}
	b.WriteString("\n**Action Required:** Please investigate the service immediately.")
	return b.String()
}

func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
