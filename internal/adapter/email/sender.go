package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
)

// Config is the SMTP server used for outgoing mail
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Breaker settings: trip after 3 consecutive SMTP failures, retry after a minute
const (
	breakerMaxFailures = 3
	breakerOpenTimeout = time.Minute
)

// Sender delivers recommendation digests over SMTP through a circuit breaker
type Sender struct {
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	send    func(e *email.Email) error
	log     logrus.FieldLogger
}

// NewSender creates a new email sender.
// log may be nil.
func NewSender(cfg Config, log logrus.FieldLogger) *Sender {
	s := &Sender{
		cfg: cfg,
		log: logging.OrDiscard(log),
	}
	s.send = s.smtpSend
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "smtp",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
		},
	})
	return s
}

// Notify emails the owner their monthly growth recommendation
func (s *Sender) Notify(ctx context.Context, user *domain.User, rec *domain.RecommendationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{user.Email}
	e.Subject = "Your monthly spending forecast"
	e.Text = []byte(RenderDigest(user, rec))

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.send(e)
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Error("failed to send digest email")
		return fmt.Errorf("failed to send digest email: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("digest email sent")
	return nil
}

func (s *Sender) smtpSend(e *email.Email) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return e.Send(addr, auth)
}

// RenderDigest formats the plain-text digest body
func RenderDigest(user *domain.User, rec *domain.RecommendationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", user.Name)
	fmt.Fprintf(&b, "Average predicted monthly spend: %.2f\n", rec.AveragePredictedExpense)
	fmt.Fprintf(&b, "Current monthly income: %.2f\n", rec.CurrentIncome)
	fmt.Fprintf(&b, "Income needed to save %d%%: %.2f (%+.2f%%)\n", rec.SavingsGoalPercent, rec.RequiredIncome, rec.IncomeGrowthNeededPercent)
	fmt.Fprintf(&b, "Monthly savings target: %.2f\n\n", rec.MonthlySavingsTarget)

	direction := "stable or decreasing"
	if rec.ExpenseTrend.IsIncreasing {
		direction = "increasing"
	}
	fmt.Fprintf(&b, "Your spending is %s (%.2f%% per month).\n\n", direction, rec.ExpenseTrend.MonthlyGrowthRatePercent)

	b.WriteString(rec.RecommendationText)
	b.WriteString("\n")
	for _, item := range rec.ActionItems {
		fmt.Fprintf(&b, "  - %s\n", item)
	}

	b.WriteString("\nBest regards,\nSpendcast")
	return b.String()
}
