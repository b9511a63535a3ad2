package logger

import (
	"carrental/config"
	"carrental/shared/timezone"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	CategoryUserActivity    = "USER_ACTIVITY"
	CategoryUserLogin       = "USER_LOGIN"
	CategoryRentalActivity  = "RENTAL_ACTIVITY"
	CategoryPaymentActivity = "PAYMENT_ACTIVITY"
	CategoryVehicleActivity = "VEHICLE_ACTIVITY"
	CategoryDatabase        = "DATABASE"
	CategoryPerformance     = "PERFORMANCE"

	categoryField = "category"
)

const (
	slowThreshold    = time.Second
	noticeThreshold  = 500 * time.Millisecond
	auditTimeLayout  = "2006-01-02 15:04:05"
	auditEmptyDetail = "-"
)

func UserActivity(username, action, details string) {
	log.Info().
		Str(categoryField, CategoryUserActivity).
		Str("user", username).
		Str("details", details).
		Msg(action)
}

func UserLogin(username string, success bool) {
	event := log.Info()
	msg := "login succeeded"

	if !success {
		event = log.Warn()
		msg = "login failed"
	}

	event.Str(categoryField, CategoryUserLogin).Str("user", username).Msg(msg)
}

func RentalActivity(rentalID int64, action, details string) {
	log.Info().
		Str(categoryField, CategoryRentalActivity).
		Int64("rental_id", rentalID).
		Str("details", details).
		Msg(action)
}

func PaymentActivity(paymentID int64, action string, amount decimal.Decimal, status string) {
	log.Info().
		Str(categoryField, CategoryPaymentActivity).
		Int64("payment_id", paymentID).
		Str("amount", amount.StringFixed(2)).
		Str("status", status).
		Msg(action)
}

func VehicleActivity(vehicleID int64, action, details string) {
	log.Info().
		Str(categoryField, CategoryVehicleActivity).
		Int64("vehicle_id", vehicleID).
		Str("details", details).
		Msg(action)
}

func DatabaseOperation(operation, table string, recordID int64, success bool) {
	event := log.Debug()
	if !success {
		event = log.Error()
	}

	if recordID > 0 {
		event = event.Int64("record_id", recordID)
	}

	event.Str(categoryField, CategoryDatabase).Str("table", table).Bool("success", success).Msg(operation)
}

// Performance logs an elapsed duration; anything above one second is reported as slow.
func Performance(operation string, elapsed time.Duration) {
	event := log.Debug()
	msg := operation

	switch {
	case elapsed > slowThreshold:
		event = log.Warn()
		msg = "SLOW: " + operation
	case elapsed > noticeThreshold:
		event = log.Info()
	}

	event.Str(categoryField, CategoryPerformance).Int64("elapsed_ms", elapsed.Milliseconds()).Msg(msg)
}

// PerformanceLevel reports the level Performance uses for the given duration.
func PerformanceLevel(elapsed time.Duration) zerolog.Level {
	switch {
	case elapsed > slowThreshold:
		return zerolog.WarnLevel
	case elapsed > noticeThreshold:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Recorder receives one audit entry per operator action.
type Recorder interface {
	Record(user, action, resource, details string) error
}

// Audit appends one line per operator action to a daily audit file.
type Audit struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

func NewAudit(dir string, now func() time.Time) *Audit {
	return &Audit{dir: dir, now: now}
}

// NewRecorder writes the audit trail next to the application logs.
func NewRecorder(cfg *config.Config) Recorder {
	return NewAudit(cfg.Log.Dir, timezone.Now)
}

func AuditLine(at time.Time, user, action, resource, details string) string {
	if details == "" {
		details = auditEmptyDetail
	}

	return fmt.Sprintf("%s | User: %s | Action: %s | Resource: %s | Details: %s",
		at.Format(auditTimeLayout), user, action, resource, details)
}

func (a *Audit) Record(user, action, resource, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	if err := os.MkdirAll(a.dir, logDirMode); err != nil {
		return fmt.Errorf("failed to create audit dir: %w", err)
	}

	file, err := openAppend(dailyFile(a.dir, auditLogPrefix, now))
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, AuditLine(now, user, action, resource, details)); err != nil {
		return fmt.Errorf("failed to write audit line: %w", err)
	}

	return nil
}

// Track starts timing operation; call the returned func to log the elapsed time.
func Track(operation string) func() {
	start := time.Now()

	return func() {
		Performance(operation, time.Since(start))
	}
}
