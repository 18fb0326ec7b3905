package service

import (
	"errors"
	"time"

	"sportsbook/metrics"

	log "github.com/sirupsen/logrus"
)

// DefaultListLimit caps list reads when the caller gives no limit
const DefaultListLimit = 50

// observe records latency and, on failure, the rejection reason of an operation
func observe(operation string, start time.Time, err error) {
	metrics.ObserveOperation(operation, start)
	if err == nil {
		return
	}

	reason := RejectionReason(err)
	metrics.RecordRejection(operation, reason)

	entry := log.WithFields(log.Fields{
		"operation": operation,
		"reason":    reason,
	})
	if reason == "internal" || errors.Is(err, ErrLedgerInconsistent) {
		entry.WithError(err).Error("Ledger operation failed")
		return
	}
	entry.WithError(err).Debug("Ledger operation rejected")
}
