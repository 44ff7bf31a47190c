// Package controller implements the domain services for the transport
// operations core: entity lifecycle with referential-integrity checks,
// the company revenue invariant, and read-only reporting.
package controller

import (
	"context"

	"github.com/St4n1l/TransportCompany/internal/transport/db"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
)

// EventProducer publishes entity lifecycle events. Services tolerate a
// nil producer; event publication is fire-and-forget.
type EventProducer interface {
	Produce(eventType events.EventType, entity string, entityID uint)
}

func sumPrices(transports []models.Transport) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transports {
		total = total.Add(t.Price)
	}
	return total
}

// recomputeRevenue re-derives and persists the company's revenue from
// its current transport set. Callers run it inside the same transaction
// as the transport write so revenue can never go stale against a
// partial write.
func recomputeRevenue(ctx context.Context, tx *db.Repository, companyID uint) error {
	transports, err := tx.ListTransportsByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	return tx.UpdateCompanyRevenue(ctx, companyID, sumPrices(transports))
}
