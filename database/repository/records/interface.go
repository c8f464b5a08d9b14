package recordsRepo

import (
	"context"

	"fitpass/database"
	"fitpass/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecordsRepository persists checkout audit entries and post-payment
// reconciliation discrepancies.
type RecordsRepository interface {
	CreateAudit(ctx context.Context, record models.BookingAuditRecord) (string, error)
	GetAuditByCheckoutID(ctx context.Context, checkoutID string) ([]models.BookingAuditRecord, error)
	CreateDiscrepancy(ctx context.Context, record models.ReconciliationDiscrepancy) (string, error)
	ListOpenDiscrepancies(ctx context.Context) ([]models.ReconciliationDiscrepancy, error)
	ResolveDiscrepancy(ctx context.Context, bookingID string) error
}

type mongoRecordsRepo struct {
	audits        *mongo.Collection
	discrepancies *mongo.Collection
}

// NewMongoRecordsRepo returns a RecordsRepository instance using MongoDB.
func NewMongoRecordsRepo() RecordsRepository {
	db := database.MongoClient.Database("fitpass")
	return &mongoRecordsRepo{
		audits:        db.Collection("booking_audits"),
		discrepancies: db.Collection("reconciliation_discrepancies"),
	}
}
