package recordsRepo

import (
	"context"
	"time"

	"fitpass/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAudit inserts a checkout audit record and returns its ID.
func (r *mongoRecordsRepo) CreateAudit(ctx context.Context, record models.BookingAuditRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	_, err := r.audits.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetAuditByCheckoutID fetches all audit records for a checkout, newest first.
func (r *mongoRecordsRepo) GetAuditByCheckoutID(ctx context.Context, checkoutID string) ([]models.BookingAuditRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.audits.Find(ctx, bson.M{"checkoutId": checkoutID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingAuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateDiscrepancy inserts a reconciliation discrepancy and returns its ID.
func (r *mongoRecordsRepo) CreateDiscrepancy(ctx context.Context, record models.ReconciliationDiscrepancy) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	_, err := r.discrepancies.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// ListOpenDiscrepancies returns unresolved discrepancies, oldest first, so
// an operator can chase the reconciliation backlog.
func (r *mongoRecordsRepo) ListOpenDiscrepancies(ctx context.Context) ([]models.ReconciliationDiscrepancy, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.discrepancies.Find(ctx, bson.M{"resolvedAt": bson.M{"$exists": false}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ReconciliationDiscrepancy
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ResolveDiscrepancy marks a discrepancy as settled.
func (r *mongoRecordsRepo) ResolveDiscrepancy(ctx context.Context, bookingID string) error {
	update := bson.M{"$set": bson.M{"resolvedAt": time.Now()}}
	_, err := r.discrepancies.UpdateMany(ctx, bson.M{"bookingId": bookingID, "resolvedAt": bson.M{"$exists": false}}, update)
	return err
}
