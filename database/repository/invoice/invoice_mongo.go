package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"healthhub/database"
	"healthhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo creates a new instance of InvoiceRepository using MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	coll := database.DB().Collection("invoices")
	repo := &MongoInvoiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create invoice indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoInvoiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "invoiceId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new invoice document.
func (r *MongoInvoiceRepo) Create(invoice *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, invoice)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// UpdateStatus records the outcome of a payment attempt.
func (r *MongoInvoiceRepo) UpdateStatus(invoiceID, status, paymentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status}
	if paymentID != "" {
		set["paymentId"] = paymentID
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"invoiceId": invoiceID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice with id %s not found", invoiceID)
	}
	return nil
}

// GetByAppointment lists the invoices raised for one appointment.
func (r *MongoInvoiceRepo) GetByAppointment(appointmentID string) ([]models.Invoice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}
	return invoices, nil
}
