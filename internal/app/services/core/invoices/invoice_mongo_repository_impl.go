package invoices

import (
	"context"
	"errors"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/mongodb"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InvoiceMongoRepository struct {
	Collection *mongo.Collection
}

func NewInvoiceMongoRepository(db *mongo.Client, dbName string) contracts.InvoiceRepository {
	return &InvoiceMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionInvoices),
	}
}

func (repo *InvoiceMongoRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, invoice)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrAlreadyExists(err, constvars.MongoCollectionInvoices)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return mongodb.InsertedHex(result)
}

func (repo *InvoiceMongoRepository) FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	objectID, err := primitive.ObjectIDFromHex(invoiceID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var invoice models.Invoice
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &invoice, nil
}

func (repo *InvoiceMongoRepository) FindAll(ctx context.Context, scope authorization.Predicate, filter *requests.InvoiceFilter, pagination *requests.Pagination) ([]models.Invoice, int64, error) {
	query, ok := mongodb.ScopeFilter(scope)
	if !ok {
		return []models.Invoice{}, 0, nil
	}
	if filter != nil && filter.PaymentStatus != "" {
		query["paymentStatus"] = filter.PaymentStatus
	}
	return mongodb.FindPage[models.Invoice](ctx, repo.Collection, query, bson.D{{Key: "createdAt", Value: -1}}, pagination)
}

func (repo *InvoiceMongoRepository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	objectID, err := primitive.ObjectIDFromHex(invoice.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	document := *invoice
	document.ID = ""

	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": document})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// MarkPaid only matches pending invoices, so two racing payments cannot both
// flip the same invoice.
func (repo *InvoiceMongoRepository) MarkPaid(ctx context.Context, invoice *models.Invoice) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(invoice.ID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":           objectID,
		"paymentStatus": models.PaymentStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus":   models.PaymentStatusPaid,
		"paymentMethod":   invoice.PaymentMethod,
		"paymentIntentId": invoice.PaymentIntentID,
		"paidAt":          invoice.PaidAt,
		"updatedAt":       invoice.UpdatedAt,
	}}
	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *InvoiceMongoRepository) DeleteByID(ctx context.Context, invoiceID string) error {
	objectID, err := primitive.ObjectIDFromHex(invoiceID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
