// Package database - read-path indexes for the dashboard collections.
package database

import (
	"context"
	"strings"

	"treesure/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReportIndexes creates the indexes the reporting fetch layer relies
// on. Existing indexes are tolerated so restarts stay idempotent.
func CreateReportIndexes(ctx context.Context, db *mongo.Database) error {
	// tree_inventory: ownerId, for the per-owner subcollection fan-out
	treeInventory := db.Collection(global.ColNames.TreeInventory)
	if _, err := treeInventory.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
		},
		Options: options.Index().SetName("tree_owner").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// tree_inventory: appointmentId, for the appointment-keyed tree variant
	if _, err := treeInventory.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "appointmentId", Value: 1},
		},
		Options: options.Index().SetName("tree_appointment").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// uploads: applicationId, for the upload fan-out per application
	uploads := db.Collection(global.ColNames.Uploads)
	if _, err := uploads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "applicationId", Value: 1},
		},
		Options: options.Index().SetName("upload_application"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// comments: (applicationId, uploadId), for the nested comment fetch
	comments := db.Collection(global.ColNames.Comments)
	if _, err := comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "applicationId", Value: 1},
			{Key: "uploadId", Value: 1},
		},
		Options: options.Index().SetName("comment_application_upload"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// users: unique email for the login lookup
	users := db.Collection(global.ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetName("user_email").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
