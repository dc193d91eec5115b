package reportsvc

import (
	"context"
	"sort"
	"sync"
	"time"

	"treesure/internal/api/report/models"
	"treesure/internal/api/report/normalize"
	"treesure/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchSnapshot pulls all raw collections and normalizes them into one
// snapshot. A failed read degrades its own scope to an empty result and
// is recorded in Degraded; the rest of the snapshot still comes back, so
// the dashboard always renders with whatever data survived.
func (s *ReportService) fetchSnapshot(ctx context.Context) *models.Snapshot {
	snapshot := &models.Snapshot{FetchedAt: time.Now()}

	var (
		userDocs        []bson.M
		treeDocs        []bson.M
		applicationDocs []bson.M
		appointmentDocs []bson.M
	)

	// Each fetch writes to its own slot, so no coordination beyond the
	// WaitGroup is needed.
	type scope struct {
		name string
		coll *mongo.Collection
		dest *[]bson.M
	}
	scopes := []scope{
		{"users", s.users, &userDocs},
		{"trees", s.trees, &treeDocs},
		{"applications", s.applications, &applicationDocs},
		{"appointments", s.appointments, &appointmentDocs},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, sc := range scopes {
		wg.Add(1)
		go func(sc scope) {
			defer wg.Done()
			docs, err := findAllDocs(ctx, sc.coll)
			if err != nil {
				logger.WithModuleAndDataset("report", sc.name).
					WithError(err).Warn("Fetch failed, scope degraded to empty")
				mu.Lock()
				snapshot.Degraded = append(snapshot.Degraded, sc.name)
				mu.Unlock()
				return
			}
			*sc.dest = docs
		}(sc)
	}
	wg.Wait()
	sort.Strings(snapshot.Degraded)

	userByID := indexDocsByID(userDocs)
	appointmentByID := indexDocsByID(appointmentDocs)
	treesByAppointment := make(map[string][]bson.M)

	snapshot.Trees = make([]models.TreeRecord, 0, len(treeDocs))
	for _, doc := range treeDocs {
		ownerID := ownerIDOf(doc)
		appointmentID := appointmentIDOf(doc)
		if appointmentID != "" {
			treesByAppointment[appointmentID] = append(treesByAppointment[appointmentID], doc)
		}
		record := normalize.Tree(doc, userByID[ownerID], appointmentByID[appointmentID])
		if record != nil {
			snapshot.Trees = append(snapshot.Trees, *record)
		}
	}

	snapshot.Applications = s.normalizeApplications(ctx, applicationDocs, snapshot.FetchedAt)

	snapshot.Appointments = make([]models.AppointmentRecord, 0, len(appointmentDocs))
	for _, doc := range appointmentDocs {
		record := normalize.Appointment(doc, treesByAppointment[docIDOf(doc)])
		if record != nil {
			snapshot.Appointments = append(snapshot.Appointments, *record)
		}
	}

	return snapshot
}

// normalizeApplications fans out the upload and comment sub-fetches of
// every application, bounded by the configured fan-out limit. Each
// goroutine writes to its own index, a sub-fetch failure leaves that
// application without uploads rather than failing the pass.
func (s *ReportService) normalizeApplications(ctx context.Context, docs []bson.M, fetchedAt time.Time) []models.ApplicationRecord {
	uploadsByIndex := make([][]models.UploadRecord, len(docs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.fanoutLimit)
	for i, doc := range docs {
		appID := docIDOf(doc)
		if appID == "" {
			continue
		}
		wg.Add(1)
		go func(i int, appID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			uploadsByIndex[i] = s.fetchUploads(ctx, appID)
		}(i, appID)
	}
	wg.Wait()

	records := make([]models.ApplicationRecord, 0, len(docs))
	for i, doc := range docs {
		record := normalize.Application(doc, fetchedAt)
		if record == nil {
			continue
		}
		record.Uploads = uploadsByIndex[i]
		records = append(records, *record)
	}
	return records
}

// fetchUploads reads one application's uploads with their comment
// threads, oldest upload first.
func (s *ReportService) fetchUploads(ctx context.Context, applicationID string) []models.UploadRecord {
	uploadDocs, err := findDocs(ctx, s.uploads, bson.M{"applicationId": applicationID})
	if err != nil {
		logger.WithModuleAndDataset("report", "uploads").
			WithError(err).WithField("applicationId", applicationID).
			Warn("Upload fetch failed, application degraded to no uploads")
		return nil
	}

	records := make([]models.UploadRecord, 0, len(uploadDocs))
	for _, uploadDoc := range uploadDocs {
		uploadID := docIDOf(uploadDoc)
		commentDocs, err := findDocs(ctx, s.comments, bson.M{"uploadId": uploadID})
		if err != nil {
			logger.WithModuleAndDataset("report", "comments").
				WithError(err).WithField("uploadId", uploadID).
				Warn("Comment fetch failed, upload degraded to no comments")
			commentDocs = nil
		}
		if record := normalize.Upload(uploadDoc, commentDocs); record != nil {
			records = append(records, *record)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].CreatedAt, records[j].CreatedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})
	return records
}

func findAllDocs(ctx context.Context, coll *mongo.Collection) ([]bson.M, error) {
	return findDocs(ctx, coll, bson.M{})
}

func findDocs(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]bson.M, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func indexDocsByID(docs []bson.M) map[string]bson.M {
	index := make(map[string]bson.M, len(docs))
	for _, doc := range docs {
		if id := docIDOf(doc); id != "" {
			index[id] = doc
		}
	}
	return index
}

func docIDOf(doc bson.M) string {
	return stringField(doc, "_id", "id")
}

func ownerIDOf(doc bson.M) string {
	return stringField(doc, "ownerId", "applicantId", "userId")
}

func appointmentIDOf(doc bson.M) string {
	return stringField(doc, "appointmentId")
}

func stringField(doc bson.M, keys ...string) string {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case interface{ Hex() string }:
			return s.Hex()
		}
	}
	return ""
}
