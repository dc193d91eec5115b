package normalize

import (
	"sort"
	"strings"
	"time"

	"treesure/internal/api/report/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Defaults applied when a source document misses every alias for a field.
const (
	UnknownValue    = "Unknown"
	UnknownForester = "Unknown Forester"
)

// Tree converts one raw tree_inventory document into a canonical record.
// owner and appointment are optional context documents fetched from the
// parent path; either may be nil. A nil or empty doc yields nil.
//
// The function is pure: it never mutates its inputs and never panics on
// malformed shapes.
func Tree(doc, owner, appointment bson.M) *models.TreeRecord {
	if len(doc) == 0 {
		return nil
	}

	record := &models.TreeRecord{
		ID:           docID(doc),
		TreeNumber:   pickString(doc, aliasTreeNumber, UnknownValue),
		Species:      pickString(doc, aliasSpecies, UnknownValue),
		Barangay:     pickString(doc, aliasBarangay, ""),
		Latitude:     pickFloat(doc, aliasLatitude),
		Longitude:    pickFloat(doc, aliasLongitude),
		Diameter:     pickFloat(doc, aliasDiameter),
		Height:       pickFloat(doc, aliasHeight),
		Volume:       pickFloat(doc, aliasVolume),
		Municipality: inferDocMunicipality(doc, owner),
	}

	record.ForesterName = pickString(doc, aliasForester, "")
	if record.ForesterName == "" {
		record.ForesterName = pickString(appointment, aliasForester, UnknownForester)
	}

	record.OwnerID = pickString(doc, aliasOwnerID, "")
	if record.OwnerID == "" {
		record.OwnerID = docID(owner)
	}
	record.OwnerName = pickString(doc, aliasOwnerName, "")
	if record.OwnerName == "" {
		record.OwnerName = pickString(owner, aliasOwnerName, UnknownValue)
	}

	record.AppointmentID = docID(appointment)
	if raw, ok := pickRaw(doc, aliasDateTagged); ok {
		record.DateTagged = ParseTimestamp(raw)
	}

	return record
}

// Application converts one raw permit application document. fetchedAt
// substitutes for an unparseable submission time so recency ordering
// stays total. A nil or empty doc yields nil.
func Application(doc bson.M, fetchedAt time.Time) *models.ApplicationRecord {
	if len(doc) == 0 {
		return nil
	}

	record := &models.ApplicationRecord{
		ID:            docID(doc),
		ApplicantName: pickString(doc, aliasApplicant, UnknownValue),
		Type:          NormalizeApplicationType(pickString(doc, aliasAppType, "")),
		Status:        NormalizeStatus(pickString(doc, aliasStatus, "")),
		Municipality:  inferDocMunicipality(doc, nil),
		CreatedAt:     fetchedAt,
	}

	if raw, ok := pickRaw(doc, aliasCreatedAt); ok {
		if parsed := ParseTimestamp(raw); parsed != nil {
			record.CreatedAt = *parsed
		}
	}

	return record
}

// Appointment converts one raw appointment document along with the raw
// tree documents tagged during the visit. A nil or empty doc yields nil.
func Appointment(doc bson.M, treeDocs []bson.M) *models.AppointmentRecord {
	if len(doc) == 0 {
		return nil
	}

	record := &models.AppointmentRecord{
		ID:            docID(doc),
		ApplicantName: pickString(doc, aliasApplicant, UnknownValue),
		ForesterName:  pickString(doc, aliasForester, UnknownForester),
		Type:          NormalizeApplicationType(pickString(doc, aliasAppType, "")),
		Status:        NormalizeStatus(pickString(doc, aliasStatus, "")),
		Municipality:  inferDocMunicipality(doc, nil),
	}

	if raw, ok := pickRaw(doc, aliasScheduledAt); ok {
		record.ScheduledAt = ParseTimestamp(raw)
	}

	for _, treeDoc := range treeDocs {
		if tree := Tree(treeDoc, nil, doc); tree != nil {
			record.Trees = append(record.Trees, *tree)
		}
	}

	return record
}

// Upload converts one raw upload document with its raw comment thread.
// Comments come back oldest first. A nil or empty doc yields nil.
func Upload(doc bson.M, commentDocs []bson.M) *models.UploadRecord {
	if len(doc) == 0 {
		return nil
	}

	record := &models.UploadRecord{
		ID:       docID(doc),
		FileName: pickString(doc, aliasFileName, UnknownValue),
		Status:   NormalizeStatus(pickString(doc, aliasStatus, "")),
	}
	if raw, ok := pickRaw(doc, aliasCreatedAt); ok {
		record.CreatedAt = ParseTimestamp(raw)
	}

	for _, commentDoc := range commentDocs {
		if comment := Comment(commentDoc); comment != nil {
			record.Comments = append(record.Comments, *comment)
		}
	}
	sort.SliceStable(record.Comments, func(i, j int) bool {
		a, b := record.Comments[i].CreatedAt, record.Comments[j].CreatedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})

	return record
}

// Comment converts one raw comment document. A nil or empty doc yields nil.
func Comment(doc bson.M) *models.CommentRecord {
	if len(doc) == 0 {
		return nil
	}
	record := &models.CommentRecord{
		ID:     docID(doc),
		Author: pickString(doc, aliasCommentAuthor, UnknownValue),
		Body:   pickString(doc, aliasCommentBody, ""),
	}
	if raw, ok := pickRaw(doc, aliasCreatedAt); ok {
		record.CreatedAt = ParseTimestamp(raw)
	}
	return record
}

// inferDocMunicipality resolves municipality from a document and its
// optional owner context. Direct fields win; otherwise the free-text
// location fields of both documents are concatenated and scanned against
// the gazetteer.
func inferDocMunicipality(doc, owner bson.M) string {
	direct := pickString(doc, aliasMunicipality, "")
	if direct == "" {
		direct = pickString(owner, aliasMunicipality, "")
	}

	var parts []string
	for _, source := range []bson.M{doc, owner} {
		if source == nil {
			continue
		}
		for _, key := range aliasLocationText {
			if v, ok := source[key]; ok && v != nil {
				if s := stringify(v); s != "" {
					parts = append(parts, s)
				}
			}
		}
	}

	return InferMunicipality(direct, strings.Join(parts, " "))
}
