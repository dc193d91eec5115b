package normalize

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field aliases are kept as data so the resolution order is testable on
// its own. For each canonical field the first present, non-nil source key
// wins. Source documents were written by several app versions, hence the
// spelling drift.
var (
	aliasTreeNumber   = []string{"treeNumber", "tree_number", "treeNo", "tagNumber"}
	aliasSpecies      = []string{"specie", "species", "treeSpecies"}
	aliasBarangay     = []string{"barangay", "brgy"}
	aliasLatitude     = []string{"latitude", "lat"}
	aliasLongitude    = []string{"longitude", "lng", "lon"}
	aliasDiameter     = []string{"diameter", "dbh", "treeDiameter"}
	aliasHeight       = []string{"height", "treeHeight"}
	aliasVolume       = []string{"volume", "treeVolume"}
	aliasForester     = []string{"foresterName", "forester", "assignedForester", "taggedBy"}
	aliasOwnerID      = []string{"ownerId", "applicantId", "userId"}
	aliasOwnerName    = []string{"ownerName", "applicantName", "fullName", "name"}
	aliasDateTagged   = []string{"dateTagged", "taggedAt", "createdAt", "timestamp"}
	aliasMunicipality = []string{"municipality", "city", "town"}

	aliasApplicant   = []string{"applicantName", "fullName", "name", "ownerName"}
	aliasAppType     = []string{"type", "applicationType", "permitType"}
	aliasStatus      = []string{"status", "applicationStatus", "appointmentStatus"}
	aliasCreatedAt   = []string{"createdAt", "dateSubmitted", "submittedAt", "timestamp"}
	aliasScheduledAt = []string{"scheduledAt", "appointmentDate", "scheduledDate", "date"}

	aliasFileName      = []string{"fileName", "filename", "documentName", "name"}
	aliasCommentAuthor = []string{"author", "commenterName", "userName"}
	aliasCommentBody   = []string{"body", "comment", "text", "message"}

	// Free-text fields scanned for municipality inference when no direct
	// municipality field is present, in scan order.
	aliasLocationText = []string{"location", "address", "barangay", "siteAddress"}
)

// pickRaw returns the first present, non-nil value among the aliased keys.
func pickRaw(doc bson.M, keys []string) (interface{}, bool) {
	if doc == nil {
		return nil, false
	}
	for _, key := range keys {
		if v, ok := doc[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// pickString resolves an aliased field to a trimmed string. Non-string
// scalars are stringified; anything else resolves to fallback.
func pickString(doc bson.M, keys []string, fallback string) string {
	v, ok := pickRaw(doc, keys)
	if !ok {
		return fallback
	}
	s := stringify(v)
	if s == "" {
		return fallback
	}
	return s
}

// pickFloat resolves an aliased field to a finite float. Strings holding
// numbers are accepted, every other shape resolves to nil.
func pickFloat(doc bson.M, keys []string) *float64 {
	v, ok := pickRaw(doc, keys)
	if !ok {
		return nil
	}
	return toFloat(v)
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case primitive.ObjectID:
		return s.Hex()
	default:
		return ""
	}
}

func toFloat(v interface{}) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// docID extracts the document identity, preferring _id, then an embedded
// id field. ObjectIDs become their hex form.
func docID(doc bson.M) string {
	if doc == nil {
		return ""
	}
	if v, ok := doc["_id"]; ok && v != nil {
		if s := stringify(v); s != "" {
			return s
		}
	}
	if v, ok := doc["id"]; ok && v != nil {
		return stringify(v)
	}
	return ""
}
