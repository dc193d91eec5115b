package models

import "time"

// TreeRecord is one normalized entry from the tree_inventory collection.
// Numeric measurements stay nil when the source document omits them or
// carries them in an unparseable shape.
type TreeRecord struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	TreeNumber    string     `json:"treeNumber" bson:"treeNumber,omitempty"`
	Species       string     `json:"species" bson:"species,omitempty"`
	Municipality  string     `json:"municipality" bson:"municipality,omitempty"`
	Barangay      string     `json:"barangay" bson:"barangay,omitempty"`
	Latitude      *float64   `json:"latitude" bson:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude" bson:"longitude,omitempty"`
	Diameter      *float64   `json:"diameter" bson:"diameter,omitempty"`
	Height        *float64   `json:"height" bson:"height,omitempty"`
	Volume        *float64   `json:"volume" bson:"volume,omitempty"`
	ForesterName  string     `json:"foresterName" bson:"foresterName,omitempty"`
	OwnerID       string     `json:"ownerId" bson:"ownerId,omitempty"`
	OwnerName     string     `json:"ownerName" bson:"ownerName,omitempty"`
	AppointmentID string     `json:"appointmentId" bson:"appointmentId,omitempty"`
	DateTagged    *time.Time `json:"dateTagged" bson:"dateTagged,omitempty"`
}

// CommentRecord is one comment attached to an upload, oldest first.
type CommentRecord struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Author    string     `json:"author" bson:"author,omitempty"`
	Body      string     `json:"body" bson:"body,omitempty"`
	CreatedAt *time.Time `json:"createdAt" bson:"createdAt,omitempty"`
}

// UploadRecord is one document upload belonging to an application, with
// its comment thread nested in chronological order.
type UploadRecord struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	FileName  string          `json:"fileName" bson:"fileName,omitempty"`
	Status    string          `json:"status" bson:"status,omitempty"`
	CreatedAt *time.Time      `json:"createdAt" bson:"createdAt,omitempty"`
	Comments  []CommentRecord `json:"comments" bson:"comments,omitempty"`
}

// ApplicationRecord is one normalized permit application. CreatedAt is
// never nil; records with no parseable timestamp get the fetch time so
// recency ordering stays total.
type ApplicationRecord struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	ApplicantName string         `json:"applicantName" bson:"applicantName,omitempty"`
	Type          string         `json:"type" bson:"type,omitempty"`
	Status        string         `json:"status" bson:"status,omitempty"`
	Municipality  string         `json:"municipality" bson:"municipality,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt,omitempty"`
	Uploads       []UploadRecord `json:"uploads" bson:"uploads,omitempty"`
}

// AppointmentRecord is one normalized field appointment with the trees
// tagged during the visit.
type AppointmentRecord struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	ApplicantName string       `json:"applicantName" bson:"applicantName,omitempty"`
	ForesterName  string       `json:"foresterName" bson:"foresterName,omitempty"`
	Type          string       `json:"type" bson:"type,omitempty"`
	Status        string       `json:"status" bson:"status,omitempty"`
	Municipality  string       `json:"municipality" bson:"municipality,omitempty"`
	ScheduledAt   *time.Time   `json:"scheduledAt" bson:"scheduledAt,omitempty"`
	Trees         []TreeRecord `json:"trees" bson:"trees,omitempty"`
}

// Snapshot bundles the three normalized datasets of one dashboard session.
type Snapshot struct {
	Trees        []TreeRecord        `json:"trees"`
	Applications []ApplicationRecord `json:"applications"`
	Appointments []AppointmentRecord `json:"appointments"`
	FetchedAt    time.Time           `json:"fetchedAt"`
	Degraded     []string            `json:"degraded,omitempty"`
}
