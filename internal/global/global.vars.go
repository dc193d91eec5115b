package global

import (
	"treesure/config"
	"treesure/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionNames holds the MongoDB collection names the dashboard reads.
type CollectionNames struct {
	Users         string // Admin accounts and forester/applicant profiles
	TreeInventory string // Tree records, owner keyed and appointment keyed
	Applications  string // Permit applications
	Uploads       string // Application upload documents
	Comments      string // Comments on uploads
	Appointments  string // Inspection appointments
}

// Global variables
var Validate *validator.Validate       // Request payload validator
var MongoDB_Session *mongo.Client      // MongoDB client session
var ServerConfig *config.Configuration // Server configuration
var ColNames = CollectionNames{
	Users:         "users",
	TreeInventory: "tree_inventory",
	Applications:  "applications",
	Uploads:       "uploads",
	Comments:      "comments",
	Appointments:  "appointments",
}

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registered collections
var RegistryDatabases = registry.NewRegistry[*mongo.Database]()     // Registered databases
