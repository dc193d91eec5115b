package main

import (
	"context"

	"treesure/config"
	"treesure/internal/database"
	"treesure/internal/global"

	"github.com/sirupsen/logrus"
)

// InitGlobal prepares everything the handlers depend on: validator,
// configuration, database session and the collection registry.
func InitGlobal() {
	initValidator()
	initConfig()
	initDatabase_MongoDB()
	initRegistry()
}

func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateReportIndexes(context.TODO(), db); err != nil {
		// Index creation failures are survivable, queries just run slower.
		logrus.Warnf("Failed to create report indexes: %v", err)
	} else {
		logrus.Info("Ensured report indexes")
	}
}

// initRegistry registers the database and the dashboard collections so
// services can resolve them by name.
func initRegistry() {
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	if _, err := global.RegistryDatabases.Register(dbName, db); err != nil {
		logrus.Fatalf("Failed to register database %s: %v", dbName, err)
	}

	collections := []string{
		global.ColNames.Users,
		global.ColNames.TreeInventory,
		global.ColNames.Applications,
		global.ColNames.Uploads,
		global.ColNames.Comments,
		global.ColNames.Appointments,
	}
	for _, name := range collections {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}
	logrus.Infof("Registered %d collections", len(collections))
}
