package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

// ErrNoVersions is returned when a settings category has no stored versions.
var ErrNoVersions = errors.New("no settings versions for category")

// Repository defines the persistence operations backing the settings service
// and the daily snapshot job.
type Repository interface {
	LatestSettings(ctx context.Context, category string) (models.SettingsVersion, error)
	SettingsVersion(ctx context.Context, category string, version int) (models.SettingsVersion, error)
	SettingsHistory(ctx context.Context, category string) ([]models.SettingsVersion, error)
	InsertSettingsVersion(ctx context.Context, v models.SettingsVersion) error
	AppendAudit(ctx context.Context, entry models.AuditEntry) error
	SaveDailySnapshot(ctx context.Context, snap models.DailySnapshot) error
}

// MongoDBRepository implements Repository on MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

const (
	settingsColl  = "settings_versions"
	auditColl     = "audit_log"
	snapshotsColl = "daily_snapshots"
)

// NewMongoDBRepository connects and pings the database.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// LatestSettings returns the highest version stored for a category.
func (r *MongoDBRepository) LatestSettings(ctx context.Context, category string) (models.SettingsVersion, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})

	var v models.SettingsVersion
	err := r.collection(settingsColl).FindOne(ctx, bson.M{"category": category}, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SettingsVersion{}, ErrNoVersions
	}
	if err != nil {
		return models.SettingsVersion{}, fmt.Errorf("load latest settings for %s: %w", category, err)
	}
	return v, nil
}

// SettingsVersion loads one specific version of a category.
func (r *MongoDBRepository) SettingsVersion(ctx context.Context, category string, version int) (models.SettingsVersion, error) {
	var v models.SettingsVersion
	err := r.collection(settingsColl).FindOne(ctx, bson.M{"category": category, "version": version}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SettingsVersion{}, ErrNoVersions
	}
	if err != nil {
		return models.SettingsVersion{}, fmt.Errorf("load settings %s v%d: %w", category, version, err)
	}
	return v, nil
}

// SettingsHistory lists every version of a category, oldest first.
func (r *MongoDBRepository) SettingsHistory(ctx context.Context, category string) ([]models.SettingsVersion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: 1}})

	cursor, err := r.collection(settingsColl).Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, fmt.Errorf("load settings history for %s: %w", category, err)
	}
	defer cursor.Close(ctx)

	var versions []models.SettingsVersion
	if err := cursor.All(ctx, &versions); err != nil {
		return nil, fmt.Errorf("decode settings history for %s: %w", category, err)
	}
	return versions, nil
}

// InsertSettingsVersion appends a new immutable version document.
func (r *MongoDBRepository) InsertSettingsVersion(ctx context.Context, v models.SettingsVersion) error {
	if _, err := r.collection(settingsColl).InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert settings version %s v%d: %w", v.Category, v.Version, err)
	}
	return nil
}

// AppendAudit writes one audit log entry.
func (r *MongoDBRepository) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	if _, err := r.collection(auditColl).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// SaveDailySnapshot persists one day's advisor aggregate.
func (r *MongoDBRepository) SaveDailySnapshot(ctx context.Context, snap models.DailySnapshot) error {
	if _, err := r.collection(snapshotsColl).InsertOne(ctx, snap); err != nil {
		return fmt.Errorf("insert daily snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
