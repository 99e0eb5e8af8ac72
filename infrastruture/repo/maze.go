package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ i.MazeStore  = &MazeRepo{}
	_ i.MazeReader = &MazeRepo{}
)

// mazeRecord is the BSON shape of a stored maze. The document itself is kept
// as raw JSON so it round-trips byte for byte.
type mazeRecord struct {
	ID         string    `bson:"_id"`
	Difficulty string    `bson:"difficulty"`
	Seed       int64     `bson:"seed"`
	BatchID    string    `bson:"batchId,omitempty"`
	Payload    []byte    `bson:"payload"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// MazeRepo handles the persistence of maze documents.
type MazeRepo struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
		timeout:    2 * time.Second,
	}
}

// Save upserts the record keyed by its document id and returns a mongo:// location.
func (r *MazeRepo) Save(ctx context.Context, rec document.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := document.Marshal(rec.Document)
	if err != nil {
		return "", err
	}

	filter := bson.M{"_id": rec.Document.ID}
	update := bson.M{
		"$set": bson.M{
			"difficulty": rec.Document.Difficulty,
			"seed":       rec.Seed,
			"batchId":    rec.BatchID,
			"payload":    payload,
			"updatedAt":  time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return "", errors.New("unexpected error: " + err.Error())
	}

	return "mongo://" + r.collection.Database().Name() + "/" + r.collection.Name() + "/" + rec.Document.ID, nil
}

// ByID retrieves a stored maze by document id.
func (r *MazeRepo) ByID(ctx context.Context, id string) (*document.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stored mazeRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stored); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}

	doc, err := document.Unmarshal(stored.Payload)
	if err != nil {
		return nil, err
	}
	return &document.Record{Document: doc, Seed: stored.Seed, BatchID: stored.BatchID}, nil
}
