package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

const (
	filesCollection    = "files"
	peersCollection    = "peers"
	activityCollection = "activity"
	usersCollection    = "users"
	countersCollection = "counters"

	activityCounter = "activity"
)

// Store keeps the tracker in MongoDB, one collection per record type.
type Store struct {
	files    *mongo.Collection
	peers    *mongo.Collection
	activity *mongo.Collection
	users    *mongo.Collection
	counters *mongo.Collection
}

func NewStore(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		files:    db.Collection(filesCollection),
		peers:    db.Collection(peersCollection),
		activity: db.Collection(activityCollection),
		users:    db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
	}
}

func Connect(ctx context.Context, uri string, extra ...*options.ClientOptions) (*mongo.Client, error) {
	opts := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, extra...)
	client, err := mongo.Connect(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.files, []mongo.IndexModel{
			{Keys: bson.D{{Key: "infoHash", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		}},
		{s.peers, []mongo.IndexModel{
			{Keys: bson.D{{Key: "fileId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		}},
		{s.activity, []mongo.IndexModel{
			{Keys: bson.D{{Key: "fileId", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		}},
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		}},
	}
	for _, ix := range indexes {
		if _, err := ix.coll.Indexes().CreateMany(ctx, ix.models); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateFile(ctx context.Context, f models.File) error {
	_, err := s.files.InsertOne(ctx, toFileDoc(f))
	return translate(err)
}

func (s *Store) FindFileByID(ctx context.Context, id uuid.UUID) (models.File, error) {
	var doc fileDoc
	if err := s.files.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return models.File{}, translate(err)
	}
	return fromFileDoc(doc), nil
}

func (s *Store) FindFiles(ctx context.Context) ([]models.File, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.files.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []fileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	files := make([]models.File, 0, len(docs))
	for _, d := range docs {
		files = append(files, fromFileDoc(d))
	}
	return files, nil
}

func (s *Store) CreatePeer(ctx context.Context, p models.Peer) error {
	_, err := s.peers.InsertOne(ctx, toPeerDoc(p))
	return translate(err)
}

func (s *Store) DeletePeer(ctx context.Context, id uuid.UUID) error {
	res, err := s.peers.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return swarm.ErrNotFound
	}
	return nil
}

func (s *Store) FindPeerByID(ctx context.Context, id uuid.UUID) (models.Peer, error) {
	var doc peerDoc
	if err := s.peers.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return models.Peer{}, translate(err)
	}
	return fromPeerDoc(doc), nil
}

func (s *Store) FindPeersByFile(ctx context.Context, fileID uuid.UUID) ([]models.Peer, error) {
	return s.findPeers(ctx, bson.M{"fileId": fileID.String()})
}

func (s *Store) FindPeersByFiles(ctx context.Context, fileIDs []uuid.UUID) ([]models.Peer, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(fileIDs))
	for _, id := range fileIDs {
		values = append(values, id.String())
	}
	return s.findPeers(ctx, bson.M{"fileId": bson.M{"$in": values}})
}

func (s *Store) FindAllLeechers(ctx context.Context) ([]models.Peer, error) {
	return s.findPeers(ctx, bson.M{"status": string(models.StatusLeecher)})
}

// SavePeer matches on both id and version so a peer deleted or rewritten
// since it was read is never overwritten. UpdateOne without upsert never
// inserts.
func (s *Store) SavePeer(ctx context.Context, p models.Peer) error {
	res, err := s.peers.UpdateOne(ctx,
		bson.M{"_id": p.ID.String(), "version": p.Version},
		bson.M{
			"$set": bson.M{
				"status":    string(p.Status),
				"progress":  p.Progress,
				"updatedAt": p.UpdatedAt.UnixMilli(),
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.peers.CountDocuments(ctx, bson.M{"_id": p.ID.String()})
	if err != nil {
		return err
	}
	if n == 0 {
		return swarm.ErrNotFound
	}
	return swarm.ErrConflict
}

func (s *Store) findPeers(ctx context.Context, filter bson.M) ([]models.Peer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.peers.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []peerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	peers := make([]models.Peer, 0, len(docs))
	for _, d := range docs {
		peers = append(peers, fromPeerDoc(d))
	}
	return peers, nil
}

// CreateActivity assigns the next id from the counters collection.
func (s *Store) CreateActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	id, err := s.nextID(ctx, activityCounter)
	if err != nil {
		return models.Activity{}, err
	}
	a.ID = uint(id)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := s.activity.InsertOne(ctx, toActivityDoc(a)); err != nil {
		return models.Activity{}, translate(err)
	}
	return a, nil
}

func (s *Store) ListActivity(ctx context.Context, fileID uuid.UUID, limit int) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.activity.Find(ctx, bson.M{"fileId": fileID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []activityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	acts := make([]models.Activity, 0, len(docs))
	for _, d := range docs {
		acts = append(acts, fromActivityDoc(d))
	}
	return acts, nil
}

func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.users.InsertOne(ctx, toUserDoc(u))
	return translate(err)
}

func (s *Store) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id.String()})
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.User{}, translate(err)
	}
	return fromUserDoc(doc), nil
}

func (s *Store) CountFilesByCreator(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.files.CountDocuments(ctx, bson.M{"createdBy": userID.String()})
}

func (s *Store) CountPeersByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.peers.CountDocuments(ctx, bson.M{"userId": userID.String()})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return swarm.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return swarm.ErrAlreadyExists
	default:
		return err
	}
}
