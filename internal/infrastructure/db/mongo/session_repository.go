package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

const sessionsCollection = "sessions"

// MongoSessionRepository is the session store. Expiration instants are stored
// as epoch milliseconds; the unique token index backs the uniqueness the
// service layer establishes by pre-checking candidate tokens.
type MongoSessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Token     string             `bson:"token"`
	Exp       int64              `bson:"exp"`
	Cookies   bool               `bson:"cookies"`
	LastSeen  int64              `bson:"last_seen"`
	CreatedAt int64              `bson:"created_at"`
}

type mongoSessionWithUser struct {
	mongoSession `bson:",inline"`
	User         mongoUser `bson:"user"`
}

// EnsureIndexes creates the unique token index and the expiration index the
// reaper sweeps over. Call once at startup.
func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "exp", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("ensure session indexes: %w", err)
	}
	return nil
}

// FindByToken resolves a session and its owning user in a single round trip
// via $lookup.
func (r *MongoSessionRepository) FindByToken(ctx context.Context, token string) (*domain.SessionWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"token": token}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("find session: %w", err)
		}
		return nil, domain.ErrSessionNotFound
	}

	var doc mongoSessionWithUser
	if err := cur.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoSessionRepository) Insert(ctx context.Context, session *domain.Session) (*domain.SessionWithUser, error) {
	userID, err := primitive.ObjectIDFromHex(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert session: bad user id: %w", err)
	}

	doc := mongoSession{
		UserID:    userID,
		Token:     session.Token,
		Exp:       session.ExpiresAt.UnixMilli(),
		Cookies:   session.Cookies,
		LastSeen:  session.LastSeen.UnixMilli(),
		CreatedAt: session.CreatedAt.UnixMilli(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return r.FindByToken(ctx, session.Token)
}

// Rotate replaces the token, expiration and cookie flag of the session row in
// place, keeping its identity. Returns the updated session joined with its
// owning user.
func (r *MongoSessionRepository) Rotate(ctx context.Context, id, token string, expiresAt time.Time, cookies bool) (*domain.SessionWithUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"token":   token,
		"exp":     expiresAt.UnixMilli(),
		"cookies": cookies,
	}})
	if err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSessionNotFound
	}

	return r.FindByToken(ctx, token)
}

// Delete removes a session by id. Missing rows are not an error.
func (r *MongoSessionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiration precedes now.
func (r *MongoSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"exp": bson.M{"$lt": now.UnixMilli()}})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoSessionRepository) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSessionNotFound
	}
	if _, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"last_seen": at.UnixMilli()}}); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (doc mongoSessionWithUser) toDomain() *domain.SessionWithUser {
	return &domain.SessionWithUser{
		Session: domain.Session{
			ID:        doc.mongoSession.ID.Hex(),
			UserID:    doc.mongoSession.UserID.Hex(),
			Token:     doc.mongoSession.Token,
			ExpiresAt: milliToTime(doc.Exp),
			Cookies:   doc.Cookies,
			LastSeen:  milliToTime(doc.LastSeen),
			CreatedAt: milliToTime(doc.mongoSession.CreatedAt),
		},
		User: *doc.User.toDomain(),
	}
}

func milliToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
