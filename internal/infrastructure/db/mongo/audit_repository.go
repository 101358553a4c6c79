package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository persists the clinical audit trail. Entries are immutable
// once written.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Actor     string `bson:"actor,omitempty"`
	Role      string `bson:"role,omitempty"`
	Action    string `bson:"action"`
	Target    string `bson:"target,omitempty"`
	Success   bool   `bson:"success"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	doc := auditDoc{
		Actor:     entry.Actor,
		Role:      entry.Role,
		Action:    entry.Action,
		Target:    entry.Target,
		Success:   entry.Success,
		Detail:    entry.Detail,
		Timestamp: entry.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// RecentByActor returns the latest entries, newest first. An empty actor
// returns entries across all actors.
func (r *AuditRepository) RecentByActor(ctx context.Context, actor string, limit int64) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	filter := bson.M{}
	if actor != "" {
		filter["actor"] = actor
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auditDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, domain.AuditEntry{
			Actor:     d.Actor,
			Role:      d.Role,
			Action:    d.Action,
			Target:    d.Target,
			Success:   d.Success,
			Detail:    d.Detail,
			Timestamp: time.Unix(d.Timestamp, 0).UTC(),
		})
	}
	return entries, nil
}
