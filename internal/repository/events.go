package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

// ListEventsLimit is the page size for event listings.
const ListEventsLimit = 100

// EventRepository persists models.Event records. The composite primary key
// is (event_id, session_id).
type EventRepository struct {
	store dynstore.Store[models.Event]
	now   func() time.Time
}

func NewEventRepository(client dynstore.DynamoDBClient, table string) *EventRepository {
	return &EventRepository{
		store: dynstore.New[models.Event](client, dynstore.TableConfig{
			TableName: table,
			HashKey:   "event_id",
			SortKey:   "session_id",
			Indexes: map[string]dynstore.IndexKey{
				models.IndexSession:       {HashKey: "session_id"},
				models.IndexClient:        {HashKey: "client_id"},
				models.IndexTypeTimestamp: {HashKey: "event_type", SortKey: "timestamp"},
			},
		}),
		now: time.Now,
	}
}

// Create fills in identity and timestamp before the write: events from a
// non-web source get the fixed sentinel session instead of a generated one,
// so they never join a browser session by accident.
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	if e.EventSource != "" && e.EventSource != models.EventSourceWebsite {
		e.SessionID = models.SentinelSessionID
	} else if e.SessionID == "" {
		e.SessionID = uuid.NewString()
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	e.Timestamp = models.Timestamp(r.now())
	return r.store.Put(ctx, *e)
}

// Save rewrites the full record. Used for admin edits and by the
// attribution backfill.
func (r *EventRepository) Save(ctx context.Context, e *models.Event) error {
	return r.store.Put(ctx, *e)
}

func (r *EventRepository) Get(ctx context.Context, eventID, sessionID string) (*models.Event, error) {
	return r.store.Get(ctx, eventID, sessionID)
}

func (r *EventRepository) Delete(ctx context.Context, eventID, sessionID string) error {
	return r.store.Delete(ctx, eventID, sessionID)
}

// List pages through the whole event collection (scan).
func (r *EventRepository) List(ctx context.Context, cursor string) ([]models.Event, string, error) {
	return r.store.Scan().
		Limit(ListEventsLimit).
		Cursor(cursor).
		Exec(ctx)
}

// BySession materializes every event sharing a session, following the
// cursor to exhaustion. Event-per-session volumes are assumed small.
func (r *EventRepository) BySession(ctx context.Context, sessionID string) ([]models.Event, error) {
	return r.store.Query().
		Index(models.IndexSession).
		KeyEqual("session_id", sessionID).
		ExecAll(ctx)
}

// ByClient pages through the events attributed to one client.
func (r *EventRepository) ByClient(ctx context.Context, clientID, cursor string) ([]models.Event, string, error) {
	return r.store.Query().
		Index(models.IndexClient).
		KeyEqual("client_id", clientID).
		Limit(ListEventsLimit).
		Cursor(cursor).
		Exec(ctx)
}

// TodaysVisits lists the visit_registration events whose timestamp falls on
// the current Mexico City civil date, via the composite type+timestamp index.
func (r *EventRepository) TodaysVisits(ctx context.Context) ([]models.Event, error) {
	return r.store.Query().
		Index(models.IndexTypeTimestamp).
		KeyEqual("event_type", models.EventTypeVisitRegistration).
		KeyBeginsWith("timestamp", models.Today(r.now())).
		ExecAll(ctx)
}
