package repository

import (
	"context"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

// DeleteMessagesBatch bounds how many chat messages one delete call removes.
const DeleteMessagesBatch = 50

// MessageRepository reads and bulk-deletes chat messages keyed by
// (id_chat, fecha), looked up bidirectionally by phone number.
type MessageRepository struct {
	store dynstore.Store[models.Message]
}

func NewMessageRepository(client dynstore.DynamoDBClient, table string) *MessageRepository {
	return &MessageRepository{
		store: dynstore.New[models.Message](client, dynstore.TableConfig{
			TableName: table,
			HashKey:   "id_chat",
			SortKey:   "fecha",
			Indexes: map[string]dynstore.IndexKey{
				models.IndexDeNumero:   {HashKey: "de_numero"},
				models.IndexParaNumero: {HashKey: "para_numero"},
			},
		}),
	}
}

// ByPhone returns the messages sent from and to the number, each side most
// recent first.
func (r *MessageRepository) ByPhone(ctx context.Context, phone string) ([]models.Message, error) {
	sent, _, err := r.store.Query().
		Index(models.IndexDeNumero).
		KeyEqual("de_numero", phone).
		ScanForward(false).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	received, _, err := r.store.Query().
		Index(models.IndexParaNumero).
		KeyEqual("para_numero", phone).
		ScanForward(false).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return append(sent, received...), nil
}

// DeleteByPhone removes at most DeleteMessagesBatch messages involving the
// number and reports whether more remain. Callers loop until more is false.
func (r *MessageRepository) DeleteByPhone(ctx context.Context, phone string) (deleted int, more bool, err error) {
	sent, sentCursor, err := r.store.Query().
		Index(models.IndexDeNumero).
		KeyEqual("de_numero", phone).
		Limit(DeleteMessagesBatch).
		Exec(ctx)
	if err != nil {
		return 0, false, err
	}

	var received []models.Message
	receivedCursor := ""
	if remaining := DeleteMessagesBatch - len(sent); remaining > 0 {
		received, receivedCursor, err = r.store.Query().
			Index(models.IndexParaNumero).
			KeyEqual("para_numero", phone).
			Limit(int32(remaining)).
			Exec(ctx)
		if err != nil {
			return 0, false, err
		}
	}

	// A self-addressed message matches both indexes; BatchWriteItem rejects
	// duplicate keys in one request, so the list is deduped.
	seen := make(map[[2]string]struct{}, len(sent)+len(received))
	keys := make([][2]any, 0, len(sent)+len(received))
	for _, m := range append(sent, received...) {
		k := [2]string{m.IDChat, m.Fecha}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, [2]any{m.IDChat, m.Fecha})
	}
	if len(keys) == 0 {
		return 0, false, nil
	}

	if err := r.store.BatchDelete(ctx, keys); err != nil {
		return 0, false, err
	}

	more = sentCursor != "" || receivedCursor != "" || len(sent) == DeleteMessagesBatch
	return len(keys), more, nil
}
