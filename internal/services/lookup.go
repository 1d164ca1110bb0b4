package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// HistoryWriter appends lookup records.
type HistoryWriter interface {
	Save(ctx context.Context, ownerID uuid.UUID, ipAddress, ipAttr string) (*models.HistoryEntryDB, error)
}

// HistoryReader lists lookup records for one owner.
type HistoryReader interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.HistoryEntryDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// LookupService classifies IP strings for authenticated users,
// records each lookup in the history and publishes an audit event.
type LookupService struct {
	writer      HistoryWriter
	reader      HistoryReader
	classify    func(string) string
	kafkaWriter KafkaWriter
}

// NewLookupService creates a new LookupService. classify is the pure
// classification function; kafkaWriter may be nil.
func NewLookupService(writer HistoryWriter, reader HistoryReader, classify func(string) string, kafkaWriter KafkaWriter) *LookupService {
	return &LookupService{
		writer:      writer,
		reader:      reader,
		classify:    classify,
		kafkaWriter: kafkaWriter,
	}
}

// Lookup classifies ipstr, appends a history entry owned by the caller
// and returns it. A history persistence failure fails the whole
// lookup; the classification label itself is always a plain string,
// even for malformed input.
func (s *LookupService) Lookup(ctx context.Context, identity *models.AuthenticatedIdentity, ipstr string) (*models.HistoryEntryDB, error) {
	attr := s.classify(ipstr)

	entry, err := s.writer.Save(ctx, identity.UserID, ipstr, attr)
	if err != nil {
		logger.Log.Errorw("failed to record lookup", "owner", identity.UserID, "ipstr", ipstr, "error", err)
		return nil, err
	}

	s.publishLookup(ctx, identity, entry)

	return entry, nil
}

// History returns the owner's lookup records in insertion order.
func (s *LookupService) History(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.HistoryEntryDB, error) {
	entries, err := s.reader.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		logger.Log.Errorw("failed to list history", "owner", ownerID, "error", err)
		return nil, err
	}
	return entries, nil
}

// publishLookup publishes an audit event to Kafka. Publishing is best
// effort and never fails the request.
func (s *LookupService) publishLookup(ctx context.Context, identity *models.AuthenticatedIdentity, entry *models.HistoryEntryDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "entry_id", entry.ID)
		return
	}

	event := models.LookupEvent{
		EventID:   entry.ID.String(),
		Timestamp: time.Now().Unix(),
		UserID:    identity.UserID.String(),
		Username:  identity.Username,
		IPAddress: entry.IPAddress,
		IPAttr:    entry.IPAttr,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal lookup event", "entry_id", entry.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish lookup event", "entry_id", entry.ID, "error", err)
	} else {
		logger.Log.Infow("lookup event published", "entry_id", entry.ID, "ip_attr", event.IPAttr)
	}
}
