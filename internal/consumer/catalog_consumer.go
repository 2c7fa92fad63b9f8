package consumer

import (
	"encoding/json"

	"github.com/garageworks/appointment-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogConsumer mirrors the service catalog from the catalog exchange
// into the local database.
type CatalogConsumer struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewCatalogConsumer(db *gorm.DB, logger zerolog.Logger) *CatalogConsumer {
	return &CatalogConsumer{db: db, logger: logger}
}

// Start listens for messages and upserts services into the local DB.
func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		cc.logger.Warn().Msg("channel closed, stopping catalog consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	var svc models.Service
	if err := json.Unmarshal(msg.Body, &svc); err != nil {
		cc.logger.Error().Err(err).Msg("failed to unmarshal catalog message")
		msg.Nack(false, false)
		return
	}

	// Upsert: insert or update on conflict (same ID from the catalog service)
	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "duration_minutes", "price", "updated_at"}),
	}).Create(&svc)

	if result.Error != nil {
		cc.logger.Error().Err(result.Error).Uint("service_id", svc.ID).Msg("failed to upsert service")
		msg.Nack(false, true) // requeue
		return
	}

	cc.logger.Info().Uint("service_id", svc.ID).Str("name", svc.Name).Msg("synced catalog service")
	msg.Ack(false)
}
