package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/databases"
	"github.com/linesmerrill/legal-connect-api/messaging"
)

const backfillBatchSize = 500

// Scheduler handles periodic background jobs for the chat store
type Scheduler struct {
	cron     *cron.Cron
	CDB      databases.ChatroomDatabase
	schedule string
}

// NewScheduler creates a new scheduler instance running the pair key backfill on
// schedule, a cron spec such as "@every 1h"
func NewScheduler(cdb databases.ChatroomDatabase, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		CDB:      cdb,
		schedule: schedule,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.backfillPairKeys)
	if err != nil {
		zap.S().Errorw("failed to register pair key backfill job", "schedule", s.schedule, "error", err)
		return err
	}

	s.cron.Start()
	zap.S().Infow("Chat scheduler started", "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Chat scheduler stopped")
}

func (s *Scheduler) backfillPairKeys() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.BackfillPairKeys(ctx); err != nil {
		zap.S().Errorw("pair key backfill failed", "error", err)
	}
}

// BackfillPairKeys gives chatrooms written without a pair key one, so the keyed
// lookup finds them. A chatroom whose key already belongs to another chatroom is a
// duplicate from before the unique index and is left untouched. It returns how many
// chatrooms were updated.
func (s *Scheduler) BackfillPairKeys(ctx context.Context) (int, error) {
	rooms, err := s.CDB.FindMissingPairKey(ctx, backfillBatchSize)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, room := range rooms {
		if len(room.Participants) != 2 {
			zap.S().Warnw("skipping chatroom without exactly two participants",
				"chatroomId", room.ID.Hex(),
				"participants", room.Participants)
			continue
		}
		key := messaging.PairKey(room.Participants[0], room.Participants[1])

		err := s.CDB.SetPairKey(ctx, room.ID, key)
		if mongo.IsDuplicateKeyError(err) {
			zap.S().Warnw("duplicate chatroom for participant pair left in place",
				"chatroomId", room.ID.Hex(),
				"pairKey", key)
			continue
		}
		if err != nil {
			return updated, err
		}
		updated++
	}

	if updated > 0 {
		zap.S().Infow("backfilled chatroom pair keys", "updated", updated, "scanned", len(rooms))
	}
	return updated, nil
}
