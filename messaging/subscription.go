package messaging

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/models"
)

// Update is one complete snapshot of a conversation. ChatroomID is empty while the
// pair has no chatroom. Messages are ordered oldest first and replace any earlier
// snapshot.
type Update struct {
	Messages   []models.Message `json:"messages"`
	ChatroomID string           `json:"chatroomId"`
}

// Subscription is a live view of one conversation. It holds a goroutine and feed
// registrations until Close is called or the context given to Subscribe ends.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Close stops delivery and waits for the subscription goroutine to exit. Once it
// returns the callback is not invoked again. It must not be called from inside the
// callback; cancel the subscription context there instead.
func (sub *Subscription) Close() {
	sub.once.Do(sub.cancel)
	<-sub.done
}

// Done is closed once the subscription has released everything it held
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// Subscribe delivers the conversation between senderID and receiverID to onUpdate:
// once right away, then after every message insert, edit or delete in their
// chatroom. Before the pair has a chatroom the snapshot is empty; delivery moves to
// the chatroom as soon as it is created. Deliveries are serialised and a read
// failure is delivered as an empty snapshot instead of ending the subscription.
func (s *Service) Subscribe(ctx context.Context, senderID, receiverID string, onUpdate func(Update)) (*Subscription, error) {
	if senderID == "" || receiverID == "" {
		return nil, ErrMissingParticipant
	}
	if onUpdate == nil {
		return nil, errors.New("onUpdate callback is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	l := &listener{
		svc:      s,
		pairKey:  PairKey(senderID, receiverID),
		onUpdate: onUpdate,
	}
	// registered before the first lookup so a chatroom created in between is seen
	l.pairCh, l.releasePair = s.Feed.Subscribe(pairTopic(l.pairKey))

	go func() {
		defer close(sub.done)
		defer cancel()
		l.run(ctx)
	}()
	return sub, nil
}

type listener struct {
	svc      *Service
	pairKey  string
	onUpdate func(Update)

	pairCh      <-chan struct{}
	releasePair func()

	chatroomID  string
	roomCh      <-chan struct{}
	releaseRoom func()
}

func (l *listener) run(ctx context.Context) {
	defer l.release()

	resolve := true
	for {
		if resolve {
			l.resolve(ctx)
		}
		l.deliver(ctx)

		select {
		case <-ctx.Done():
			return
		case <-l.pairCh:
			resolve = true
		case <-l.roomCh:
			resolve = false
		}
	}
}

// resolve looks the chatroom up by pair key and moves the room registration when
// the chatroom identity changed
func (l *listener) resolve(ctx context.Context) {
	room, err := l.svc.CDB.FindByPairKey(ctx, l.pairKey)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) && ctx.Err() == nil {
			zap.S().Errorw("failed to resolve chatroom", "pairKey", l.pairKey, "error", err)
		}
		// keep the current chatroom, a failed or empty lookup never detaches it
		return
	}

	id := room.ID.Hex()
	if id == l.chatroomID {
		return
	}
	if l.releaseRoom != nil {
		l.releaseRoom()
	}
	l.chatroomID = id
	l.roomCh, l.releaseRoom = l.svc.Feed.Subscribe(roomTopic(id))
}

func (l *listener) deliver(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	update := Update{Messages: []models.Message{}, ChatroomID: l.chatroomID}
	if l.chatroomID != "" {
		msgs, err := l.svc.Messages(ctx, l.chatroomID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.S().Errorw("failed to read conversation, delivering empty snapshot",
				"chatroomId", l.chatroomID,
				"error", err)
		} else {
			update.Messages = msgs
		}
	}
	if ctx.Err() != nil {
		return
	}
	l.onUpdate(update)
}

func (l *listener) release() {
	if l.releaseRoom != nil {
		l.releaseRoom()
	}
	l.releasePair()
}
