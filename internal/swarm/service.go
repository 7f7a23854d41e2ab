package swarm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the tracker core: file registration, swarm membership, the
// global progress tick and swarm statistics. It holds no state of its own
// beyond its collaborators and is safe for concurrent use when they are.
type Service struct {
	store       Store
	activities  ActivityStore
	notifier    Notifier
	rand        Rand
	log         zerolog.Logger
	now         func() time.Time
	pieceSizeMB float64
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithRand(r Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.rand = r
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPieceSizeMB sets the piece size applied to newly registered files.
func WithPieceSizeMB(size float64) Option {
	return func(s *Service) {
		if size > 0 {
			s.pieceSizeMB = size
		}
	}
}

func NewService(store Store, activities ActivityStore, opts ...Option) *Service {
	s := &Service{
		store:       store,
		activities:  activities,
		notifier:    nopNotifier{},
		rand:        NewRand(),
		log:         zerolog.Nop(),
		now:         time.Now,
		pieceSizeMB: DefaultPieceSizeMB,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// notify hands the event to the notifier after the mutation is committed.
// Cancellation of the triggering request must not drop the event.
func (s *Service) notify(ctx context.Context, userID, fileID *uuid.UUID, message string) {
	s.notifier.Record(context.WithoutCancel(ctx), userID, fileID, message)
}
