package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"habit-planner/internal/model"
	"habit-planner/internal/push"
)

// AlertTaskSource yields the alert candidates for one user at one
// exact HH:mm string. Implemented by *repository.TaskRepository.
type AlertTaskSource interface {
	ListAlertsAt(ctx context.Context, userID uint, hhmm string) ([]model.Task, error)
}

// SubscriptionStore is implemented by
// *repository.SubscriptionRepository.
type SubscriptionStore interface {
	ListUserIDs(ctx context.Context) ([]uint, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Subscription, error)
	Delete(ctx context.Context, id uint) error
}

// UserSource is implemented by *repository.UserRepository.
type UserSource interface {
	ListByIDs(ctx context.Context, ids []uint) ([]model.User, error)
}

// AlertService runs the per-minute alert sweep: for every user with
// at least one subscription it computes the user's wall-clock time,
// matches tasks whose alert minute is now and that are due today, and
// fans the notification out to all of the user's subscriptions.
//
// A subscription whose delivery reports the endpoint permanently gone
// is deleted; any other delivery error is logged and dropped — the
// next matching minute simply tries again. If several instances of
// the daemon run this sweep, users can receive duplicate
// notifications; nothing here coordinates across processes.
type AlertService struct {
	tasks  AlertTaskSource
	subs   SubscriptionStore
	users  UserSource
	sender push.Sender
	title  string
	url    string
	log    zerolog.Logger

	mu          sync.Mutex
	zonesWarned map[string]struct{}
}

func NewAlertService(tasks AlertTaskSource, subs SubscriptionStore, users UserSource, sender push.Sender, title, url string, log zerolog.Logger) *AlertService {
	return &AlertService{
		tasks:       tasks,
		subs:        subs,
		users:       users,
		sender:      sender,
		title:       title,
		url:         url,
		log:         log,
		zonesWarned: make(map[string]struct{}),
	}
}

// Sweep performs one full pass for the given instant. Errors inside
// one user's or one task's processing never abort the siblings, and a
// sweep-level query failure only costs this minute.
func (s *AlertService) Sweep(ctx context.Context, now time.Time) {
	userIDs, err := s.subs.ListUserIDs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("sweep: list subscribed users")
		return
	}
	if len(userIDs) == 0 {
		return
	}

	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		s.log.Error().Err(err).Msg("sweep: load users")
		return
	}

	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		s.sweepUser(ctx, user, now)
	}
}

func (s *AlertService) sweepUser(ctx context.Context, user model.User, now time.Time) {
	local, ok := LocalNow(now, user.Timezone)
	if !ok {
		s.warnZoneOnce(user.Timezone, user.ID)
	}

	tasks, err := s.tasks.ListAlertsAt(ctx, user.ID, local.Time)
	if err != nil {
		s.log.Error().Uint("user_id", user.ID).Err(err).Msg("sweep: query alert tasks")
		return
	}

	var due []model.Task
	for _, task := range tasks {
		if err := DescribeInvalid(task); err != nil {
			s.log.Warn().Uint("user_id", user.ID).Uint("task_id", task.ID).
				Err(err).Msg("sweep: skipping task with invalid recurrence descriptor")
			continue
		}
		if IsDueOn(task, local.Date, local.Weekday) {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return
	}

	// Snapshot the subscriptions once per user; deletions during the
	// fan-out only affect the store, not this slice.
	subs, err := s.subs.ListByUser(ctx, user.ID)
	if err != nil {
		s.log.Error().Uint("user_id", user.ID).Err(err).Msg("sweep: list subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	for _, task := range due {
		s.dispatch(ctx, task, subs)
	}
}

// dispatch fans one task's notification out to every subscription
// concurrently and joins before returning. Failures never
// short-circuit the group; each is handled where it happens.
func (s *AlertService) dispatch(ctx context.Context, task model.Task, subs []model.Subscription) {
	payload := push.Payload{
		Title: s.title,
		Body:  task.Text,
		URL:   s.url,
	}

	var g errgroup.Group
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			err := s.sender.Send(ctx, sub, payload)
			switch {
			case err == nil:
				s.log.Debug().Uint("task_id", task.ID).Uint("subscription_id", sub.ID).
					Msg("alert delivered")
			case errors.Is(err, push.ErrSubscriptionExpired):
				if derr := s.subs.Delete(ctx, sub.ID); derr != nil {
					s.log.Error().Uint("subscription_id", sub.ID).Err(derr).
						Msg("prune expired subscription")
				} else {
					s.log.Info().Uint("user_id", sub.UserID).Uint("subscription_id", sub.ID).
						Msg("pruned expired subscription")
				}
			default:
				s.log.Warn().Uint("task_id", task.ID).Uint("subscription_id", sub.ID).
					Err(err).Msg("alert delivery failed")
			}
			return nil
		})
	}
	_ = g.Wait()
}

// warnZoneOnce keeps an unknown timezone from flooding the log every
// minute.
func (s *AlertService) warnZoneOnce(zone string, userID uint) {
	s.mu.Lock()
	_, seen := s.zonesWarned[zone]
	if !seen {
		s.zonesWarned[zone] = struct{}{}
	}
	s.mu.Unlock()
	if !seen {
		s.log.Warn().Str("zone", zone).Uint("user_id", userID).
			Msg("unknown timezone, falling back to UTC")
	}
}
