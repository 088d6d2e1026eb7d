package vote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"formae/internal/domain/poll"
)

// memoryVoteRepo mimics the storage-level guarantees the postgres repo gets
// from its transaction and unique index: Cast is atomic under the mutex.
type memoryVoteRepo struct {
	mu         sync.Mutex
	pollStatus map[uuid.UUID]string
	options    map[uuid.UUID][]OptionCount
	userVotes  map[uuid.UUID]map[uuid.UUID]uuid.UUID
}

func newMemoryVoteRepo() *memoryVoteRepo {
	return &memoryVoteRepo{
		pollStatus: make(map[uuid.UUID]string),
		options:    make(map[uuid.UUID][]OptionCount),
		userVotes:  make(map[uuid.UUID]map[uuid.UUID]uuid.UUID),
	}
}

func (r *memoryVoteRepo) addPoll(status string, optionTexts ...string) (uuid.UUID, []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pollID := uuid.New()
	r.pollStatus[pollID] = status
	ids := make([]uuid.UUID, 0, len(optionTexts))
	for _, text := range optionTexts {
		id := uuid.New()
		r.options[pollID] = append(r.options[pollID], OptionCount{OptionID: id, Text: text})
		ids = append(ids, id)
	}
	return pollID, ids
}

func (r *memoryVoteRepo) closePoll(pollID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pollStatus[pollID] = poll.StatusClosed
}

func (r *memoryVoteRepo) Cast(ctx context.Context, v *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.pollStatus[v.PollID]
	if !ok {
		return poll.ErrNotFound
	}
	if status != poll.StatusActive {
		return ErrPollClosed
	}
	if r.userVotes[v.PollID] == nil {
		r.userVotes[v.PollID] = make(map[uuid.UUID]uuid.UUID)
	}
	if _, voted := r.userVotes[v.PollID][v.UserID]; voted {
		return ErrAlreadyVoted
	}

	opts := r.options[v.PollID]
	idx := -1
	for i, o := range opts {
		if o.OptionID == v.OptionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrOptionNotInPoll
	}

	r.userVotes[v.PollID][v.UserID] = v.OptionID
	opts[idx].Votes++
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	return nil
}

func (r *memoryVoteRepo) OptionCounts(ctx context.Context, pollID uuid.UUID) ([]OptionCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pollStatus[pollID]; !ok {
		return nil, poll.ErrNotFound
	}
	res := make([]OptionCount, len(r.options[pollID]))
	copy(res, r.options[pollID])
	return res, nil
}

func (r *memoryVoteRepo) VotedOption(ctx context.Context, pollID, userID uuid.UUID) (uuid.UUID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	optID, ok := r.userVotes[pollID][userID]
	return optID, ok, nil
}

func (r *memoryVoteRepo) total(pollID uuid.UUID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, o := range r.options[pollID] {
		total += o.Votes
	}
	return total
}

func TestCastAndDuplicate(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID, opts := repo.addPoll(poll.StatusActive, "80s", "Hollywood", "Tropical")
	voter := uuid.New()

	if err := svc.Cast(ctx, pollID, opts[1], voter); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	// Same voter, different option: still a duplicate.
	if err := svc.Cast(ctx, pollID, opts[0], voter); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected duplicate vote error, got %v", err)
	}

	results, total, err := svc.Results(ctx, pollID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	if results[1].Votes != 1 || results[1].Percentage != 100 {
		t.Fatalf("unexpected winning option %+v", results[1])
	}
	if results[0].Votes != 0 || results[0].Percentage != 0 {
		t.Fatalf("unexpected losing option %+v", results[0])
	}
}

func TestConcurrentCastsKeepOneVote(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID, opts := repo.addPoll(poll.StatusActive, "yes", "no")
	voter := uuid.New()

	const n = 32
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Cast(ctx, pollID, opts[0], voter)
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, dupCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, ErrAlreadyVoted):
			dupCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || dupCount != n-1 {
		t.Fatalf("expected exactly one winner, got ok=%d dup=%d", okCount, dupCount)
	}
	if repo.total(pollID) != 1 {
		t.Fatalf("expected one recorded vote, got %d", repo.total(pollID))
	}
}

// Casting races a concurrent close: the status check and the insert are one
// atomic unit, so every accepted vote is reflected in the tally and nothing
// lands once the close is visible.
func TestCastRacingCloseStaysConsistent(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID, opts := repo.addPoll(poll.StatusActive, "a", "b")

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Cast(ctx, pollID, opts[0], uuid.New())
		}()
	}
	repo.closePoll(pollID)
	wg.Wait()
	close(errs)

	var okCount int64
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, ErrPollClosed):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if repo.total(pollID) != okCount {
		t.Fatalf("tally %d disagrees with %d accepted casts", repo.total(pollID), okCount)
	}

	if err := svc.Cast(ctx, pollID, opts[0], uuid.New()); !errors.Is(err, ErrPollClosed) {
		t.Fatalf("expected closed poll error after close, got %v", err)
	}
	if repo.total(pollID) != okCount {
		t.Fatalf("tally changed after close: %d != %d", repo.total(pollID), okCount)
	}
}

func TestCastOnClosedPoll(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID, opts := repo.addPoll(poll.StatusClosed, "a", "b")

	if err := svc.Cast(ctx, pollID, opts[0], uuid.New()); !errors.Is(err, ErrPollClosed) {
		t.Fatalf("expected closed poll error, got %v", err)
	}
	if repo.total(pollID) != 0 {
		t.Fatalf("closed poll tally must not change")
	}
}

func TestCastOptionFromAnotherPoll(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollA, _ := repo.addPoll(poll.StatusActive, "a1", "a2")
	_, optsB := repo.addPoll(poll.StatusActive, "b1", "b2")
	voter := uuid.New()

	if err := svc.Cast(ctx, pollA, optsB[0], voter); !errors.Is(err, ErrOptionNotInPoll) {
		t.Fatalf("expected option-not-in-poll error, got %v", err)
	}
	// No side effects: the voter can still vote in poll A.
	if _, voted, _ := svc.VotedOption(ctx, pollA, voter); voted {
		t.Fatalf("failed cast must not record a vote")
	}
}

func TestCastOnMissingPoll(t *testing.T) {
	svc := NewService(newMemoryVoteRepo())
	if err := svc.Cast(context.Background(), uuid.New(), uuid.New(), uuid.New()); !errors.Is(err, poll.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestResultsRoundingAndZeroOption(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID, opts := repo.addPoll(poll.StatusActive, "a", "b", "c")

	// Three votes: two for a, one for b, none for c.
	for _, optIdx := range []int{0, 0, 1} {
		if err := svc.Cast(ctx, pollID, opts[optIdx], uuid.New()); err != nil {
			t.Fatalf("cast: %v", err)
		}
	}

	results, total, err := svc.Results(ctx, pollID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 votes, got %d", total)
	}
	// round(200/3)=67, round(100/3)=33, zero stays zero; sum is 100 here but
	// is not required to be.
	if results[0].Percentage != 67 || results[1].Percentage != 33 || results[2].Percentage != 0 {
		t.Fatalf("unexpected percentages %+v", results)
	}
}

func TestResultsEmptyPoll(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)

	pollID, _ := repo.addPoll(poll.StatusActive, "a", "b")
	results, total, err := svc.Results(context.Background(), pollID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected zero total, got %d", total)
	}
	for _, r := range results {
		if r.Votes != 0 || r.Percentage != 0 {
			t.Fatalf("expected all-zero tally, got %+v", r)
		}
	}

	if _, _, err := svc.Results(context.Background(), uuid.New()); !errors.Is(err, poll.ErrNotFound) {
		t.Fatalf("expected not-found for unknown poll, got %v", err)
	}
}

func TestVotedOption(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID, opts := repo.addPoll(poll.StatusActive, "a", "b")
	voter := uuid.New()

	if voted, _ := svc.HasVoted(ctx, pollID, voter); voted {
		t.Fatalf("expected no vote yet")
	}
	if err := svc.Cast(ctx, pollID, opts[1], voter); err != nil {
		t.Fatalf("cast: %v", err)
	}
	optID, voted, err := svc.VotedOption(ctx, pollID, voter)
	if err != nil {
		t.Fatalf("voted option: %v", err)
	}
	if !voted || optID != opts[1] {
		t.Fatalf("expected vote for %s, got %s voted=%v", opts[1], optID, voted)
	}
}
