// Package job runs translation requests one at a time. A Lifecycle holds a
// single job slot: while a job is Pending every further Submit is rejected.
package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/libretranslator/internal"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/logging"
	"codeberg.org/snonux/libretranslator/internal/translation"
)

// State is the lifecycle state of the current job
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pending:
		return "Pending"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Job is one translation attempt. Its fields settle once Done is closed.
type Job struct {
	ID      string
	Request translation.Request

	mu          sync.RWMutex
	state       State
	result      string
	err         error
	startedAt   time.Time
	completedAt time.Time
	done        chan struct{}
}

// State returns the job state
func (j *Job) State() State {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

// Result returns the translated text of a succeeded job
func (j *Job) Result() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result
}

// Err returns the failure of a failed job
func (j *Job) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.err
}

// Duration returns how long the request took, or zero while pending
func (j *Job) Duration() time.Duration {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.completedAt.IsZero() {
		return 0
	}
	return j.completedAt.Sub(j.startedAt)
}

// Done is closed once the job leaves Pending
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job completes or ctx ends
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Job) finish(result string, err error) {
	j.mu.Lock()
	j.completedAt = time.Now()
	if err != nil {
		j.state = Failed
		j.err = err
	} else {
		j.state = Succeeded
		j.result = result
	}
	j.mu.Unlock()
	close(j.done)
}

// Lifecycle owns the current job and the displayed result text
type Lifecycle struct {
	translator translation.Translator

	mu        sync.RWMutex
	current   *Job
	result    string
	completed int

	onStateChange func(*Job)
	onComplete    func(*Job)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLifecycle creates an idle lifecycle. Requests run under ctx.
func NewLifecycle(ctx context.Context, translator translation.Translator) *Lifecycle {
	lcCtx, cancel := context.WithCancel(ctx)
	return &Lifecycle{
		translator: translator,
		ctx:        lcCtx,
		cancel:     cancel,
	}
}

// SetCallbacks sets the callback functions for UI updates. onStateChange
// runs when a job becomes Pending, onComplete when it settles. Both run on
// the goroutine that caused the transition.
func (l *Lifecycle) SetCallbacks(onStateChange, onComplete func(*Job)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onStateChange = onStateChange
	l.onComplete = onComplete
}

// Submit starts a job for text. It returns false without changing state
// when text is blank or a job is already Pending.
func (l *Lifecycle) Submit(text string, source, target language.Code) (*Job, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	l.mu.Lock()
	if l.current != nil && l.current.State() == Pending {
		l.mu.Unlock()
		return nil, false
	}
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return nil, false
	}

	j := &Job{
		ID:        internal.GenerateJobID(text),
		Request:   translation.Request{Text: text, Source: source, Target: target},
		state:     Pending,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
	l.current = j
	onStateChange := l.onStateChange
	l.wg.Add(1)
	l.mu.Unlock()

	if onStateChange != nil {
		onStateChange(j)
	}

	go l.run(j)
	return j, true
}

func (l *Lifecycle) run(j *Job) {
	defer l.wg.Done()

	logging.TranslationRequest(l.translator.Name(), string(j.Request.Source), string(j.Request.Target), internal.CharCount(j.Request.Text))
	out, err := l.translator.Translate(l.ctx, j.Request)

	l.mu.Lock()
	j.finish(out, err)
	if err == nil {
		l.result = out
	}
	l.completed++
	onComplete := l.onComplete
	l.mu.Unlock()

	logging.TranslationResult(Outcome(err), float64(j.Duration().Milliseconds()), internal.CharCount(out))

	if onComplete != nil {
		onComplete(j)
	}
}

// Outcome names the result class of a finished request: "succeeded",
// "failed" (application error) or "error" (transport error)
func Outcome(err error) string {
	switch {
	case err == nil:
		return "succeeded"
	case translation.IsApplicationError(err):
		return "failed"
	default:
		return "error"
	}
}

// State returns the state of the current job, Idle before the first Submit
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return Idle
	}
	return l.current.State()
}

// Pending reports whether a request is in flight
func (l *Lifecycle) Pending() bool {
	return l.State() == Pending
}

// Current returns the most recent job or nil
func (l *Lifecycle) Current() *Job {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Result returns the displayed result text. A failed job leaves it unchanged.
func (l *Lifecycle) Result() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.result
}

// EditResult replaces the displayed result with user-edited text
func (l *Lifecycle) EditResult(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = text
}

// Completed returns the number of settled jobs
func (l *Lifecycle) Completed() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.completed
}

// Close cancels the in-flight request, if any, and waits for it to settle
func (l *Lifecycle) Close() {
	l.cancel()
	l.wg.Wait()
}
