package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/examclock"
	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

var examHeader = []string{"ID", "Code", "Name", "Date", "Venue", "Fee", "Starts in"}

func todayArg(args []string) (bool, error) {
	switch {
	case len(args) == 0:
		return false, nil
	case len(args) == 1 && args[0] == "today":
		return true, nil
	default:
		return false, errUsage
	}
}

func (a *App) listExams(ctx context.Context, args []string) error {
	today, err := todayArg(args)
	if err != nil {
		return err
	}
	exams, err := a.client.ListExams(ctx, today)
	if err != nil {
		return err
	}
	a.exams = exams
	a.table(examHeader, examRows(exams))
	return nil
}

func examRows(exams []rpc.Exam) [][]string {
	rows := make([][]string, 0, len(exams))
	for _, e := range exams {
		starts := "started"
		if e.StartsInSeconds > 0 {
			starts = examclock.Format(time.Duration(e.StartsInSeconds) * time.Second)
		}
		rows = append(rows, []string{e.ID, e.Code, e.Name, e.ExamDate, e.Venue, pdfdoc.FormatAmount(e.Price), starts})
	}
	return rows
}

func (a *App) watchExams(ctx context.Context, args []string) error {
	today, err := todayArg(args)
	if err != nil {
		return err
	}
	// the stream outlives this command, so it must not inherit a call deadline
	err = a.watcher.Watch(context.WithoutCancel(ctx), today,
		func(exams []rpc.Exam) {
			a.info("\nExam list updated at %s", a.now().Format("15:04:05"))
			a.table(examHeader, examRows(exams))
		},
		func(err error) {
			a.warn("Exam updates stopped: %v", err)
		})
	if err != nil {
		return err
	}
	a.success("Watching exam updates. Use unwatch to stop.")
	return nil
}

func (a *App) unwatch(_ context.Context, _ []string) error {
	if !a.watcher.Active() {
		a.info("Not watching.")
		return nil
	}
	a.watcher.Stop()
	a.info("Stopped watching exam updates.")
	return nil
}

func (a *App) findExam(ctx context.Context, id string) (*rpc.Exam, error) {
	for i := range a.exams {
		if a.exams[i].ID == id {
			return &a.exams[i], nil
		}
	}
	exams, err := a.client.ListExams(ctx, false)
	if err != nil {
		return nil, err
	}
	a.exams = exams
	for i := range exams {
		if exams[i].ID == id {
			return &exams[i], nil
		}
	}
	return nil, fmt.Errorf("exam %s is not scheduled", id)
}

// attempt holds a candidate's answers while an exam is in progress. Exactly
// one of manual submit or countdown expiry sends the final submission.
type attempt struct {
	mu      sync.Mutex
	examID  string
	candID  string
	answers map[int]int
	skipped map[int]bool
	once    sync.Once
	done    chan struct{}
}

func (t *attempt) request() *rpc.ProgressRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	req := &rpc.ProgressRequest{ExamID: t.examID, CandidateID: t.candID, Answers: map[int]int{}}
	for q, o := range t.answers {
		req.Answers[q] = o
	}
	for q := range t.skipped {
		req.Skipped = append(req.Skipped, q)
	}
	sort.Ints(req.Skipped)
	return req
}

func (t *attempt) answer(q, o int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.answers[q] = o
	delete(t.skipped, q)
}

func (t *attempt) skip(q int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skipped[q] = true
	delete(t.answers, q)
}

func (t *attempt) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// submit sends the final answers once. It reports whether this call did it.
func (a *App) submitAttempt(ctx context.Context, t *attempt, reason string) bool {
	fired := false
	t.once.Do(func() {
		fired = true
		defer close(t.done)
		res, err := a.client.SubmitExam(ctx, t.request())
		if err != nil {
			a.info("%s", errorText(err))
			return
		}
		a.success("%s: answered %d of %d, skipped %d, correct %d.", reason, res.Answered, res.Total, res.Skipped, res.Correct)
	})
	return fired
}

func (a *App) attemptExam(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	exam, err := a.findExam(ctx, args[0])
	if err != nil {
		return err
	}
	now := a.now()
	if now.Before(exam.StartAt) {
		return fmt.Errorf("%s starts in %s", exam.Name, examclock.Format(exam.StartAt.Sub(now)))
	}
	if !now.Before(exam.EndAt) {
		return fmt.Errorf("%s has ended", exam.Name)
	}

	t := &attempt{examID: exam.ID, candID: args[1], answers: map[int]int{}, skipped: map[int]bool{}, done: make(chan struct{})}
	saved, err := a.client.LoadProgress(ctx, exam.ID, t.candID)
	if err != nil {
		return err
	}
	for q, o := range saved.Answers {
		t.answers[q] = o
	}
	for _, q := range saved.Skipped {
		t.skipped[q] = true
	}

	clockCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	clock := examclock.New(exam.EndAt, time.Second, nil, func() {
		if a.submitAttempt(clockCtx, t, "Time is up, answers submitted") {
			a.info("Press Enter to return to the main prompt.")
		}
	})
	go clock.Run(clockCtx)
	defer clock.Stop()

	a.info("%s in progress, %s remaining. %d answered so far.", exam.Name, examclock.Format(clock.Remaining()), len(t.answers))
	a.info("Commands: a <question> <option>, s <question>, time, save, submit, quit")

	for !t.finished() {
		line, err := GetSimpleText(a.reader, "attempt", a.out)
		if t.finished() {
			break
		}
		if err != nil {
			// input closed: keep what was entered
			return a.client.SaveProgress(ctx, t.request())
		}
		if done, err := a.attemptStep(ctx, t, clock, strings.Fields(line)); err != nil {
			a.info("%s", errorText(err))
		} else if done {
			return nil
		}
	}
	return nil
}

var errAttemptInput = errors.New("expected a <question> <option> or s <question>")

// attemptStep runs one line of the attempt sub-prompt and reports whether
// the attempt is over.
func (a *App) attemptStep(ctx context.Context, t *attempt, clock *examclock.Countdown, f []string) (bool, error) {
	if len(f) == 0 {
		return false, nil
	}
	switch f[0] {
	case "a":
		if len(f) != 3 {
			return false, errAttemptInput
		}
		q, err1 := strconv.Atoi(f[1])
		o, err2 := strconv.Atoi(f[2])
		if err1 != nil || err2 != nil || q < 1 || o < 1 {
			return false, errAttemptInput
		}
		// options are shown from 1, stored as indexes
		t.answer(q, o-1)
	case "s":
		if len(f) != 2 {
			return false, errAttemptInput
		}
		q, err := strconv.Atoi(f[1])
		if err != nil || q < 1 {
			return false, errAttemptInput
		}
		t.skip(q)
	case "time":
		a.info("%s remaining", examclock.Format(clock.Remaining()))
	case "save":
		if err := a.client.SaveProgress(ctx, t.request()); err != nil {
			return false, err
		}
		a.success("Progress saved.")
	case "submit":
		ok, err := Confirm(a.reader, "Submit your answers now?", a.out)
		if err != nil || !ok {
			return false, err
		}
		clock.Stop()
		a.submitAttempt(ctx, t, "Answers submitted")
		return true, nil
	case "quit":
		if err := a.client.SaveProgress(ctx, t.request()); err != nil {
			return false, err
		}
		a.info("Progress saved, you can resume before the exam ends.")
		return true, nil
	default:
		return false, errAttemptInput
	}
	return false, nil
}
