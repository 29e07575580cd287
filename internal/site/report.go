package site

import (
	"fmt"
	"sort"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/linkcheck"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount aggregates outcomes for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// Report captures what a build did. It is returned to the caller and never
// written into the output tree, so repeated builds stay byte-identical.
type Report struct {
	BuildID string
	Start   time.Time
	End     time.Time

	Posts      int
	Pages      int
	Tags       int
	Categories int
	// Skipped counts content files left out of the build, keyed by reason.
	Skipped map[string]int
	// FilesWritten counts output files by kind.
	FilesWritten map[string]int
	BrokenLinks  []linkcheck.Broken

	Errors          []error // fatal or canceled stage errors (at most one)
	Warnings        []error // non-fatal stage problems
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:         buildID,
		Start:           time.Now(),
		Skipped:         make(map[string]int),
		FilesWritten:    make(map[string]int),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *Report) recordStage(name StageName, se *StageError) {
	sc := r.StageCounts[name]
	if se == nil {
		sc.Success++
		r.StageCounts[name] = sc
		return
	}
	r.StageErrorKinds[name] = se.Kind
	switch se.Kind {
	case StageErrorWarning:
		sc.Warning++
		r.Warnings = append(r.Warnings, se)
	case StageErrorCanceled:
		sc.Canceled++
		r.Errors = append(r.Errors, se)
	default:
		sc.Fatal++
		r.Errors = append(r.Errors, se)
	}
	r.StageCounts[name] = sc
}

// TotalFiles is the number of files written across all kinds.
func (r *Report) TotalFiles() int {
	n := 0
	for _, c := range r.FilesWritten {
		n += c
	}
	return n
}

// TotalSkipped is the number of content files left out for any reason.
func (r *Report) TotalSkipped() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

func (r *Report) finish() { r.End = time.Now() }

// deriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) deriveOutcome() {
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
			}
		}
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("posts=%d pages=%d tags=%d categories=%d files=%d skipped=%d broken_links=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Posts, r.Pages, r.Tags, r.Categories, r.TotalFiles(), r.TotalSkipped(), len(r.BrokenLinks),
		dur.Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// SlowestStages returns up to n stage names ordered by descending duration.
func (r *Report) SlowestStages(n int) []StageName {
	names := make([]StageName, 0, len(r.StageDurations))
	for name := range r.StageDurations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := r.StageDurations[names[i]], r.StageDurations[names[j]]
		if di != dj {
			return di > dj
		}
		return names[i] < names[j]
	})
	if n >= 0 && len(names) > n {
		names = names[:n]
	}
	return names
}
