// Package gitstate tracks the workspace's current git branch and commit so
// the indexing engine can detect branch switches and rebases between
// file-watch events (spec "Persisted state layout": .git-state.json).
package gitstate

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// State is the persisted snapshot written to .lien/.git-state.json.
type State struct {
	Branch    string `json:"branch"`
	Commit    string `json:"commit"`
	Timestamp int64  `json:"timestamp"`
}

// CurrentBranch returns the current git branch name for the given workspace
// root. For detached HEAD it returns "detached-{short-hash}"; if git itself
// is unavailable or the directory isn't a repo, it returns "unknown".
func CurrentBranch(workspaceRoot string) string {
	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = workspaceRoot
	output, err := cmd.Output()
	if err == nil && len(strings.TrimSpace(string(output))) > 0 {
		return strings.TrimSpace(string(output))
	}

	cmd = exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = workspaceRoot
	output, err = cmd.Output()
	if err != nil {
		return "unknown"
	}
	return "detached-" + strings.TrimSpace(string(output))
}

// CurrentCommit returns the full commit hash of HEAD, or "" if unavailable.
func CurrentCommit(workspaceRoot string) string {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = workspaceRoot
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// FindAncestorBranch looks for a merge-base between currentBranch and the
// repo's common trunk names, trying "main" then "master". Returns "" if
// neither is an ancestor (e.g. the repo has no trunk branch, or this is the
// trunk branch itself).
func FindAncestorBranch(workspaceRoot, currentBranch string) string {
	for _, candidate := range []string{"main", "master"} {
		if candidate == currentBranch {
			continue
		}
		cmd := exec.Command("git", "merge-base", currentBranch, candidate)
		cmd.Dir = workspaceRoot
		if output, err := cmd.Output(); err == nil && len(output) > 0 {
			return candidate
		}
	}
	return ""
}

// Snapshot captures the current branch/commit as a State stamped with the
// caller-supplied timestamp (milliseconds since epoch); Poller passes the
// time of each poll.
func Snapshot(workspaceRoot string, timestampMs int64) State {
	return State{
		Branch:    CurrentBranch(workspaceRoot),
		Commit:    CurrentCommit(workspaceRoot),
		Timestamp: timestampMs,
	}
}

// statePath returns the .git-state.json path under the workspace's .lien dir.
func statePath(lienDir string) string {
	return filepath.Join(lienDir, ".git-state.json")
}

// Load reads the persisted git state from lienDir. A missing file is not an
// error — it returns the zero State so callers can treat "never indexed" the
// same as "state file absent".
func Load(lienDir string) (State, error) {
	data, err := os.ReadFile(statePath(lienDir))
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Save atomically persists state to lienDir/.git-state.json.
func Save(lienDir string, s State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := statePath(lienDir) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, statePath(lienDir))
}

// Changed reports whether current differs from the last-persisted state in
// branch or commit — the signal the poller (Poller, below) watches for.
func (s State) Changed(current State) bool {
	return s.Branch != current.Branch || s.Commit != current.Commit
}

// Poller periodically snapshots git state and invokes onChange when the
// branch or commit differs from the last observed snapshot (spec:
// gitDetection.enabled / gitDetection.pollIntervalMs, polling "between
// file-watch events" since fsnotify never sees a `git checkout`).
type Poller struct {
	workspaceRoot string
	interval      time.Duration
	onChange      func(previous, current State)

	stop chan struct{}
	done chan struct{}
}

// NewPoller builds a poller for workspaceRoot. onChange fires whenever
// CurrentBranch/CurrentCommit diverge from the previous poll.
func NewPoller(workspaceRoot string, interval time.Duration, onChange func(previous, current State)) *Poller {
	return &Poller{
		workspaceRoot: workspaceRoot,
		interval:      interval,
		onChange:      onChange,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start begins polling in a background goroutine, seeded with initial as the
// "previous" snapshot so a restart doesn't immediately fire a false change.
func (p *Poller) Start(initial State) {
	go func() {
		defer close(p.done)
		previous := initial
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				current := Snapshot(p.workspaceRoot, time.Now().UnixMilli())
				if previous.Changed(current) {
					if p.onChange != nil {
						p.onChange(previous, current)
					}
					previous = current
				}
			}
		}
	}()
}

// Stop halts the polling goroutine and waits for it to exit.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}
