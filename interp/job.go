package interp

import "sync"

// State is a job's run state. A job is never in any other state: it
// is removed from the table entirely once its tracked process (the
// pipeline's last segment, see Job.Pid) has exited.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "Stopped"
	}
	return "Running"
}

// Job is a pipeline the shell is tracking after launch: a background
// pipeline, or a foreground one that got stopped. Pgid is the process
// group id (equal to the first child's pid); Pid is the process this
// shell actually waits on — the last segment's pid — which is also the
// key the reaper uses to find the job when a child's status changes
// (matching by the pid of the last-added process is safe since at most
// one job exists per pgid).
type Job struct {
	ID      int
	Pgid    int
	Pid     int
	Command string
	State   State
}

// JobTable is the finite table of active jobs. It is mutated by both
// the pipeline executor (on stop/background) and the asynchronous
// reaper (on SIGCHLD); every method takes the lock so the two can
// never observe a half-updated job.
type JobTable struct {
	mu     sync.Mutex
	nextID int
	jobs   []*Job
}

// NewJobTable returns an empty table with job ids starting at 1.
func NewJobTable() *JobTable {
	return &JobTable{nextID: 1}
}

// Add creates a new job and assigns it the next monotonic id.
func (t *JobTable) Add(pgid, pid int, command string, state State) *Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	j := &Job{ID: t.nextID, Pgid: pgid, Pid: pid, Command: command, State: state}
	t.nextID++
	t.jobs = append(t.jobs, j)
	return j
}

// ByID returns the job with the given id, if still tracked.
func (t *JobTable) ByID(id int) (Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, j := range t.jobs {
		if j.ID == id {
			return *j, true
		}
	}
	return Job{}, false
}

// SetState updates a tracked job's state directly, used by the `bg`
// built-in to mark a job Running without waiting for the reaper to
// observe the SIGCONT-induced continue event.
func (t *JobTable) SetState(id int, state State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, j := range t.jobs {
		if j.ID == id {
			j.State = state
			return true
		}
	}
	return false
}

// List returns a snapshot of all tracked jobs, ordered by id, for the
// `jobs` built-in.
func (t *JobTable) List() []Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Job, len(t.jobs))
	for i, j := range t.jobs {
		out[i] = *j
	}
	return out
}

// removeByPid drops the job whose tracked pid matches, if any — called
// by the reaper when that pid exits or is terminated by a signal.
func (t *JobTable) removeByPid(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, j := range t.jobs {
		if j.Pid == pid {
			t.jobs = append(t.jobs[:i], t.jobs[i+1:]...)
			return
		}
	}
}

// setStateByPid updates the state of the job whose tracked pid
// matches, if any — called by the reaper on stop/continue events.
func (t *JobTable) setStateByPid(pid int, state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, j := range t.jobs {
		if j.Pid == pid {
			j.State = state
			return
		}
	}
}
