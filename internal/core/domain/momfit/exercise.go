package momfitdomain

// Exercise is one entry of the exercise catalogue.
type Exercise struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty"`
}

// ExerciseFilter narrows the catalogue. Empty fields do not filter.
type ExerciseFilter struct {
	Category   string
	Difficulty string
}

// Query returns the filter as query parameters.
func (f ExerciseFilter) Query() map[string]string {
	q := map[string]string{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Difficulty != "" {
		q["difficulty"] = f.Difficulty
	}
	return q
}

// WorkoutStatus is the lifecycle state of an exercise session.
type WorkoutStatus string

const (
	WorkoutInProgress WorkoutStatus = "IN_PROGRESS"
	WorkoutCompleted  WorkoutStatus = "COMPLETED"
)

// WorkoutSession is a run through one or more exercises.
type WorkoutSession struct {
	ID          int64         `json:"id"`
	ExerciseIDs []int64       `json:"exercise_ids"`
	Status      WorkoutStatus `json:"status"`
	StartedAt   string        `json:"started_at,omitempty"`
	CompletedAt string        `json:"completed_at,omitempty"`
}

// WorkoutProgress reports how far the user got in the current exercise.
type WorkoutProgress struct {
	ExerciseID     int64 `json:"exercise_id"`
	ElapsedSeconds int   `json:"elapsed_seconds"`
	HeartRate      int   `json:"heart_rate,omitempty"`
}

// WorkoutReport summarizes a completed session.
type WorkoutReport struct {
	SessionID      int64 `json:"session_id"`
	TotalSeconds   int   `json:"total_seconds"`
	AverageBPM     int   `json:"average_bpm,omitempty"`
	MaxBPM         int   `json:"max_bpm,omitempty"`
	ExercisesDone  int   `json:"exercises_done"`
	EarlyStopCount int   `json:"early_stop_count,omitempty"`
}
