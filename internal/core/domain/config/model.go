package configdomain

// Entry is one configuration value together with where it came from.
// Lower Priority numbers win.
type Entry struct {
	Key        string
	Value      interface{}
	Source     string
	SourcePath string
	Priority   int
}

// Snapshot is a collection of config entries keyed by field name.
type Snapshot map[string]Entry

// Set records value for key, attributed to source.
func (s Snapshot) Set(key string, value interface{}, source, sourcePath string, priority int) {
	s[key] = Entry{Key: key, Value: value, Source: source, SourcePath: sourcePath, Priority: priority}
}

// Merge folds other into s. On equal priority the later snapshot wins.
func (s Snapshot) Merge(other Snapshot) {
	for k, e := range other {
		if existing, ok := s[k]; !ok || e.Priority <= existing.Priority {
			s[k] = e
		}
	}
}
