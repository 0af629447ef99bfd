package driver

// Status describes where one file is in a run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	// StatusCached marks a file whose result was replayed from the disk cache.
	StatusCached
	StatusError
)

// Event is one progress update. File is empty for run-level events.
type Event struct {
	File   string
	Status Status
}

// emit публикует событие, если потребитель подключён. Никогда не блокирует
// надолго: канал буферизован вызывающей стороной.
func (o *Options) emit(file string, status Status) {
	if o.Events == nil {
		return
	}
	o.Events <- Event{File: file, Status: status}
}
