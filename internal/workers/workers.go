package workers

// Workers starts a fixed set of background workers together.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every collected worker. Each Run returns promptly, so the
// whole set is up by the time this returns.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
