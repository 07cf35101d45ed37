package tasks

// TaskSchedulerInterface is the surface the HTTP handlers and main use to
// drive background processing: start/stop the worker pool and enqueue
// refresh or sync tasks.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
