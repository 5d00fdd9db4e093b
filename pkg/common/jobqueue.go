package common

import "sync"

type Job func() error

// JobQueue runs jobs one after another on a single background goroutine. Front ends which receive input
// from several goroutines (like the IRC bot) use it to keep every action strictly sequential.
type JobQueue struct {
	mutex       sync.Mutex
	stopped     bool
	jobsChannel chan Job
	waitGroup   sync.WaitGroup
	logger      Logger
}

func NewJobQueue(capacity int, logger Logger) *JobQueue {
	if capacity <= 0 {
		capacity = 128
	}
	queue := &JobQueue{
		jobsChannel: make(chan Job, capacity),
		logger:      logger,
	}
	queue.waitGroup.Add(1)
	go queue.run()
	return queue
}

// Enqueue schedules the job. Returns false if the queue is already stopped (the job is dropped).
func (j *JobQueue) Enqueue(job Job) bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.stopped {
		return false
	}
	j.jobsChannel <- job
	return true
}

// Stop waits until all the jobs enqueued so far are processed.
func (j *JobQueue) Stop() {
	j.mutex.Lock()
	if j.stopped {
		j.mutex.Unlock()
		return
	}
	j.stopped = true
	close(j.jobsChannel)
	j.mutex.Unlock()
	j.waitGroup.Wait()
}

func (j *JobQueue) run() {
	defer j.waitGroup.Done()
	for job := range j.jobsChannel {
		err := job()
		if err != nil {
			j.logger.Log("failed to process a job: " + err.Error())
		}
	}
}
