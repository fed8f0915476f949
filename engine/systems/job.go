package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/vicki/engine/core"
)

// JobTask is a unit of work executed by the job system workers.
type JobTask struct {
	OnStart    func() error
	OnComplete func()
	OnFailure  func(error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				if err := job.OnStart(); err != nil {
					core.LogError(err.Error())
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
					continue
				}
				if job.OnComplete != nil {
					job.OnComplete()
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Blocks until queued work has drained.
 */
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution.
 */
func (js *JobSystem) Submit(jt JobTask) {
	js.jobQueue <- jt
}

// Go schedules a bare function on the worker pool. It satisfies the
// executor boundary the lazy evaluation cache expects.
func (js *JobSystem) Go(task func()) {
	js.Submit(JobTask{
		OnStart: func() error {
			task()
			return nil
		},
	})
}
