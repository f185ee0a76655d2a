package bulkimport

// pool is a fixed-size worker pool. Workers are started once and live until
// process teardown; there is no shutdown path.
type pool struct {
	tasks chan func()
}

func newPool(size int) *pool {
	p := &pool{tasks: make(chan func())}
	for i := 0; i < size; i++ {
		go p.run()
	}
	return p
}

func (p *pool) run() {
	for task := range p.tasks {
		task()
	}
}

// submit blocks until a worker accepts the task.
func (p *pool) submit(task func()) {
	p.tasks <- task
}
