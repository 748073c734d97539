package bench

// Receives arena progress, methods may be called from many workers at once
type ListenerLike interface {
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
}

type DefaultListener struct{}

func (d DefaultListener) OnMoveMade(info VersusWorkerInfo) {}

func (d DefaultListener) OnFinishedGame(info VersusWorkerInfo) {}

func (d DefaultListener) OnFinishedWork(info VersusWorkerInfo) {}

func (d DefaultListener) Summary(summary VersusSummaryInfo) {}
