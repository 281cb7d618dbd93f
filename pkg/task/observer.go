package task

// Observer is told about transport events as a task runs
type Observer interface {
	DatagramsSent(n int)
	RecordsTruncated(n int)
	RecordReceived()
	ParseFailed()
	ReadFailed()
}

type nopObserver struct{}

func (nopObserver) DatagramsSent(int) {}
func (nopObserver) RecordsTruncated(int) {}
func (nopObserver) RecordReceived() {}
func (nopObserver) ParseFailed() {}
func (nopObserver) ReadFailed() {}
