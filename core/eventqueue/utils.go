package eventqueue

import (
	"os"
	"os/signal"
)

func signalNotify(c chan<- os.Signal, sigs ...os.Signal) { signal.Notify(c, sigs...) }

func signalStop(c chan<- os.Signal) { signal.Stop(c) }
