package eventqueue

// WithSignalNotifier exposes the signal hook to external tests.
var WithSignalNotifier = withSignalNotifier
