package log

import "go.uber.org/zap"

var l = zap.NewNop()

// Init builds the process-wide logger. Production mode emits JSON,
// anything else the human-readable development encoder.
func Init(prod bool) (*zap.Logger, error) {
	var (
		lg  *zap.Logger
		err error
	)
	if prod {
		lg, err = zap.NewProduction()
	} else {
		lg, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	l = lg
	return lg, nil
}

func L() *zap.Logger { return l }

func Sync() { _ = l.Sync() }
