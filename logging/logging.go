package logging

import "go.uber.org/zap"

// New builds the zap logger matching the given environment name. local gets the
// example logger, development the development logger and everything else the
// production logger.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "local":
		return zap.NewExample(), nil
	case "development":
		return zap.NewDevelopment()
	case "production", "":
		return zap.NewProduction()
	default:
		l, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		l.Sugar().Warnf("unknown ENV %q, falling back to production logger", env)
		return l, nil
	}
}
