package llm

import "PortfolioPulse/pkg/logger"

func nopLogger() *logger.Logger { return logger.NewNop() }
